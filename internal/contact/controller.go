// Package contact owns the contact form of one visitor: its field values
// and the idle → sending → success/error → idle submission lifecycle.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vaibhavsidana/vaibhav-dev/internal/delivery"
	"github.com/vaibhavsidana/vaibhav-dev/internal/observability"
	"github.com/vaibhavsidana/vaibhav-dev/internal/schedule"
)

// RevertDelay is how long the success state is shown before the form
// returns to idle.
const RevertDelay = 5000 * time.Millisecond

var (
	ErrUnknownField       = errors.New("unknown contact field")
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

// Status is the submission lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSending:
		return "sending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Field names a form field. The values match the HTML input names.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// FieldNames lists the form fields in display order.
var FieldNames = []Field{FieldName, FieldEmail, FieldMessage}

// Fields holds the current form values. The zero value is an empty form.
type Fields struct {
	Name    string
	Email   string
	Message string
}

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	Fields Fields
	Status Status
}

// Controller serializes all events for one form: field edits, submits,
// delivery outcomes and the delayed revert.
type Controller struct {
	sender    delivery.Sender
	scheduler schedule.Scheduler
	logger    *slog.Logger

	mu     sync.Mutex
	fields Fields
	status Status
	gen    uint64 // bumped on every submit
	revert schedule.Task
}

func NewController(sender delivery.Sender, scheduler schedule.Scheduler, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = observability.Logger()
	}
	return &Controller{
		sender:    sender,
		scheduler: scheduler,
		logger:    logger,
	}
}

// UpdateField replaces one field. Any value is accepted.
func (c *Controller) UpdateField(field Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case FieldName:
		c.fields.Name = value
	case FieldEmail:
		c.fields.Email = value
	case FieldMessage:
		c.fields.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
	return nil
}

// Submit moves the form to sending and hands the current fields to the
// sender on a separate goroutine. The returned channel is closed once the
// outcome has been applied. ctx only contributes values; cancellation of
// ctx does not abort the delivery.
func (c *Controller) Submit(ctx context.Context) (<-chan struct{}, error) {
	c.mu.Lock()
	if c.status == StatusSending {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if c.revert != nil {
		c.revert.Cancel()
		c.revert = nil
	}
	c.gen++
	gen := c.gen
	c.status = StatusSending
	msg := delivery.Message{
		Name:    c.fields.Name,
		Email:   c.fields.Email,
		Message: c.fields.Message,
	}
	c.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.settle(ctx, gen, c.sender.Send(ctx, msg))
	}()
	return done, nil
}

// Snapshot returns the current fields and status.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Fields: c.fields, Status: c.status}
}

// Status returns the current submission status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) settle(ctx context.Context, gen uint64, err error) {
	log := observability.FromContext(ctx, c.logger)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.status != StatusSending {
		log.Warn("dropping stale delivery outcome", "generation", gen, "current", c.gen)
		return
	}

	if err != nil {
		c.status = StatusError
		log.Error("contact message delivery failed", "error", err)
		return
	}

	c.status = StatusSuccess
	c.fields = Fields{}
	c.revert = c.scheduler.AfterFunc(RevertDelay, func() { c.revertToIdle(gen) })
	log.Info("contact message delivered")
}

func (c *Controller) revertToIdle(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.status != StatusSuccess {
		return
	}
	c.status = StatusIdle
	c.revert = nil
}
