// Package typewriter animates a looping type-then-erase effect over a
// fixed list of phrases.
package typewriter

import (
	"errors"
	"sync"
	"time"

	"github.com/vaibhavsidana/vaibhav-dev/internal/schedule"
)

const (
	TypeInterval  = 100 * time.Millisecond
	EraseInterval = 50 * time.Millisecond
	PauseDuration = 1500 * time.Millisecond
)

var ErrInvalidConfiguration = errors.New("typewriter: at least one phrase is required")

// Direction is whether the current phrase is being typed or erased.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Snapshot is a copy of the animator state.
type Snapshot struct {
	PhraseIndex int
	CharIndex   int
	Direction   Direction
	Paused      bool
	Text        string
}

// Animator cycles through its phrases until Stop is called.
type Animator struct {
	scheduler schedule.Scheduler
	phrases   [][]rune
	onChange  func(string)

	mu          sync.Mutex
	phraseIndex int
	charIndex   int
	direction   Direction
	paused      bool
	text        string
	task        schedule.Task
	stopped     bool
}

// New starts an animator over phrases. onChange, if set, receives every
// new display text. It is called with the animator locked and must not
// call back into it.
func New(scheduler schedule.Scheduler, phrases []string, onChange func(string)) (*Animator, error) {
	if len(phrases) == 0 {
		return nil, ErrInvalidConfiguration
	}

	a := &Animator{
		scheduler: scheduler,
		phrases:   make([][]rune, len(phrases)),
		onChange:  onChange,
	}
	for i, p := range phrases {
		a.phrases[i] = []rune(p)
	}

	a.mu.Lock()
	a.schedule(TypeInterval, a.tick)
	a.mu.Unlock()
	return a, nil
}

// Stop cancels the pending tick. No onChange call happens after Stop
// returns. Calling Stop more than once is fine.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	if a.task != nil {
		a.task.Cancel()
		a.task = nil
	}
}

// Text returns the current display text.
func (a *Animator) Text() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.text
}

func (a *Animator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{
		PhraseIndex: a.phraseIndex,
		CharIndex:   a.charIndex,
		Direction:   a.direction,
		Paused:      a.paused,
		Text:        a.text,
	}
}

func (a *Animator) tick() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}

	phrase := a.phrases[a.phraseIndex]
	switch a.direction {
	case Forward:
		if a.charIndex < len(phrase) {
			a.charIndex++
			a.setText(string(phrase[:a.charIndex]))
			a.schedule(TypeInterval, a.tick)
			return
		}
		a.paused = true
		a.schedule(PauseDuration, a.beginErase)

	case Backward:
		if a.charIndex > 0 {
			a.charIndex--
			a.setText(string(phrase[:a.charIndex]))
			a.schedule(EraseInterval, a.tick)
			return
		}
		a.phraseIndex = (a.phraseIndex + 1) % len(a.phrases)
		a.direction = Forward
		a.schedule(TypeInterval, a.tick)
	}
}

func (a *Animator) beginErase() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}

	a.paused = false
	a.direction = Backward
	a.schedule(EraseInterval, a.tick)
}

// schedule requires a.mu.
func (a *Animator) schedule(d time.Duration, f func()) {
	a.task = a.scheduler.AfterFunc(d, f)
}

// setText requires a.mu.
func (a *Animator) setText(text string) {
	a.text = text
	if a.onChange != nil {
		a.onChange(text)
	}
}
