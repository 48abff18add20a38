package main

import (
	"embed"
	"errors"
	"html"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vaibhavsidana/vaibhav-dev/internal/contact"
	"github.com/vaibhavsidana/vaibhav-dev/internal/observability"
	"github.com/vaibhavsidana/vaibhav-dev/internal/schedule"
	"github.com/vaibhavsidana/vaibhav-dev/internal/typewriter"
	"github.com/vaibhavsidana/vaibhav-dev/internal/visitor"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type server struct {
	content   Portfolio
	visitors  *visitor.Registry
	scheduler schedule.Scheduler
	logger    *slog.Logger
	hasher    *ipHasher
	now       func() time.Time

	secureCookies bool
	sessionTTL    time.Duration
}

type pageData struct {
	Portfolio
	Sections []string
	Year     int
	Form     contactView
}

type contactView struct {
	Fields      contact.Fields
	Status      string
	Sending     bool
	Success     bool
	Failed      bool
	ResetFields bool
}

func newContactView(snap contact.Snapshot, since string) contactView {
	return contactView{
		Fields:  snap.Fields,
		Status:  snap.Status.String(),
		Sending: snap.Status == contact.StatusSending,
		Success: snap.Status == contact.StatusSuccess,
		Failed:  snap.Status == contact.StatusError,
		// the fields were cleared on the sending -> success edge
		ResetFields: snap.Status == contact.StatusSuccess && since == contact.StatusSending.String(),
	}
}

func loadTemplates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

func newRouter(s *server) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger, s.hasher))
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	site := r.Group("/", visitorMiddleware(s.secureCookies, s.sessionTTL))
	site.GET("/", s.index)
	site.GET("/contact-form", s.contactForm)
	site.POST("/contact/field", s.updateFields)
	site.POST("/contact", s.submit)
	site.GET("/contact/status", s.contactStatus)
	site.GET("/typewriter/stream", s.typewriterStream)

	return r, nil
}

func (s *server) controller(c *gin.Context) *contact.Controller {
	return s.visitors.Controller(visitorID(c))
}

// Home page route
func (s *server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{
		Portfolio: s.content,
		Sections:  Sections,
		Year:      s.now().Year(),
		Form:      newContactView(s.controller(c).Snapshot(), ""),
	})
}

// HTMX contact form fragment
func (s *server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact-form", newContactView(s.controller(c).Snapshot(), ""))
}

// updateFields applies each keystroke. HTMX queues these per form, so the
// values land in input order.
func (s *server) updateFields(c *gin.Context) {
	s.applyPostedFields(c, s.controller(c))
	c.Status(http.StatusNoContent)
}

func (s *server) submit(c *gin.Context) {
	ctrl := s.controller(c)
	s.applyPostedFields(c, ctrl)

	log := observability.FromContext(c.Request.Context(), s.logger)
	if _, err := ctrl.Submit(c.Request.Context()); err != nil {
		if !errors.Is(err, contact.ErrSubmissionInFlight) {
			log.Error("contact submit failed", "error", err)
		}
		c.HTML(http.StatusConflict, "contact-status", newContactView(ctrl.Snapshot(), ""))
		return
	}
	log.Info("contact form submitted", "client", s.hasher.hash(c.ClientIP()))

	c.HTML(http.StatusOK, "contact-status", newContactView(ctrl.Snapshot(), contact.StatusSending.String()))
}

func (s *server) contactStatus(c *gin.Context) {
	c.HTML(http.StatusOK, "contact-status", newContactView(s.controller(c).Snapshot(), c.Query("since")))
}

func (s *server) applyPostedFields(c *gin.Context, ctrl *contact.Controller) {
	for _, field := range contact.FieldNames {
		value, ok := c.GetPostForm(string(field))
		if !ok {
			continue
		}
		if err := ctrl.UpdateField(field, value); err != nil {
			observability.FromContext(c.Request.Context(), s.logger).Warn("field update rejected", "field", field, "error", err)
		}
	}
}

// typewriterStream runs one animator for as long as the client stays
// connected and pushes every display change as an SSE "display" event.
func (s *server) typewriterStream(c *gin.Context) {
	updates := make(chan string, 1)
	anim, err := typewriter.New(s.scheduler, s.content.Roles, func(text string) {
		// a slow client only needs the latest text
		select {
		case <-updates:
		default:
		}
		updates <- text
	})
	if err != nil {
		observability.FromContext(c.Request.Context(), s.logger).Error("typewriter unavailable", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	defer anim.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case text := <-updates:
			// wrapped so that an empty text still dispatches an event
			c.SSEvent("display", "<span>"+html.EscapeString(text)+"</span>")
			c.Writer.Flush()
		}
	}
}
