package main

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Zachkp/portfolio-admin/internal/config"
	"github.com/Zachkp/portfolio-admin/internal/datefmt"
	"github.com/Zachkp/portfolio-admin/internal/inbox"
	"github.com/Zachkp/portfolio-admin/internal/reqlog"
	"github.com/Zachkp/portfolio-admin/internal/resume"
	"github.com/Zachkp/portfolio-admin/internal/session"
	"github.com/Zachkp/portfolio-admin/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

const resumeMissing = "Resume not found. Please upload it from the Admin Dashboard."

// server carries the dependencies the handlers share.
type server struct {
	cfg      *config.AppConfig
	hub      *store.Hub
	inbox    *inbox.Inbox
	resumes  resume.Store
	sessions *session.Manager
	visitors *visitorLog
	mail     *mailer
	now      func() time.Time
}

var templateFuncs = template.FuncMap{
	"ddmmyyyy": datefmt.DDMMYYYY,
	"withDay":  datefmt.WithDayAndMonth,
	"time12h":  datefmt.TimeTo12H,
}

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
}

func newRouter(s *server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), reqlog.SetUp)
	r.SetHTMLTemplate(loadTemplates())

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	public := r.Group("/")
	public.Use(s.visitors.middleware())
	public.GET("/", s.home)
	public.GET("/contact-form", s.contactForm)
	public.GET("/work-content", s.workContent)
	public.GET("/education-content", s.educationContent)
	public.POST("/contact", s.contact)
	public.GET("/resume", s.downloadResume)
	public.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":         "Privacy Policy",
			"retentionDays": int(s.cfg.VisitorRetention.Hours() / 24),
		})
	})

	setupAdminRoutes(r, s)
	return r
}

// corsMiddleware lets a separately served admin frontend call the JSON API.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AddAllowHeaders(reqlog.Header)
	cfg.AddExposeHeaders(reqlog.Header, "Content-Disposition")
	return cors.New(cfg)
}

func (s *server) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"aboutMeContent": AboutMe,
		"projects":       Projects,
	})
}

func (s *server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title": "Contact Me",
	})
}

func (s *server) workContent(c *gin.Context) {
	c.HTML(http.StatusOK, "work-content.html", gin.H{
		"entries": Work,
	})
}

func (s *server) educationContent(c *gin.Context) {
	c.HTML(http.StatusOK, "education-content.html", gin.H{
		"entries": Education,
	})
}

// contact stores the message in the inbox and, when SMTP is configured,
// forwards it by mail without holding up the response.
func (s *server) contact(c *gin.Context) {
	xl := reqlog.FromContext(c)
	msg, err := s.inbox.Submit(c.Request.Context(), inbox.Message{
		Name:    c.PostForm("fullName"),
		Email:   c.PostForm("email"),
		Phone:   c.PostForm("phone"),
		Message: c.PostForm("message"),
	})
	var verr validation.Errors
	if errors.As(err, &verr) {
		c.HTML(http.StatusBadRequest, "contact-error.html", gin.H{
			"error": firstError(verr),
		})
		return
	}
	if err != nil {
		xl.Errorf("save contact message: %v", err)
		c.HTML(http.StatusInternalServerError, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}
	xl.Infof("contact message %s stored", msg.ID)

	if s.mail.enabled() {
		go func() {
			if err := s.mail.notify(msg); err != nil {
				log.Printf("Error sending email: %v", err)
			}
		}()
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

// firstError picks the message for the first field in form order.
func firstError(errs validation.Errors) string {
	for _, field := range []string{"name", "email", "phone", "message"} {
		if err, ok := errs[field]; ok {
			return err.Error()
		}
	}
	return errs.Error()
}

func (s *server) downloadResume(c *gin.Context) {
	blob, err := s.resumes.Get(c.Request.Context())
	if errors.Is(err, resume.ErrNotFound) {
		c.String(http.StatusNotFound, resumeMissing)
		return
	}
	if err != nil {
		reqlog.FromContext(c).Errorf("load resume: %v", err)
		c.String(http.StatusInternalServerError, "Error downloading resume. Please try again.")
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(blob.Filename))
	c.Data(http.StatusOK, blob.ContentType, blob.Data)
}
