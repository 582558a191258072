package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-admin/internal/inbox"
	"github.com/Zachkp/portfolio-admin/internal/records"
	"github.com/Zachkp/portfolio-admin/internal/reqlog"
	"github.com/Zachkp/portfolio-admin/internal/resume"
	"github.com/Zachkp/portfolio-admin/internal/session"
	"github.com/Zachkp/portfolio-admin/internal/store"
)

const (
	sessionKey = "session"
	feedKey    = "feed"
)

// wantsJSON reports whether an unauthenticated request should get a JSON 401
// rather than a redirect to the login page.
func wantsJSON(c *gin.Context) bool {
	path := c.Request.URL.Path
	return strings.HasPrefix(path, "/admin/api/") ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}

// adminAuthMiddleware restores the session from its cookie and attaches the
// owner's live record feed.
func (s *server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(session.CookieName)
		sess, err := s.sessions.Verify(token)
		if errors.Is(err, session.ErrExpiredToken) {
			s.hub.SignOut(sess.UID)
		}
		if err != nil {
			if wantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please sign in."})
				return
			}
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}

		feed, err := s.hub.Feed(c.Request.Context(), sess)
		if err != nil {
			reqlog.FromContext(c).Errorf("open record feed for %s: %v", sess.UID, err)
		}
		c.Set(sessionKey, sess)
		c.Set(feedKey, feed)
		c.Next()
	}
}

func currentSession(c *gin.Context) session.Session {
	return c.MustGet(sessionKey).(session.Session)
}

func currentFeed(c *gin.Context) *store.Feed {
	return c.MustGet(feedKey).(*store.Feed)
}

// feedStatus describes the live feed for the views.
type feedStatus struct {
	State   string `json:"state"`
	Version uint64 `json:"version"`
	Error   string `json:"error,omitempty"`
}

func statusOf(f *store.Feed) feedStatus {
	state, err := f.Status()
	st := feedStatus{State: state.String(), Version: f.Version()}
	if err != nil {
		st.Error = records.UserMessage(err, "loading")
	}
	return st
}

func setupAdminRoutes(r *gin.Engine, s *server) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})
	r.POST("/admin/login", s.login)
	r.GET("/admin/logout", s.logout)

	adminGroup := r.Group("/admin")
	adminGroup.Use(corsMiddleware(s.cfg.Origins), s.adminAuthMiddleware())

	adminGroup.GET("/dashboard", s.dashboardPage)
	adminGroup.GET("/hr", s.hrPage)
	adminGroup.POST("/hr", s.submitRecordForm)
	adminGroup.GET("/hr/new", s.newRecordForm)
	adminGroup.GET("/hr/:id", s.recordDetail)
	adminGroup.POST("/hr/:id", s.submitRecordForm)
	adminGroup.GET("/hr/:id/edit", s.editRecordForm)
	adminGroup.DELETE("/hr/:id", s.deleteRecordRow)
	adminGroup.GET("/inbox", s.inboxPage)
	adminGroup.DELETE("/inbox/:id", s.deleteInboxMessage)
	adminGroup.GET("/export/records.csv", s.exportRecords)
	adminGroup.POST("/resume", s.uploadResume)

	api := adminGroup.Group("/api")
	api.GET("/dashboard", s.dashboardJSON)
	api.GET("/records", s.listRecords)
	api.GET("/records/:id", s.getRecord)
	api.POST("/records", s.createRecord)
	api.PUT("/records/:id", s.updateRecord)
	api.DELETE("/records/:id", s.deleteRecord)
	api.GET("/messages", s.listMessages)
	api.POST("/messages/read", s.markMessagesRead)
	api.DELETE("/messages/:id", s.deleteMessage)
	api.GET("/visitors", s.visitorStats)
}

func (s *server) login(c *gin.Context) {
	sess, err := s.sessions.SignIn(c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		log.Printf("Failed admin login attempt from %s", s.visitors.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid email or password.",
		})
		return
	}

	token, err := s.sessions.Issue(sess)
	if err != nil {
		reqlog.FromContext(c).Errorf("issue session: %v", err)
		c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
			"error": "Could not start a session. Please try again.",
		})
		return
	}
	if _, err := s.hub.SignIn(c.Request.Context(), sess); err != nil {
		// The dashboard shows the failed feed; sign-in itself succeeded.
		reqlog.FromContext(c).Errorf("open record feed for %s: %v", sess.UID, err)
	}

	c.SetCookie(session.CookieName, token, int(session.TTL.Seconds()), "/admin", "", false, true)
	log.Printf("Admin login successful from %s", s.visitors.hashIP(c.ClientIP()))
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *server) logout(c *gin.Context) {
	token, _ := c.Cookie(session.CookieName)
	if sess, err := s.sessions.Verify(token); err == nil || errors.Is(err, session.ErrExpiredToken) {
		s.hub.SignOut(sess.UID)
	}
	c.SetCookie(session.CookieName, "", -1, "/admin", "", false, true)
	log.Printf("Admin logout from %s", s.visitors.hashIP(c.ClientIP()))
	c.Redirect(http.StatusFound, "/admin/login")
}

func (s *server) dashboardPage(c *gin.Context) {
	view, err := s.dashboard(c, c.Query("bucket"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "admin-error.html", gin.H{"error": err.Error()})
		return
	}
	visitors, err := s.visitors.stats(c.Request.Context())
	if err != nil {
		reqlog.FromContext(c).Errorf("load visitor stats: %v", err)
		visitors = &VisitorStats{}
	}
	c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
		"view":     view,
		"buckets":  records.Buckets,
		"visitors": visitors,
		"email":    currentSession(c).Email,
	})
}

func (s *server) hrPage(c *gin.Context) {
	query := c.Query("q")
	c.HTML(http.StatusOK, "admin-hr.html", gin.H{
		"query":   query,
		"records": records.Search(currentFeed(c).Records(), query),
		"feed":    statusOf(currentFeed(c)),
	})
}

// inboxPage lists messages with their unread flags, then marks them read.
func (s *server) inboxPage(c *gin.Context) {
	ctx := c.Request.Context()
	msgs, err := s.inbox.List(ctx)
	if err != nil {
		reqlog.FromContext(c).Errorf("list messages: %v", err)
		c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
			"error": "Failed to load messages",
		})
		return
	}
	if _, err := s.inbox.MarkAllRead(ctx); err != nil {
		reqlog.FromContext(c).Errorf("mark messages read: %v", err)
	}
	c.HTML(http.StatusOK, "admin-inbox.html", gin.H{
		"messages": msgs,
	})
}

func (s *server) listMessages(c *gin.Context) {
	ctx := c.Request.Context()
	msgs, err := s.inbox.List(ctx)
	if err != nil {
		reqlog.FromContext(c).Errorf("list messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	unread, err := s.inbox.UnreadCount(ctx)
	if err != nil {
		reqlog.FromContext(c).Errorf("count unread: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs, "unread": unread})
}

func (s *server) markMessagesRead(c *gin.Context) {
	n, err := s.inbox.MarkAllRead(c.Request.Context())
	if err != nil {
		reqlog.FromContext(c).Errorf("mark messages read: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

// messageDeleteError maps an inbox.Delete failure to a status and the text
// shown to the operator.
func messageDeleteError(err error) (int, string) {
	switch {
	case errors.Is(err, inbox.ErrNotConfirmed):
		return http.StatusBadRequest, "Deletion cancelled."
	case errors.Is(err, inbox.ErrNotFound):
		return http.StatusNotFound, "Message not found."
	default:
		return http.StatusInternalServerError, "Failed to delete message"
	}
}

func (s *server) deleteMessage(c *gin.Context) {
	id := c.Param("id")
	if err := s.inbox.Delete(c.Request.Context(), id, c.Query("confirm") == "true"); err != nil {
		code, msg := messageDeleteError(err)
		if code == http.StatusInternalServerError {
			reqlog.FromContext(c).Errorf("delete message %s: %v", id, err)
		}
		c.JSON(code, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}

// deleteInboxMessage removes a message card from the inbox page.
func (s *server) deleteInboxMessage(c *gin.Context) {
	id := c.Param("id")
	if err := s.inbox.Delete(c.Request.Context(), id, c.Query("confirm") == "true"); err != nil {
		code, msg := messageDeleteError(err)
		if code == http.StatusInternalServerError {
			reqlog.FromContext(c).Errorf("delete message %s: %v", id, err)
		}
		notice(c, msg)
		return
	}
	reqlog.FromContext(c).Infof("message %s deleted", id)
	c.Status(http.StatusOK)
}

func (s *server) visitorStats(c *gin.Context) {
	stats, err := s.visitors.stats(c.Request.Context())
	if err != nil {
		reqlog.FromContext(c).Errorf("load visitor stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *server) uploadResume(c *gin.Context) {
	xl := reqlog.FromContext(c)
	fh, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please choose a resume file to upload."})
		return
	}
	if fh.Size > resume.MaxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume must be 10 MB or smaller."})
		return
	}
	f, err := fh.Open()
	if err != nil {
		xl.Errorf("open upload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read the uploaded file."})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, resume.MaxSize+1))
	if err != nil {
		xl.Errorf("read upload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read the uploaded file."})
		return
	}

	blob, err := resume.Prepare(fh.Filename, data)
	switch {
	case errors.Is(err, resume.ErrFileType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload a PDF or Word document."})
		return
	case errors.Is(err, resume.ErrTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume must be 10 MB or smaller."})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "The uploaded file is empty."})
		return
	}
	if err := s.resumes.Put(c.Request.Context(), blob); err != nil {
		xl.Errorf("store resume: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading resume. Please try again."})
		return
	}
	xl.Infof("resume %s uploaded (%d bytes)", blob.Filename, len(blob.Data))
	c.JSON(http.StatusOK, gin.H{"message": "Resume uploaded successfully", "filename": blob.Filename})
}
