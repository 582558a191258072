package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-admin/internal/records"
	"github.com/Zachkp/portfolio-admin/internal/reqlog"
)

const recentLimit = 5

// dashboardView is what the dashboard page and its JSON twin render.
type dashboardView struct {
	Windows records.Windows  `json:"windows"`
	Summary records.Summary  `json:"summary"`
	Bucket  records.Bucket   `json:"bucket"`
	Label   string           `json:"label"`
	Records []records.Record `json:"records"`
	Recent  []records.Record `json:"recent"`
	Unread  int              `json:"unread"`
	Feed    feedStatus       `json:"feed"`
}

func (s *server) today() time.Time {
	return s.now().In(s.cfg.Location)
}

func (s *server) dashboard(c *gin.Context, bucketName string) (*dashboardView, error) {
	bucket, err := records.ParseBucket(bucketName)
	if err != nil {
		return nil, err
	}
	feed := currentFeed(c)
	recs := feed.Records()
	now := s.today()

	unread, err := s.inbox.UnreadCount(c.Request.Context())
	if err != nil {
		reqlog.FromContext(c).Errorf("count unread: %v", err)
	}
	return &dashboardView{
		Windows: records.WeekWindows(now),
		Summary: records.Summarize(recs, now),
		Bucket:  bucket,
		Label:   bucket.Label(),
		Records: nonNil(records.Filter(recs, bucket, now)),
		Recent:  records.Recent(recs, recentLimit),
		Unread:  unread,
		Feed:    statusOf(feed),
	}, nil
}

func nonNil(recs []records.Record) []records.Record {
	if recs == nil {
		return []records.Record{}
	}
	return recs
}

func (s *server) dashboardJSON(c *gin.Context) {
	view, err := s.dashboard(c, c.Query("bucket"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// listRecords serves one bucket when ?bucket= is given, otherwise a search
// over the whole collection (newest first).
func (s *server) listRecords(c *gin.Context) {
	feed := currentFeed(c)
	recs := feed.Records()
	if name, ok := c.GetQuery("bucket"); ok {
		bucket, err := records.ParseBucket(name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		recs = records.Filter(recs, bucket, s.today())
	} else {
		recs = records.Search(recs, c.Query("q"))
	}
	c.JSON(http.StatusOK, gin.H{"records": nonNil(recs), "feed": statusOf(feed)})
}

func (s *server) getRecord(c *gin.Context) {
	rec, ok := records.Find(currentFeed(c).Records(), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found."})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *server) editor(c *gin.Context) *records.Editor {
	return records.NewEditor(currentFeed(c), currentSession(c), s.now)
}

// saveRecord submits draft through a fresh editor: an overwrite of the
// record with id when id is set, a create otherwise. The creation time of an
// existing record is kept.
func (s *server) saveRecord(c *gin.Context, id string, draft records.Record) (string, error) {
	ed := s.editor(c)
	if id != "" {
		existing, ok := records.Find(currentFeed(c).Records(), id)
		if !ok {
			return "", fmt.Errorf("record %s: %w", id, records.ErrNotFound)
		}
		draft.CreatedAt = existing.CreatedAt
		ed.Edit(existing)
	}
	ed.SetDraft(draft)
	return ed.Submit(c.Request.Context())
}

func (s *server) createRecord(c *gin.Context) {
	var draft records.Record
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record: " + err.Error()})
		return
	}
	id, err := s.saveRecord(c, "", draft)
	if err != nil {
		s.recordError(c, err, "adding")
		return
	}
	reqlog.FromContext(c).Infof("record %s created", id)
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Record added successfully!"})
}

// updateRecord overwrites every field of an existing record.
func (s *server) updateRecord(c *gin.Context) {
	id := c.Param("id")
	if _, ok := records.Find(currentFeed(c).Records(), id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found."})
		return
	}
	var draft records.Record
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record: " + err.Error()})
		return
	}
	if _, err := s.saveRecord(c, id, draft); err != nil {
		s.recordError(c, err, "updating")
		return
	}
	reqlog.FromContext(c).Infof("record %s updated", id)
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Record updated successfully!"})
}

func (s *server) deleteRecord(c *gin.Context) {
	id := c.Param("id")
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := s.editor(c).Delete(c.Request.Context(), id, confirmed); err != nil {
		s.recordError(c, err, "deleting")
		return
	}
	reqlog.FromContext(c).Infof("record %s deleted", id)
	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully!"})
}

// recordError maps an editor or store error to a response.
func (s *server) recordError(c *gin.Context, err error, op string) {
	msg := records.UserMessage(err, op)
	var verr *records.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": msg, "fields": verr.FieldMessages()})
	case errors.Is(err, records.ErrNotConfirmed):
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	case errors.Is(err, records.ErrPermission):
		c.JSON(http.StatusForbidden, gin.H{"error": msg})
	case errors.Is(err, records.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msg})
	case errors.Is(err, records.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": msg})
	default:
		reqlog.FromContext(c).Errorf("%s record: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func (s *server) exportRecords(c *gin.Context) {
	var buf bytes.Buffer
	err := records.ExportCSV(&buf, currentFeed(c).Records())
	if errors.Is(err, records.ErrNoRecords) {
		s.exportFailed(c, http.StatusNotFound, "No records to download")
		return
	}
	if err != nil {
		reqlog.FromContext(c).Errorf("export records: %v", err)
		s.exportFailed(c, http.StatusInternalServerError, "Error exporting records. Please try again.")
		return
	}

	filename := records.ExportFilename(s.cfg.OwnerName, s.today())
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	reqlog.FromContext(c).Infof("records exported as %s", filename)
	c.Data(http.StatusOK, records.ExportContentType, buf.Bytes())
}

// exportFailed answers API clients with JSON and the browser download link
// with a notice page.
func (s *server) exportFailed(c *gin.Context, code int, msg string) {
	if wantsJSON(c) {
		c.JSON(code, gin.H{"error": msg})
		return
	}
	c.HTML(code, "admin-error.html", gin.H{"error": msg})
}
