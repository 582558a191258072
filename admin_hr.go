package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-admin/internal/records"
	"github.com/Zachkp/portfolio-admin/internal/reqlog"
)

// selectField is one drop-down of the record form.
type selectField struct {
	Name    string
	Label   string
	Value   string
	Options []string
}

func statusOptions() []string {
	out := make([]string, len(records.Statuses))
	for i, st := range records.Statuses {
		out[i] = string(st)
	}
	return out
}

func recordSelects(r records.Record) []selectField {
	answers := []string{string(records.Yes), string(records.No)}
	statuses := statusOptions()
	return []selectField{
		{"mailReceivedStatus", "Mail received", string(r.MailReceived.Status), answers},
		{"mailRevertStatus", "Mail revert", string(r.MailRevert.Status), answers},
		{"r1", "Round 1", string(r.Round1), statuses},
		{"r2", "Round 2", string(r.Round2), statuses},
		{"r3", "Round 3", string(r.Round3), statuses},
		{"interviewStatus", "Interview status", string(r.InterviewStatus), statuses},
	}
}

// recordFromForm reads a record draft from the posted form fields, which
// carry the same names as the JSON API.
func recordFromForm(c *gin.Context) records.Record {
	return records.Record{
		RecruiterName: c.PostForm("hrName"),
		ContactNumber: c.PostForm("contactNo"),
		CallingDate:   c.PostForm("callingDate"),
		CompanyName:   c.PostForm("companyName"),
		Location:      c.PostForm("location"),
		Package:       c.PostForm("package"),
		JobRole:       c.PostForm("jobRole"),
		MailReceived: records.Mail{
			Status: records.YesNo(c.PostForm("mailReceivedStatus")),
			Date:   c.PostForm("mailReceivedDate"),
		},
		MailRevert: records.Mail{
			Status: records.YesNo(c.PostForm("mailRevertStatus")),
			Date:   c.PostForm("mailRevertDate"),
		},
		Round1:          records.Status(c.PostForm("r1")),
		Round2:          records.Status(c.PostForm("r2")),
		Round3:          records.Status(c.PostForm("r3")),
		InterviewStatus: records.Status(c.PostForm("interviewStatus")),
		InterviewDate:   c.PostForm("interviewDate"),
		InterviewTime:   c.PostForm("interviewTiming"),
		FinalStatus:     c.PostForm("finalStatus"),
		Remarks:         c.PostForm("remarkNote"),
	}
}

// notice swaps msg into the page's #notice area instead of the request's
// own target. htmx only swaps 2xx responses.
func notice(c *gin.Context, msg string) {
	c.Header("HX-Retarget", "#notice")
	c.Header("HX-Reswap", "innerHTML")
	c.HTML(http.StatusOK, "admin-notice.html", gin.H{"error": msg})
}

func (s *server) renderRecordForm(c *gin.Context, id string, draft records.Record, msg string) {
	c.HTML(http.StatusOK, "record-form.html", gin.H{
		"id":      id,
		"draft":   draft,
		"error":   msg,
		"selects": recordSelects(draft),
	})
}

func (s *server) newRecordForm(c *gin.Context) {
	s.renderRecordForm(c, "", records.NewRecord(), "")
}

func (s *server) editRecordForm(c *gin.Context) {
	rec, ok := records.Find(currentFeed(c).Records(), c.Param("id"))
	if !ok {
		notice(c, "Record not found.")
		return
	}
	s.renderRecordForm(c, rec.ID, rec, "")
}

func (s *server) recordDetail(c *gin.Context) {
	rec, ok := records.Find(currentFeed(c).Records(), c.Param("id"))
	if !ok {
		notice(c, "Record not found.")
		return
	}
	c.HTML(http.StatusOK, "record-detail.html", gin.H{"record": rec})
}

// submitRecordForm saves the posted form. A rejected draft comes back in
// the form with the reason on top.
func (s *server) submitRecordForm(c *gin.Context) {
	id := c.Param("id")
	op, done := "adding", "Record added successfully!"
	if id != "" {
		op, done = "updating", "Record updated successfully!"
	}

	draft := recordFromForm(c)
	saved, err := s.saveRecord(c, id, draft)
	if err != nil {
		var verr *records.ValidationError
		if !errors.As(err, &verr) {
			reqlog.FromContext(c).Errorf("%s record: %v", op, err)
		}
		s.renderRecordForm(c, id, draft, records.UserMessage(err, op))
		return
	}

	reqlog.FromContext(c).Infof("record %s saved from form", saved)
	c.Header("HX-Redirect", "/admin/hr")
	c.HTML(http.StatusOK, "contact-success.html", gin.H{"success": done})
}

// deleteRecordRow removes a record from the HR table. The empty response
// replaces the row.
func (s *server) deleteRecordRow(c *gin.Context) {
	id := c.Param("id")
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := s.editor(c).Delete(c.Request.Context(), id, confirmed); err != nil {
		if !errors.Is(err, records.ErrNotConfirmed) {
			reqlog.FromContext(c).Errorf("deleting record %s: %v", id, err)
		}
		notice(c, records.UserMessage(err, "deleting"))
		return
	}
	reqlog.FromContext(c).Infof("record %s deleted", id)
	c.Status(http.StatusOK)
}
