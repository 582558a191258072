package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Zachkp/portfolio-admin/internal/datefmt"
)

// ErrNoRecords is returned when there is nothing to export.
var ErrNoRecords = errors.New("no records to download")

// ExportHeader is the fixed first row of an export.
var ExportHeader = []string{
	"S.No", "HR Name", "Contact No", "Calling Date", "Company Name", "Location",
	"Package", "Job Role", "Mail Received Status", "Mail Received Date",
	"Mail Revert Status", "Mail Revert Date", "R1", "R2", "R3",
	"Interview Status", "Interview Date", "Interview Timing", "Final Status", "Remark",
}

const ExportContentType = "text/csv; charset=utf-8"

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// ExportRow renders one record with the same formatters the panel displays
// it with. index is the 1-based row number.
func ExportRow(index int, r Record) []string {
	return []string{
		strconv.Itoa(index),
		r.RecruiterName,
		r.ContactNumber,
		datefmt.DDMMYYYY(r.CallingDate),
		r.CompanyName,
		r.Location,
		r.Package,
		r.JobRole,
		string(r.MailReceived.Status),
		datefmt.DDMMYYYY(r.MailReceived.Date),
		string(r.MailRevert.Status),
		datefmt.DDMMYYYY(r.MailRevert.Date),
		string(r.Round1),
		string(r.Round2),
		string(r.Round3),
		string(r.InterviewStatus),
		datefmt.DDMMYYYY(r.InterviewDate),
		datefmt.TimeTo12H(r.InterviewTime),
		r.FinalStatus,
		lineBreaks.Replace(r.Remarks),
	}
}

// ExportCSV writes the header and one row per record in collection order.
func ExportCSV(w io.Writer, recs []Record) error {
	if len(recs) == 0 {
		return ErrNoRecords
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range recs {
		if err := cw.Write(ExportRow(i+1, r)); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ExportFilename builds "HR_Database_<name>_<M-D-YYYY>.csv".
func ExportFilename(name string, now time.Time) string {
	return fmt.Sprintf("HR_Database_%s_%s.csv", name, now.Format("1-2-2006"))
}
