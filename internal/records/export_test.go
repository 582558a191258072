package records

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSVRefusesEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := ExportCSV(&buf, nil)
	assert.ErrorIs(t, err, ErrNoRecords)
	assert.Zero(t, buf.Len())
}

func TestExportCSVRoundTrip(t *testing.T) {
	r := rec("1", "2024-06-12", StatusPass)
	r.RecruiterName = "Doe, Jane"
	r.CallingDate = "2024-06-01"
	r.CompanyName = `Acme "Rockets"`
	r.Location = "Pune"
	r.Package = "12,5 LPA"
	r.JobRole = "SRE"
	r.MailReceived = Mail{Status: Yes, Date: "2024-06-02"}
	r.Round1 = StatusComplete
	r.InterviewTime = "13:30"
	r.FinalStatus = "Offer"
	r.Remarks = "line one\nline two\r\nline three"

	other := rec("2", "", StatusProcess)

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, []Record{r, other}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ExportHeader, rows[0])
	assert.Len(t, rows[0], 20)

	assert.Equal(t, []string{
		"1", "Doe, Jane", "9876543210", "01-06-2024", `Acme "Rockets"`, "Pune",
		"12,5 LPA", "SRE", "Yes", "02-06-2024", "No", "N/A",
		"Complete", "Process", "Process", "Pass", "12-06-2024", "1:30 PM",
		"Offer", "line one line two line three",
	}, rows[1])
	assert.Equal(t, ExportRow(1, r), rows[1])

	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "N/A", rows[2][16])
	assert.Equal(t, "00:00 AM", rows[2][17])
}

func TestExportQuotesCommas(t *testing.T) {
	r := rec("1", "", StatusProcess)
	r.CompanyName = "A, B"
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, []Record{r}))
	assert.True(t, strings.Contains(buf.String(), `"A, B"`))
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "HR_Database_Zach_Kordas_6-9-2024.csv", ExportFilename("Zach_Kordas", now))
}
