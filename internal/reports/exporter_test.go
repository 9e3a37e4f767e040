package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/oguzkaan/campus-events-backend/internal/participation"
)

func sampleRoster() []participation.Participant {
	return []participation.Participant{
		{UserID: "u1", FullName: "Ada Lovelace", Email: "ada@campus.edu", JoinedAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)},
		{UserID: "u2", FullName: "Alan Turing", Email: "alan@campus.edu", JoinedAt: time.Date(2026, 9, 2, 11, 30, 0, 0, time.UTC)},
	}
}

func TestExportCSV(t *testing.T) {
	data, filename, contentType, err := Export(FormatCSV, "Jazz Evening", sampleRoster())
	require.NoError(t, err)

	assert.Equal(t, "text/csv", contentType)
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Full Name,Email,Joined At", lines[0])
	assert.Contains(t, lines[1], "Ada Lovelace")
	assert.Contains(t, lines[2], "alan@campus.edu")
}

func TestExportExcel(t *testing.T) {
	data, filename, contentType, err := Export(FormatXLSX, "Jazz Evening", sampleRoster())
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(filename, ".xlsx"))
	assert.Contains(t, contentType, "spreadsheetml")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Participants", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Jazz Evening", title)

	name, err := f.GetCellValue("Participants", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", name)
}

func TestExportPDF(t *testing.T) {
	data, filename, contentType, err := Export(FormatPDF, "Jazz Evening", sampleRoster())
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportEmptyRoster(t *testing.T) {
	data, _, _, err := Export(FormatCSV, "Lonely Event", nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 1, "header only")
}

func TestExportUnknownFormat(t *testing.T) {
	_, _, _, err := Export("docx", "Jazz Evening", sampleRoster())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
