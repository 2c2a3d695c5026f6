// Package dbscript turns exported report metadata into SQL cleanup scripts.
// The scripts are meant to be reviewed and then fed to psql by an operator,
// so the package only ever generates text and never touches a database.
package dbscript

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// timeLayout matches the timestamp format produced by a psql CSV export of
// the reports table.
const timeLayout = "2006-01-02 15:04:05.999999"

// columnCount is the minimum number of columns a reports export carries:
// org_id, cluster_id, report, reported_at, last_checked_at.
const columnCount = 5

var (
	ErrBadHeader = errors.New("unexpected CSV header")
	ErrBadRow    = errors.New("malformed CSV row")
)

// Row is one record from a reports table export. The report payload itself
// is not kept; only the metadata needed to decide on deletion.
type Row struct {
	OrgID         int
	ClusterID     string
	ReportedAt    time.Time
	LastCheckedAt string
}

// ParseRows reads a psql CSV export of the reports table. The first record
// is treated as the header and skipped.
func ParseRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	if len(header) < columnCount {
		return nil, fmt.Errorf("%w: got %d columns, want at least %d", ErrBadHeader, len(header), columnCount)
	}

	var rows []Row

	for line := 2; ; line++ {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("reading CSV: %w", readErr)
		}

		row, rowErr := parseRow(record)
		if rowErr != nil {
			return nil, fmt.Errorf("line %d: %w", line, rowErr)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func parseRow(record []string) (Row, error) {
	if len(record) < columnCount {
		return Row{}, fmt.Errorf("%w: got %d columns, want at least %d", ErrBadRow, len(record), columnCount)
	}

	orgID, err := strconv.Atoi(record[0])
	if err != nil {
		return Row{}, fmt.Errorf("%w: org_id %q is not an integer", ErrBadRow, record[0])
	}

	reportedAt, err := time.Parse(timeLayout, record[3])
	if err != nil {
		return Row{}, fmt.Errorf("%w: reported_at %q: %v", ErrBadRow, record[3], err)
	}

	return Row{
		OrgID:         orgID,
		ClusterID:     record[1],
		ReportedAt:    reportedAt,
		LastCheckedAt: record[4],
	}, nil
}

// WriteScript emits one DELETE statement per row whose report is older than
// maxAgeDays relative to now, and returns how many statements were written.
func WriteScript(w io.Writer, rows []Row, maxAgeDays int, now time.Time) (int, error) {
	cutoff := now.AddDate(0, 0, -maxAgeDays)
	written := 0

	for _, row := range rows {
		if !row.ReportedAt.Before(cutoff) {
			continue
		}

		age := int(now.Sub(row.ReportedAt).Hours() / 24)

		_, err := fmt.Fprintf(w,
			"-- reported at %s, %d days old\ndelete from reports where org_id=%d and cluster_id='%s';\n",
			row.ReportedAt.Format(timeLayout), age, row.OrgID, quoteSQL(row.ClusterID))
		if err != nil {
			return written, fmt.Errorf("writing script: %w", err)
		}

		written++
	}

	return written, nil
}

// quoteSQL doubles single quotes for embedding in a SQL string literal.
func quoteSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
