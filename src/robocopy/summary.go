package robocopy

import (
	"strconv"
	"strings"
)

// Summary holds the counters extracted from the tool's end-of-run summary
// block.  Extraction is best effort over semi-structured text: missing or
// malformed sections leave the zero value in place and never fail the run.
type Summary struct {
	Source string
	Dest   string
	Dirs   Row
	Files  Row
	Times  Times
}

// Row is one counter line of the summary table.
type Row struct {
	Total    int
	Copied   int
	Skipped  int
	Mismatch int
	Failed   int
	Extras   int
}

// Times is the duration line of the summary table.  The fields are kept as
// the tool prints them (H:MM:SS).
type Times struct {
	Total  string
	Copied string
	Failed string
	Extras string
}

// ParseSummary scans the raw output lines for the summary section.  Later
// occurrences win, which matches the tool's output where the summary is the
// last thing printed.
func ParseSummary(lines []string) *Summary {
	summary := &Summary{}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "Source :"):
			summary.Source = strings.TrimSpace(strings.TrimPrefix(trimmed, "Source :"))
		case strings.HasPrefix(trimmed, "Dest :"):
			summary.Dest = strings.TrimSpace(strings.TrimPrefix(trimmed, "Dest :"))
		case strings.HasPrefix(trimmed, "Dirs :"):
			summary.Dirs = parseRow(strings.TrimPrefix(trimmed, "Dirs :"))
		case strings.HasPrefix(trimmed, "Files :"):
			summary.Files = parseRow(strings.TrimPrefix(trimmed, "Files :"))
		case strings.HasPrefix(trimmed, "Times :"):
			summary.Times = parseTimes(strings.TrimPrefix(trimmed, "Times :"))
		}
	}

	return summary
}

func parseRow(s string) Row {
	row := Row{}
	fields := strings.Fields(s)

	for i, dst := range []*int{
		&row.Total,
		&row.Copied,
		&row.Skipped,
		&row.Mismatch,
		&row.Failed,
		&row.Extras,
	} {
		if i >= len(fields) {
			break
		}

		value, err := strconv.Atoi(fields[i])
		if err != nil {
			continue
		}
		*dst = value
	}

	return row
}

func parseTimes(s string) Times {
	times := Times{}
	fields := strings.Fields(s)

	for i, dst := range []*string{
		&times.Total,
		&times.Copied,
		&times.Failed,
		&times.Extras,
	} {
		if i >= len(fields) {
			break
		}
		*dst = fields[i]
	}

	return times
}

// CopiedItems is the number of directories and files the tool reports as
// copied.  Zero when no summary was found.
func (s *Summary) CopiedItems() int {
	return s.Dirs.Copied + s.Files.Copied
}

// Elapsed returns the total execution time as printed by the tool, or "NA"
// when the summary was absent.
func (s *Summary) Elapsed() string {
	if s.Times.Total == "" {
		return "NA"
	}
	return s.Times.Total
}
