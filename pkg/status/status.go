package status

import (
	"fmt"
	"log"
	"strings"
)

// AllStatuses is the filter selector that keeps every displayable record.
const AllStatuses = "All"

// VisitRecord is one flat row of a program's visit status report.
// An empty Status means the report carries no status for this visit;
// such rows are never displayable.
type VisitRecord struct {
	Observation   string
	Visit         string
	Status        string
	Target        string
	Configuration string
	Hours         string
	StartTime     string
	EndTime       string
	PlanWindow    string
	Repeat        string
}

// Column pairs a record field with the label shown in table headers.
type Column struct {
	Name  string
	Label string
}

// Columns is the fixed table layout, in display order.
var Columns = []Column{
	{Name: "observation", Label: "Observation ID"},
	{Name: "visit", Label: "Visit ID"},
	{Name: "status", Label: "Visit Status"},
	{Name: "target", Label: "Target"},
	{Name: "configuration", Label: "Science Instrument"},
	{Name: "hours", Label: "Hours"},
	{Name: "start_ut", Label: "Start Time (UTC)"},
	{Name: "end_ut", Label: "End Time (UTC)"},
	{Name: "plan_window", Label: "Plan Window/s"},
	{Name: "repeat", Label: "Repeat"},
}

// Field returns the record value for a column name.
func (r VisitRecord) Field(name string) string {
	switch name {
	case "observation":
		return r.Observation
	case "visit":
		return r.Visit
	case "status":
		return r.Status
	case "target":
		return r.Target
	case "configuration":
		return r.Configuration
	case "hours":
		return r.Hours
	case "start_ut":
		return r.StartTime
	case "end_ut":
		return r.EndTime
	case "plan_window":
		return r.PlanWindow
	case "repeat":
		return r.Repeat
	}
	return ""
}

// FilterByStatus drops records without a status, then keeps either all of the
// rest (selector AllStatuses) or the exact case-sensitive matches, preserving
// input order. The second return value is the pixel height the table widget
// needs for the filtered rows.
func FilterByStatus(selector string, records []VisitRecord) ([]VisitRecord, int) {
	filtered := []VisitRecord{}
	for _, r := range records {
		if r.Status == "" {
			continue
		}
		if selector == AllStatuses || r.Status == selector {
			filtered = append(filtered, r)
		}
	}
	return filtered, DisplayHeight(len(filtered))
}

// DisplayHeight converts a row count into the table widget height. The
// downstream table rendering depends on this exact formula.
func DisplayHeight(rows int) int {
	return rows*35 + 3
}

// StatusValues returns the distinct non-empty statuses in first-seen order.
// It feeds the status selector in the CLI and the web UI.
func StatusValues(records []VisitRecord) []string {
	seen := make(map[string]bool)
	var values []string
	for _, r := range records {
		if r.Status == "" || seen[r.Status] {
			continue
		}
		seen[r.Status] = true
		values = append(values, r.Status)
	}
	return values
}

// PrintRecords prints one line per record, with columns selected by
// outputFlags and joined by delimiter.
func PrintRecords(records []VisitRecord, outputFlags string, delimiter string) {
	for _, r := range records {
		line := createLine(r, outputFlags, delimiter)
		if len(line) > 0 {
			fmt.Println(line)
		}
	}
}

func createLine(r VisitRecord, outputFlags, delimiter string) string {
	var line string
	for _, f := range outputFlags {
		switch f {
		case 'o':
			line += r.Observation + delimiter
		case 'v':
			line += r.Visit + delimiter
		case 's':
			line += r.Status + delimiter
		case 't':
			line += r.Target + delimiter
		case 'c':
			line += r.Configuration + delimiter
		case 'h':
			line += r.Hours + delimiter
		case 'b':
			line += r.StartTime + delimiter
		case 'e':
			line += r.EndTime + delimiter
		case 'p':
			line += r.PlanWindow + delimiter
		case 'r':
			line += r.Repeat + delimiter
		default:
			log.Fatal("Invalid print flag")
		}
	}
	return strings.TrimSuffix(line, delimiter)
}
