package jwst

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/obsdesk/jwstatus/pkg/status"
)

// longRangePlanMessage substitutes for a plan window when a visit is flagged
// for long range planning but no window has been assigned yet.
const longRangePlanMessage = "Ready for long range planning, plan window not yet assigned"

// visitStatusReport mirrors the get-visit-status XML. Decoding the visit
// entries into a slice is what normalizes the report's one-or-many ambiguity:
// a report with a single bare <visit> and a report with a one-element list
// produce identical slices.
type visitStatusReport struct {
	XMLName xml.Name     `xml:"visitStatusReport"`
	Visits  []visitEntry `xml:"visit"`
}

// Required fields decode through pointers so a missing element or attribute
// is distinguishable from an empty one. Status stays a plain string: a visit
// without a status is a valid, non-displayable row, not a shape violation.
type visitEntry struct {
	Observation   *string  `xml:"observation,attr"`
	Visit         *string  `xml:"visit,attr"`
	Status        string   `xml:"status"`
	Target        *string  `xml:"target"`
	Configuration *string  `xml:"configuration"`
	Hours         *string  `xml:"hours"`
	StartTime     string   `xml:"startTime"`
	EndTime       string   `xml:"endTime"`
	PlanWindows   []string `xml:"planWindow"`

	// Presence markers: nil means the element wasn't in the entry.
	LongRangePlanStatus *string    `xml:"longRangePlanStatus"`
	RepeatedBy          *repeatRef `xml:"repeatedBy"`
	RepeatOf            *repeatRef `xml:"repeatOf"`
	ApprovedRepeat      *repeatRef `xml:"approvedRepeat"`
}

// repeatRef is a cross-reference to another visit via a WOPR (problem
// tracking) id.
type repeatRef struct {
	ProblemID   string `xml:"problemID"`
	Observation string `xml:"observation"`
	Visit       string `xml:"visit"`
}

// ParseVisitStatus decodes a visit status report and normalizes each entry
// into a flat VisitRecord, in document order.
func ParseVisitStatus(body string) ([]status.VisitRecord, error) {
	var report visitStatusReport
	if err := xml.Unmarshal([]byte(body), &report); err != nil {
		return nil, fmt.Errorf("decoding visit status report: %w", err)
	}

	records := make([]status.VisitRecord, 0, len(report.Visits))
	for _, entry := range report.Visits {
		record, err := normalizeVisit(entry)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// normalizeVisit is a pure function of one raw entry. Start and end times may
// be absent; plan window and repeat each resolve to exactly one of their
// variants or stay empty. Every other field is required: a visit entry
// missing one means the report shape changed, and silently defaulting it
// would put wrong data in the table.
func normalizeVisit(entry visitEntry) (status.VisitRecord, error) {
	if entry.Observation == nil || entry.Visit == nil {
		return status.VisitRecord{}, &ShapeError{
			Doc:    "visit-status",
			Detail: "visit entry missing observation or visit attribute",
		}
	}

	target, err := requiredChild(entry.Target, "target")
	if err != nil {
		return status.VisitRecord{}, err
	}
	configuration, err := requiredChild(entry.Configuration, "configuration")
	if err != nil {
		return status.VisitRecord{}, err
	}
	hours, err := requiredChild(entry.Hours, "hours")
	if err != nil {
		return status.VisitRecord{}, err
	}

	record := status.VisitRecord{
		Observation:   *entry.Observation,
		Visit:         *entry.Visit,
		Status:        strings.TrimSpace(entry.Status),
		Target:        target,
		Configuration: configuration,
		Hours:         hours,
		StartTime:     strings.TrimSpace(entry.StartTime),
		EndTime:       strings.TrimSpace(entry.EndTime),
	}

	record.PlanWindow = resolvePlanWindow(entry)

	repeat, err := resolveRepeat(entry)
	if err != nil {
		return status.VisitRecord{}, err
	}
	record.Repeat = repeat

	return record, nil
}

func requiredChild(v *string, name string) (string, error) {
	if v == nil {
		return "", &ShapeError{
			Doc:    "visit-status",
			Detail: "visit entry missing " + name,
		}
	}
	return strings.TrimSpace(*v), nil
}

// resolvePlanWindow applies the plan-window priority order. Each raw window
// carries a trailing parenthesized confidence annotation that gets stripped;
// multiple windows are concatenated with a space after each one.
func resolvePlanWindow(entry visitEntry) string {
	switch {
	case len(entry.PlanWindows) == 1:
		return stripAnnotation(entry.PlanWindows[0])
	case len(entry.PlanWindows) > 1:
		var sb strings.Builder
		for _, window := range entry.PlanWindows {
			sb.WriteString(stripAnnotation(window))
			sb.WriteString(" ")
		}
		return sb.String()
	case entry.LongRangePlanStatus != nil:
		return longRangePlanMessage
	}
	return ""
}

func stripAnnotation(window string) string {
	return strings.SplitN(strings.TrimSpace(window), "(", 2)[0]
}

// resolveRepeat applies the repeat-relationship priority order: rescheduled
// by, repeat of, approved repeat pending, or nothing. A reference that is
// present but missing a required child means the report shape changed.
func resolveRepeat(entry visitEntry) (string, error) {
	switch {
	case entry.RepeatedBy != nil:
		ref := entry.RepeatedBy
		if err := ref.require("repeatedBy", true); err != nil {
			return "", err
		}
		return fmt.Sprintf("Rescheduled by WOPR %s as observation %s visit %s in this program",
			ref.ProblemID, ref.Observation, ref.Visit), nil

	case entry.RepeatOf != nil:
		ref := entry.RepeatOf
		if err := ref.require("repeatOf", true); err != nil {
			return "", err
		}
		return fmt.Sprintf("Repeat of observation %s visit(s) %s in this program by WOPR %s",
			ref.Observation, ref.Visit, ref.ProblemID), nil

	case entry.ApprovedRepeat != nil:
		ref := entry.ApprovedRepeat
		if err := ref.require("approvedRepeat", false); err != nil {
			return "", err
		}
		return fmt.Sprintf("Repeat visit implementation pending by WOPR %s", ref.ProblemID), nil
	}
	return "", nil
}

func (r *repeatRef) require(name string, wantVisit bool) error {
	if strings.TrimSpace(r.ProblemID) == "" {
		return &ShapeError{Doc: "visit-status", Detail: name + " reference missing problemID"}
	}
	if wantVisit && (strings.TrimSpace(r.Observation) == "" || strings.TrimSpace(r.Visit) == "") {
		return &ShapeError{Doc: "visit-status", Detail: name + " reference missing observation or visit"}
	}
	r.ProblemID = strings.TrimSpace(r.ProblemID)
	r.Observation = strings.TrimSpace(r.Observation)
	r.Visit = strings.TrimSpace(r.Visit)
	return nil
}
