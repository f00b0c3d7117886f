package status

import "fmt"

// BaseURL is the host every document link on the proposal page is relative to.
const BaseURL = "https://www.stsci.edu/"

// ProgramInfo holds the proposal metadata shown in the sidebar.
type ProgramInfo struct {
	PI              string
	PIInstitution   string
	Title           string
	Cycle           int
	Allocation      float64 // hours
	ExclusivePeriod int     // months, 0 when the page carries no exclusive access period
	Type            string
	APT             DocLink
	PDF             DocLink
}

// DocLink is a document reference as the proposal page carries it: a path
// relative to BaseURL plus its display label.
type DocLink struct {
	Href  string
	Label string
}

// AbsoluteURL resolves the link against BaseURL.
func (l DocLink) AbsoluteURL() string {
	return BaseURL + l.Href
}

// Markdown renders the link as [label](url) for terminal output.
func (l DocLink) Markdown() string {
	return fmt.Sprintf("[%s](%s)", l.Label, l.AbsoluteURL())
}
