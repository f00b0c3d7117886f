package jwst

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/obsdesk/jwstatus/pkg/status"
)

// Child node offsets on the proposal-info page. The CGI renders all scalar
// fields at fixed positions inside the first two paragraphs, interleaved with
// <b> label tags; there are no ids or classes to select on, so these offsets
// are the contract. Don't "fix" them without a sample page in hand.
const (
	piOffset          = 1
	institutionOffset = 5
	titleOffset       = 1
	cycleOffset       = 5
	allocationOffset  = 9
)

// ParseProposalInfo extracts the proposal metadata from a proposal-info HTML
// page. A page without any <p> elements is how the upstream CGI reports an
// unknown program id; that case returns (nil, nil) and the caller maps it to
// ErrNotFound.
func ParseProposalInfo(body string) (*status.ProgramInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	ps := doc.Find("p")
	if ps.Length() == 0 {
		return nil, nil
	}

	info := &status.ProgramInfo{}

	first := childNodes(ps.Eq(0))
	if info.PI, err = textAt(first, piOffset, "p[0]"); err != nil {
		return nil, err
	}
	if info.PIInstitution, err = textAt(first, institutionOffset, "p[0]"); err != nil {
		return nil, err
	}

	second := childNodes(ps.Eq(1))
	if info.Title, err = textAt(second, titleOffset, "p[1]"); err != nil {
		return nil, err
	}

	cycleText, err := textAt(second, cycleOffset, "p[1]")
	if err != nil {
		return nil, err
	}
	if info.Cycle, err = strconv.Atoi(cycleText); err != nil {
		return nil, &ParseError{Field: "cycle", Value: cycleText, Err: err}
	}

	allocationText, err := textAt(second, allocationOffset, "p[1]")
	if err != nil {
		return nil, err
	}
	allocationFields := strings.Fields(allocationText)
	if len(allocationFields) == 0 {
		return nil, &ShapeError{Doc: "proposal-info", Detail: "empty allocation field"}
	}
	if info.Allocation, err = strconv.ParseFloat(allocationFields[0], 64); err != nil {
		return nil, &ParseError{Field: "allocation", Value: allocationFields[0], Err: err}
	}

	// The exclusive access period sits in the last content position of the
	// second paragraph, but only for programs that have one. When it is
	// missing the last position holds whitespace, and the period is 0.
	lastText := strings.TrimSpace(nodeText(second[len(second)-1]))
	if fields := strings.Fields(lastText); len(fields) > 0 {
		if info.ExclusivePeriod, err = strconv.Atoi(fields[0]); err != nil {
			return nil, &ParseError{Field: "exclusive period", Value: fields[0], Err: err}
		}
	}

	if info.Type, err = programType(doc); err != nil {
		return nil, err
	}

	links := doc.Find("a")
	if info.APT, err = docLinkAt(links, 9); err != nil {
		return nil, err
	}
	if info.PDF, err = docLinkAt(links, 10); err != nil {
		return nil, err
	}

	return info, nil
}

// programType reads the program type out of the first heading: the heading's
// second child is a styled element whose first text node names the type.
func programType(doc *goquery.Document) (string, error) {
	h1s := doc.Find("h1")
	if h1s.Length() == 0 {
		return "", &ShapeError{Doc: "proposal-info", Detail: "no h1 element"}
	}
	kids := childNodes(h1s.Eq(0))
	if len(kids) < 2 {
		return "", &ShapeError{Doc: "proposal-info", Detail: "h1 has no child node 1"}
	}
	inner := kids[1].FirstChild
	if inner == nil {
		return "", &ShapeError{Doc: "proposal-info", Detail: "h1 type element is empty"}
	}
	return strings.TrimSpace(nodeText(inner)), nil
}

// docLinkAt reads a document link from a fixed position in the page's link
// list. The page provides no stable names, only positions.
func docLinkAt(links *goquery.Selection, i int) (status.DocLink, error) {
	if links.Length() <= i {
		return status.DocLink{}, &ShapeError{
			Doc:    "proposal-info",
			Detail: "page has no link " + strconv.Itoa(i),
		}
	}
	link := links.Eq(i)
	href, ok := link.Attr("href")
	if !ok {
		return status.DocLink{}, &ShapeError{
			Doc:    "proposal-info",
			Detail: "link " + strconv.Itoa(i) + " has no href",
		}
	}
	label := link.Get(0).FirstChild
	if label == nil {
		return status.DocLink{}, &ShapeError{
			Doc:    "proposal-info",
			Detail: "link " + strconv.Itoa(i) + " has no label",
		}
	}
	return status.DocLink{Href: href, Label: strings.TrimSpace(nodeText(label))}, nil
}

// childNodes returns all child nodes of the selection's first element,
// text nodes included. Positional extraction counts text nodes the same way
// the page template interleaves them with label tags.
func childNodes(s *goquery.Selection) []*html.Node {
	if s.Length() == 0 {
		return nil
	}
	var nodes []*html.Node
	for c := s.Get(0).FirstChild; c != nil; c = c.NextSibling {
		nodes = append(nodes, c)
	}
	return nodes
}

func textAt(nodes []*html.Node, i int, where string) (string, error) {
	if len(nodes) <= i {
		return "", &ShapeError{
			Doc:    "proposal-info",
			Detail: where + " has no child node " + strconv.Itoa(i),
		}
	}
	return strings.TrimSpace(nodeText(nodes[i])), nil
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
