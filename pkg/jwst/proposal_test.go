package jwst

import (
	"errors"
	"strings"
	"testing"
)

// fillerLinks renders the nav links that precede the two document links on
// the proposal page; only positions 9 and 10 are read.
func fillerLinks(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString(`<a href="/nav">nav</a>`)
	}
	return sb.String()
}

func proposalPage(secondParagraph string) string {
	return `<html><body>
<h1>JWST <b>Cycle 1 GO</b></h1>
` + fillerLinks(9) + `
<p><b>Principal Investigator:</b> Jane Doe<br/>
<b>PI Institution:</b> Space Telescope Science Institute</p>
` + secondParagraph + `
<a href="jwst/apt/1234.aptx">APT file</a>
<a href="jwst/pdf/1234.pdf">PDF</a>
</body></html>`
}

const fullSecondParagraph = `<p><b>Title:</b> A Grand Survey<br/>
<b>Cycle:</b> 1<br/>
<b>Allocation:</b> 25.5 hours<br/>
<b>Exclusive Access Period:</b> 6 months</p>`

const noExclusionSecondParagraph = `<p><b>Title:</b> A Grand Survey<br/>
<b>Cycle:</b> 1<br/>
<b>Allocation:</b> 25.5 hours<br/>
</p>`

func TestParseProposalInfo(t *testing.T) {
	info, err := ParseProposalInfo(proposalPage(fullSecondParagraph))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info == nil {
		t.Fatal("expected proposal info, got nil")
	}

	if info.PI != "Jane Doe" {
		t.Fatalf("unexpected PI: %q", info.PI)
	}
	if info.PIInstitution != "Space Telescope Science Institute" {
		t.Fatalf("unexpected institution: %q", info.PIInstitution)
	}
	if info.Title != "A Grand Survey" {
		t.Fatalf("unexpected title: %q", info.Title)
	}
	if info.Cycle != 1 {
		t.Fatalf("unexpected cycle: %d", info.Cycle)
	}
	if info.Allocation != 25.5 {
		t.Fatalf("unexpected allocation: %v", info.Allocation)
	}
	if info.ExclusivePeriod != 6 {
		t.Fatalf("unexpected exclusive period: %d", info.ExclusivePeriod)
	}
	if info.Type != "Cycle 1 GO" {
		t.Fatalf("unexpected program type: %q", info.Type)
	}
	if info.APT.Href != "jwst/apt/1234.aptx" || info.APT.Label != "APT file" {
		t.Fatalf("unexpected APT link: %+v", info.APT)
	}
	if info.PDF.Href != "jwst/pdf/1234.pdf" || info.PDF.Label != "PDF" {
		t.Fatalf("unexpected PDF link: %+v", info.PDF)
	}
}

func TestParseProposalInfoExclusionDefaults(t *testing.T) {
	info, err := ParseProposalInfo(proposalPage(noExclusionSecondParagraph))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ExclusivePeriod != 0 {
		t.Fatalf("expected exclusive period 0, got %d", info.ExclusivePeriod)
	}
	// The rest of the paragraph still parses.
	if info.Allocation != 25.5 {
		t.Fatalf("unexpected allocation: %v", info.Allocation)
	}
}

func TestParseProposalInfoNotFound(t *testing.T) {
	info, err := ParseProposalInfo("<html><body><h3>No proposal</h3></body></html>")
	if err != nil {
		t.Fatalf("expected soft not-found, got error: %v", err)
	}
	if info != nil {
		t.Fatalf("expected nil info, got %+v", info)
	}
}

func TestParseProposalInfoShortParagraph(t *testing.T) {
	page := `<html><body><h1>JWST <b>GO</b></h1><p><b>PI:</b> Jane Doe</p><p>x</p></body></html>`
	_, err := ParseProposalInfo(page)
	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected ShapeError, got %v", err)
	}
}

func TestParseProposalInfoTooFewLinks(t *testing.T) {
	page := `<html><body>
<h1>JWST <b>Cycle 1 GO</b></h1>
<a href="/nav">nav</a>
<p><b>Principal Investigator:</b> Jane Doe<br/>
<b>PI Institution:</b> Space Telescope Science Institute</p>
` + fullSecondParagraph + `
</body></html>`

	_, err := ParseProposalInfo(page)
	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected ShapeError, got %v", err)
	}
}

func TestParseProposalInfoBadCycle(t *testing.T) {
	badCycle := strings.Replace(fullSecondParagraph, "<b>Cycle:</b> 1<br/>", "<b>Cycle:</b> one<br/>", 1)
	_, err := ParseProposalInfo(proposalPage(badCycle))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Field != "cycle" {
		t.Fatalf("unexpected field: %q", parseErr.Field)
	}
}
