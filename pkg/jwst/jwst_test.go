package jwst

import (
	"errors"
	"strings"
	"testing"
)

func TestGetVisitStatusCachesByProgramID(t *testing.T) {
	calls := 0
	client := NewClient(func(url string) (string, error) {
		calls++
		return visitDoc(""), nil
	})

	first, err := client.GetVisitStatus("1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := client.GetVisitStatus("1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected 1 fetch, got %d", calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("unexpected record counts: %d, %d", len(first), len(second))
	}

	// A different program id is a different cache key.
	if _, err := client.GetVisitStatus("5678"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 fetches, got %d", calls)
	}
}

func TestGetVisitStatusDoesNotCacheFailures(t *testing.T) {
	calls := 0
	client := NewClient(func(url string) (string, error) {
		calls++
		return "", errors.New("connection reset")
	})

	if _, err := client.GetVisitStatus("1234"); err == nil {
		t.Fatal("expected fetch error")
	}
	if _, err := client.GetVisitStatus("1234"); err == nil {
		t.Fatal("expected fetch error")
	}
	if calls != 2 {
		t.Fatalf("expected 2 fetches, got %d", calls)
	}
}

func TestGetProposalInfoNotFound(t *testing.T) {
	client := NewClient(func(url string) (string, error) {
		return "<html><body><h3>No proposal</h3></body></html>", nil
	})

	_, err := client.GetProposalInfo("99999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientURLTemplates(t *testing.T) {
	var urls []string
	client := NewClient(func(url string) (string, error) {
		urls = append(urls, url)
		if strings.Contains(url, "get-visit-status") {
			return visitDoc(""), nil
		}
		return proposalPage(fullSecondParagraph), nil
	})

	if _, err := client.GetProposalInfo("1234"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.GetVisitStatus("1234"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"https://www.stsci.edu/cgi-bin/get-proposal-info?id=1234&observatory=JWST",
		"https://www.stsci.edu/cgi-bin/get-visit-status?id=1234&markupFormat=xml&observatory=JWST",
	}
	if len(urls) != 2 || urls[0] != want[0] || urls[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, urls)
	}
}
