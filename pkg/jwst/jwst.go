// Package jwst fetches JWST proposal metadata and visit status reports from
// the STScI CGI endpoints and normalizes them into flat records.
package jwst

import (
	"errors"
	"fmt"

	"github.com/obsdesk/jwstatus/internal/utils"
	"github.com/obsdesk/jwstatus/pkg/status"
	"github.com/obsdesk/jwstatus/pkg/whttp"
)

const (
	proposalInfoURL = "https://www.stsci.edu/cgi-bin/get-proposal-info?id=%s&observatory=JWST"
	visitStatusURL  = "https://www.stsci.edu/cgi-bin/get-visit-status?id=%s&markupFormat=xml&observatory=JWST"
)

// ErrNotFound is returned when the proposal-info page has no content for the
// requested program id.
var ErrNotFound = errors.New("program not found")

// ShapeError reports an upstream document that deviates from the positional
// or structural contract we scrape against. It is fatal for the lookup:
// guessing around a changed page template would silently produce wrong
// metadata.
type ShapeError struct {
	Doc    string
	Detail string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected %s document shape: %s", e.Doc, e.Detail)
}

// ParseError reports a field that should be numeric but isn't.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves the raw body behind a URL. The default implementation
// goes through whttp; tests inject canned documents.
type Fetcher func(url string) (string, error)

// Client looks up program data. Visit status reports are memoized by program
// id for the lifetime of the client; proposal info is re-fetched every call,
// matching how the upstream pages change.
type Client struct {
	fetch      Fetcher
	visitCache *visitCache
}

// NewClient builds a Client around the given fetcher. A nil fetcher uses the
// shared whttp client.
func NewClient(fetch Fetcher) *Client {
	if fetch == nil {
		fetch = defaultFetch
	}
	return &Client{
		fetch:      fetch,
		visitCache: newVisitCache(),
	}
}

func defaultFetch(url string) (string, error) {
	res, err := whttp.SendHTTPRequest(&whttp.WHTTPReq{
		Method: "GET",
		URL:    url,
	}, nil)
	if err != nil {
		return "", err
	}
	if res.StatusCode != 200 {
		return "", fmt.Errorf("fetching %s failed with status %d", url, res.StatusCode)
	}
	return res.BodyString, nil
}

// GetProposalInfo fetches and extracts the proposal metadata for a program.
// It returns ErrNotFound when the page has no content for the id.
func (c *Client) GetProposalInfo(pid string) (*status.ProgramInfo, error) {
	utils.Log.Debug("Fetching proposal info for program ", pid)

	body, err := c.fetch(fmt.Sprintf(proposalInfoURL, pid))
	if err != nil {
		return nil, err
	}

	info, err := ParseProposalInfo(body)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, ErrNotFound
	}
	return info, nil
}

// GetVisitStatus fetches and normalizes the visit status report for a
// program. Results are cached by program id; repeated calls do not refetch.
func (c *Client) GetVisitStatus(pid string) ([]status.VisitRecord, error) {
	if records, ok := c.visitCache.get(pid); ok {
		utils.Log.Debug("Visit status cache hit for program ", pid)
		return records, nil
	}

	utils.Log.Debug("Fetching visit status for program ", pid)
	body, err := c.fetch(fmt.Sprintf(visitStatusURL, pid))
	if err != nil {
		return nil, err
	}

	records, err := ParseVisitStatus(body)
	if err != nil {
		return nil, err
	}

	c.visitCache.put(pid, records)
	return records, nil
}
