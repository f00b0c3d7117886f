package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/obsdesk/jwstatus/pkg/jwst"
	"github.com/obsdesk/jwstatus/pkg/status"
)

// JSON field names match the visit report columns the table displays.
type visitRow struct {
	Observation   string `json:"observation"`
	Visit         string `json:"visit"`
	Status        string `json:"status"`
	Target        string `json:"target"`
	Configuration string `json:"configuration"`
	Hours         string `json:"hours"`
	StartTime     string `json:"start_ut"`
	EndTime       string `json:"end_ut"`
	PlanWindow    string `json:"plan_window"`
	Repeat        string `json:"repeat"`
}

type visitsResponse struct {
	Records  []visitRow `json:"records"`
	Height   int        `json:"height"`
	Statuses []string   `json:"statuses"`
}

type docLinkJSON struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type programResponse struct {
	PI              string      `json:"pi"`
	PIInstitution   string      `json:"pi_inst"`
	Title           string      `json:"title"`
	Cycle           int         `json:"cycle"`
	Allocation      float64     `json:"allocation"`
	ExclusivePeriod int         `json:"excl_time"`
	Type            string      `json:"ptype"`
	APT             docLinkJSON `json:"apt"`
	PDF             docLinkJSON `json:"pdf"`
}

// writeLookupError maps the error taxonomy onto HTTP statuses: unknown ids
// are a plain 404, everything else means the upstream documents can't be
// trusted for this lookup.
func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, jwst.ErrNotFound) {
		http.Error(w, "Program not found.", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusBadGateway)
}

func (s *Server) handleProgram(w http.ResponseWriter, r *http.Request) {
	info, err := s.Client.GetProposalInfo(r.PathValue("id"))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(programResponse{
		PI:              info.PI,
		PIInstitution:   info.PIInstitution,
		Title:           info.Title,
		Cycle:           info.Cycle,
		Allocation:      info.Allocation,
		ExclusivePeriod: info.ExclusivePeriod,
		Type:            info.Type,
		APT:             docLinkJSON{Label: info.APT.Label, URL: info.APT.AbsoluteURL()},
		PDF:             docLinkJSON{Label: info.PDF.Label, URL: info.PDF.AbsoluteURL()},
	})
}

func (s *Server) handleVisits(w http.ResponseWriter, r *http.Request) {
	records, err := s.Client.GetVisitStatus(r.PathValue("id"))
	if err != nil {
		writeLookupError(w, err)
		return
	}

	selector := r.URL.Query().Get("status")
	if selector == "" {
		selector = status.AllStatuses
	}
	filtered, height := status.FilterByStatus(selector, records)

	rows := make([]visitRow, 0, len(filtered))
	for _, rec := range filtered {
		rows = append(rows, visitRow{
			Observation:   rec.Observation,
			Visit:         rec.Visit,
			Status:        rec.Status,
			Target:        rec.Target,
			Configuration: rec.Configuration,
			Hours:         rec.Hours,
			StartTime:     rec.StartTime,
			EndTime:       rec.EndTime,
			PlanWindow:    rec.PlanWindow,
			Repeat:        rec.Repeat,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visitsResponse{
		Records:  rows,
		Height:   height,
		Statuses: status.StatusValues(records),
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writePage(w, HomePage(""))
}

// handleProgramForm takes the id form submission and redirects to the
// program's canonical page.
func (s *Server) handleProgramForm(w http.ResponseWriter, r *http.Request) {
	pid := r.URL.Query().Get("id")
	if pid == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/program/"+url.PathEscape(pid), http.StatusFound)
}

func (s *Server) handleProgramPage(w http.ResponseWriter, r *http.Request) {
	pid := r.PathValue("id")

	info, err := s.Client.GetProposalInfo(pid)
	if errors.Is(err, jwst.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		writePage(w, HomePage("Program not found."))
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	records, err := s.Client.GetVisitStatus(pid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writePage(w, ProgramPage(pid, info, records))
}

func (s *Server) handleTableFragment(w http.ResponseWriter, r *http.Request) {
	records, err := s.Client.GetVisitStatus(r.PathValue("id"))
	if err != nil {
		writeLookupError(w, err)
		return
	}

	selector := r.URL.Query().Get("status")
	if selector == "" {
		selector = status.AllStatuses
	}

	writeFragment(w, VisitTable(selector, records))
}
