package server

import (
	"net/http"

	"github.com/obsdesk/jwstatus/internal/utils"
	"github.com/obsdesk/jwstatus/pkg/jwst"
)

type Server struct {
	Client   *jwst.Client
	Username string
	Password string
}

func New(client *jwst.Client, user, pass string) *Server {
	return &Server{
		Client:   client,
		Username: user,
		Password: pass,
	}
}

func (s *Server) Start(addr string) error {
	utils.Log.Info("Starting server on ", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Handler builds the route table. Split from Start so tests can drive it
// through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API group
	mux.HandleFunc("GET /api/program/{id}", s.basicAuth(s.handleProgram))
	mux.HandleFunc("GET /api/visits/{id}", s.basicAuth(s.handleVisits))

	// Pages
	mux.HandleFunc("GET /program/{id}", s.basicAuth(s.handleProgramPage))
	mux.HandleFunc("GET /program/{id}/table", s.basicAuth(s.handleTableFragment))
	mux.HandleFunc("GET /program", s.basicAuth(s.handleProgramForm))
	mux.HandleFunc("GET /{$}", s.basicAuth(s.handleHome))

	return mux
}

func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Username == "" && s.Password == "" {
			next(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
