package server

import (
	"embed"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"car-dashboard/services"
	"car-dashboard/utils"
)

//go:embed static/index.html
var staticFS embed.FS

// Server exposes the filter/aggregation dashboard over HTTP. It owns no
// pipeline logic: every request recomputes a pure view model over the
// store's current dataset.
type Server struct {
	store    *Store
	insights *services.InsightService
	logger   *utils.Logger
}

// New creates a Server over the given store.
func New(store *Store, insights *services.InsightService, logger *utils.Logger) *Server {
	return &Server{store: store, insights: insights, logger: logger}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/options", s.handleOptions)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	return mux
}

// ListenAndServe blocks serving the dashboard on addr.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "dashboard page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// handleOptions returns the filter control defaults: all distinct brands
// and the observed year bounds.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	minYear, maxYear, ok := s.store.YearBounds()

	writeJSON(w, map[string]interface{}{
		"brands":    s.store.Brands(),
		"year_min":  minYear,
		"year_max":  maxYear,
		"has_years": ok,
	})
}

// handleDashboard renders the view model for the requested filters.
// An absent brands parameter means the default selection (all brands);
// a present-but-empty one is an empty selection and yields an empty view.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := services.FilterOptions{}

	if q.Has("brands") {
		opts.Brands = utils.NewStringSet()
		for _, b := range strings.Split(q.Get("brands"), ",") {
			if b = strings.TrimSpace(b); b != "" {
				opts.Brands.Add(b)
			}
		}
	}

	// A half-open request still means an inclusive range: the absent bound
	// defaults to the observed one.
	yminRaw, ymaxRaw := q.Get("year_min"), q.Get("year_max")
	if yminRaw != "" || ymaxRaw != "" {
		opts.YearMin, opts.YearMax, _ = s.store.YearBounds()

		var err error
		if yminRaw != "" {
			if opts.YearMin, err = strconv.Atoi(yminRaw); err != nil {
				http.Error(w, "year_min must be an integer", http.StatusBadRequest)
				return
			}
		}
		if ymaxRaw != "" {
			if opts.YearMax, err = strconv.Atoi(ymaxRaw); err != nil {
				http.Error(w, "year_max must be an integer", http.StatusBadRequest)
				return
			}
		}
	}

	vm := s.insights.Render(s.store.Cars(), opts)
	s.logger.Debug("[server] Rendered view: %d/%d cars match", vm.Summary.TotalCars, len(s.store.Cars()))
	writeJSON(w, vm)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
