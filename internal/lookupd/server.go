// Package lookupd implements the development lookup service: an in-memory
// location index seeded from the bundled popular-locations data, served
// over the same wire contract the real lookup service exposes. It exists
// so the client stack can be exercised end to end without the production
// backend.
package lookupd

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/skytrips/search-core/internal/domain"
)

// ErrorResponse is the JSON error body, matching the production service.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server holds the in-memory index and popularity counters.
type Server struct {
	groups []domain.LocationGroup

	mu     sync.Mutex
	counts map[string]int
}

// NewServer builds a Server over the given location groups (typically
// lookup.Popular()). The groups are indexed as-is; popularity counts
// start at zero.
func NewServer(groups []domain.LocationGroup) *Server {
	return &Server{
		groups: groups,
		counts: make(map[string]int),
	}
}

// Routes returns the chi router for the lookup API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.getHealth)
	r.Get("/locations", s.listLocations)
	r.Patch("/locations/{code}/popularity", s.bumpPopularity)
	return r
}

// getHealth handles GET /healthz.
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listLocations handles GET /locations. An empty ?query= returns the full
// seed; otherwise groups are filtered to locations whose code, name, city,
// or country contains the query, case-insensitively. Groups with no
// surviving locations are dropped.
func (s *Server) listLocations(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query")))

	if query == "" {
		writeJSON(w, http.StatusOK, s.groups)
		return
	}

	matched := make([]domain.LocationGroup, 0, len(s.groups))
	for _, g := range s.groups {
		groupHit := containsFold(g.Municipality, query) ||
			containsFold(g.Region, query) ||
			containsFold(g.Country, query)

		var locs []domain.Location
		for _, loc := range g.Locations {
			if groupHit || locationMatches(loc, query) {
				locs = append(locs, loc)
			}
		}
		if len(locs) > 0 {
			out := g
			out.Locations = locs
			matched = append(matched, out)
		}
	}
	writeJSON(w, http.StatusOK, matched)
}

// bumpPopularity handles PATCH /locations/{code}/popularity. Unknown codes
// get a 404; known codes get their counter incremented and the new count
// returned.
func (s *Server) bumpPopularity(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	if !s.knows(code) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: ErrorDetail{Code: "not_found", Message: "location not found"},
		})
		return
	}

	s.mu.Lock()
	s.counts[code]++
	count := s.counts[code]
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"code": code, "count": count})
}

// PopularityCount pairs a location code with its recorded hit count.
type PopularityCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// Popularity returns the recorded counts, sorted by code for stable output.
func (s *Server) Popularity() []PopularityCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]PopularityCount, 0, len(s.counts))
	for code, count := range s.counts {
		out = append(out, PopularityCount{Code: code, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (s *Server) knows(code string) bool {
	for _, g := range s.groups {
		for _, loc := range g.Locations {
			if loc.Code == code {
				return true
			}
		}
	}
	return false
}

func locationMatches(loc domain.Location, query string) bool {
	return containsFold(loc.Code, query) ||
		containsFold(loc.DisplayName, query) ||
		containsFold(loc.City, query) ||
		containsFold(loc.Country, query)
}

func containsFold(s, query string) bool {
	return strings.Contains(strings.ToLower(s), query)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
