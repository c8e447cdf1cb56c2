// internal/web/handlers.go
package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"logdeck/internal/engine"
)

type serviceSummary struct {
	Name    string `json:"name"`
	Source  string `json:"source"`
	Follow  bool   `json:"follow"`
	Tail    int    `json:"tail"`
	Level   string `json:"level"`
	Text    string `json:"text"`
	Total   int    `json:"total"`
	Matched int    `json:"matched"`
}

type linesResponse struct {
	serviceSummary
	Lines []string `json:"lines"`
}

type containerEntry struct {
	Name   string `json:"name"`
	Image  string `json:"image"`
	Status string `json:"status"`
}

type configRequest struct {
	Tail      *int    `json:"tail"`
	Level     *string `json:"level"`
	Text      *string `json:"text"`
	Container *string `json:"container"`
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	names := s.registry.Names()
	out := make([]serviceSummary, 0, len(names))
	for _, name := range names {
		svc, ok := s.registry.Get(name)
		if !ok {
			continue
		}
		out = append(out, summarize(svc.Render()))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleContainers(w http.ResponseWriter, r *http.Request) {
	containers, err := s.registry.ListContainers(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	out := make([]containerEntry, 0, len(containers))
	for _, c := range containers {
		out = append(out, containerEntry{Name: c.Name, Image: c.Image, Status: c.Status})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleLines(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w, r)
	if !ok {
		return
	}

	view := svc.Render()
	resp := linesResponse{serviceSummary: summarize(view), Lines: view.Lines}

	// Ad-hoc filter overrides for one-off queries; they do not touch the
	// service's stored filter.
	if f, overridden := filterFromQuery(r, svc.Filter()); overridden {
		resp.Lines = svc.Buffer().Filtered(f)
		resp.Matched = len(resp.Lines)
		resp.Level = string(f.Level)
		resp.Text = f.Text
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w, r)
	if !ok {
		return
	}
	svc.Reload(r.Context())
	view := svc.Render()
	respondJSON(w, http.StatusOK, linesResponse{serviceSummary: summarize(view), Lines: view.Lines})
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w, r)
	if !ok {
		return
	}

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}

	if req.Enabled {
		svc.StartFollow()
	} else {
		svc.StopFollow()
	}
	respondJSON(w, http.StatusOK, summarize(svc.Render()))
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w, r)
	if !ok {
		return
	}

	var req configRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}

	if req.Tail != nil {
		svc.SetTail(*req.Tail)
	}
	if req.Level != nil {
		if _, ok := engine.ParseLevel(*req.Level); !ok {
			respondError(w, http.StatusBadRequest, "unknown level")
			return
		}
		svc.SetLevel(*req.Level)
	}
	if req.Text != nil {
		svc.SetTextFilter(*req.Text)
	}
	if req.Container != nil {
		svc.StopFollow()
		svc.OverrideContainer(*req.Container)
		svc.Reload(r.Context())
	}

	respondJSON(w, http.StatusOK, summarize(svc.Render()))
}

func (s *Server) service(w http.ResponseWriter, r *http.Request) (*engine.State, bool) {
	name := chi.URLParam(r, "name")
	svc, ok := s.registry.Get(name)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown service "+name)
		return nil, false
	}
	return svc, true
}

// filterFromQuery builds a filter from level/q query params, reporting
// whether any param was present.
func filterFromQuery(r *http.Request, base engine.Filter) (engine.Filter, bool) {
	q := r.URL.Query()
	overridden := false
	if lv := q.Get("level"); lv != "" {
		if l, ok := engine.ParseLevel(lv); ok {
			base.Level = l
			overridden = true
		}
	}
	if q.Has("q") {
		base.Text = q.Get("q")
		overridden = true
	}
	return base, overridden
}

func summarize(v engine.View) serviceSummary {
	return serviceSummary{
		Name:    v.Service,
		Source:  v.Source.String(),
		Follow:  v.Follow,
		Tail:    v.Tail,
		Level:   string(v.Level),
		Text:    v.TextFilter,
		Total:   v.Total,
		Matched: v.Matched,
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
