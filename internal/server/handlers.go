// Public domain.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soniakeys/natal/chart"
	"github.com/soniakeys/natal/houses"
)

const maxBody = 1 << 16

type chartRequest struct {
	chart.BirthData
	HouseSystem string `json:"house_system,omitempty"`
}

type chartResponse struct {
	Chart     *chart.NatalChart `json:"chart"`
	Dominance chart.Dominance   `json:"dominance"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "natal",
		"version": s.version,
	})
}

func (s *Server) handleSystems(w http.ResponseWriter, r *http.Request) {
	names := make([]string, len(houses.Systems))
	for i, hs := range houses.Systems {
		names[i] = hs.String()
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"systems": names,
		"default": s.engine.System().String(),
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request: "+err.Error())
		return
	}
	system := s.engine.System()
	if req.HouseSystem != "" {
		var err error
		if system, err = houses.ParseSystem(req.HouseSystem); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	c, err := s.engine.ComputeSystem(r.Context(), req.BirthData, system)
	if err != nil {
		s.writeError(w, statusOf(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, chartResponse{Chart: c, Dominance: c.Dominance()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, chart.ErrInvalidBirthData):
		return http.StatusBadRequest
	case errors.Is(err, chart.ErrComputationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, chart.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
