package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "rrsim API",
		Version:     "v1",
		Description: "Round Robin CPU scheduling simulator",
		Endpoints: []endpointInfo{
			{"/api/v1/simulations", []string{"GET", "POST"}, "Run a simulation (POST accepts ?dry_run=true to skip persistence) or list stored runs"},
			{"/api/v1/simulations/{id}", []string{"GET", "DELETE"}, "Single run with timeline, blocks and per-process statistics"},
			{"/api/v1/simulations/{id}/gantt", []string{"GET"}, "Plain-text Gantt chart, process table and averages"},
			{"/api/v1/workloads/random", []string{"POST"}, "Generate a random process set"},
			{"/api/v1/sse/simulations/{id}", []string{"GET"}, "Replay a stored timeline unit by unit as Server-Sent Events"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
