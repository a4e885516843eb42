package server

import (
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soundprediction/graphgen/pkg/dedup"
	"github.com/soundprediction/graphgen/pkg/embedder"
	"github.com/soundprediction/graphgen/pkg/export"
	"github.com/soundprediction/graphgen/pkg/types"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// GraphRequest is the body of POST /api/v1/graph.
type GraphRequest struct {
	Text string `json:"text" binding:"required"`
}

// GraphResponse is the body of a successful graph build.
type GraphResponse struct {
	RunID           string           `json:"run_id"`
	Graph           *export.NodeLink `json:"graph"`
	Triplets        []types.Triplet  `json:"triplets"`
	Representatives []string         `json:"representatives"`
	Stats           GraphStats       `json:"stats"`
}

// GraphStats summarizes one generation run.
type GraphStats struct {
	Sentences int `json:"sentences"`
	Mentions  int `json:"mentions"`
	Nodes     int `json:"nodes"`
	Edges     int `json:"edges"`
	Skipped   int `json:"skipped"`
}

// DedupeRequest is the body of POST /api/v1/dedupe.
type DedupeRequest struct {
	Mentions []string `json:"mentions" binding:"required"`
}

// DedupeResponse is the body of a successful dedupe call.
type DedupeResponse struct {
	Representatives []string        `json:"representatives"`
	Clusters        []dedup.Cluster `json:"clusters"`
}

// ErrorResponse is the body of any error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// healthCheck handles GET /health - basic liveness check
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "graphgen",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// buildGraph handles POST /api/v1/graph
func (s *Server) buildGraph(c *gin.Context) {
	var req GraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	result, err := s.engine.GenerateFromText(c.Request.Context(), req.Text)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, GraphResponse{
		RunID:           result.RunID,
		Graph:           export.ToNodeLink(result.Graph),
		Triplets:        result.Triplets,
		Representatives: result.Representatives,
		Stats: GraphStats{
			Sentences: len(result.Sentences),
			Mentions:  len(result.Mentions),
			Nodes:     result.Graph.NumNodes(),
			Edges:     result.Graph.NumEdges(),
			Skipped:   result.Skipped,
		},
	})
}

// dedupe handles POST /api/v1/dedupe
func (s *Server) dedupe(c *gin.Context) {
	var req DedupeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	result, err := s.engine.Deduplicate(c.Request.Context(), req.Mentions)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, DedupeResponse{
		Representatives: result.Representatives,
		Clusters:        result.Clusters,
	})
}

// writeEngineError maps engine failures to HTTP status codes. Embedding
// backend outages are upstream failures, everything else is internal.
func (s *Server) writeEngineError(c *gin.Context, err error) {
	s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	if errors.Is(err, embedder.ErrBackendUnavailable) {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "backend_unavailable", Message: err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: err.Error()})
}
