// Package web serves scan results over HTTP: the full solution set as JSON,
// diagnostics, cycle reports, and live scan status via Server-Sent Events.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/cycles"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/logging"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/model"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/pubsub"
)

// Summary is the lightweight overview served at /api/summary.
type Summary struct {
	StartPath   string `json:"start_path"`
	Solutions   int    `json:"solutions"`
	Projects    int    `json:"projects"`
	CodeFiles   int    `json:"code_files"`
	Diagnostics int    `json:"diagnostics"`
	Cycles      int    `json:"cycles"`
}

// Server exposes the latest scan result. Result setters may be called from
// a rescan goroutine while requests are in flight.
type Server struct {
	router    *mux.Router
	publisher pubsub.Publisher

	mu       sync.RWMutex
	set      *model.SolutionSet
	diags    []model.Diagnostic
	refLoops []cycles.ProjectCycle
}

// NewServer creates a new web server with an SSE publisher configured to
// replay the current state to new subscribers.
func NewServer() *Server {
	ssePublisher := pubsub.NewSSEPublisher()

	ssePublisher.ConfigureTopic("scan_status", pubsub.TopicConfig{
		BufferSize: 10,
		ReplayAll:  false, // Only send current state
	})
	ssePublisher.ConfigureTopic("scan_result", pubsub.TopicConfig{
		BufferSize: 5,
		ReplayAll:  false,
	})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: ssePublisher,
	}
	s.setupRoutes()
	return s
}

// SetResult stores a completed scan and publishes it to subscribers.
func (s *Server) SetResult(set *model.SolutionSet, diags []model.Diagnostic, refLoops []cycles.ProjectCycle) {
	s.mu.Lock()
	s.set = set
	s.diags = diags
	s.refLoops = refLoops
	s.mu.Unlock()

	if set != nil {
		_ = s.publisher.Publish("scan_result", "ready", pubsub.ScanResultData{
			Solutions:   set.SolutionCount(),
			Projects:    len(set.UniqueProjects()),
			CodeFiles:   set.FileCount(),
			Diagnostics: len(diags),
			Complete:    true,
		})
	}
}

// PublishScanStatus publishes a scan status event
func (s *Server) PublishScanStatus(state, message string, solutions, diagnostics int) error {
	return s.publisher.Publish("scan_status", state, pubsub.ScanStatus{
		State:       state,
		Message:     message,
		Solutions:   solutions,
		Diagnostics: diagnostics,
	})
}

func (s *Server) setupRoutes() {
	s.router.Use(logging.RequestIDMiddleware)

	s.router.HandleFunc("/api/subscribe/scan_status", s.handleSubscribe("scan_status")).Methods("GET")
	s.router.HandleFunc("/api/subscribe/scan_result", s.handleSubscribe("scan_result")).Methods("GET")

	s.router.HandleFunc("/api/summary", s.handleSummary).Methods("GET")
	s.router.HandleFunc("/api/solutions", s.handleSolutions).Methods("GET")
	s.router.HandleFunc("/api/diagnostics", s.handleDiagnostics).Methods("GET")
	s.router.HandleFunc("/api/cycles", s.handleCycles).Methods("GET")
}

// handleSubscribe streams events for a topic as Server-Sent Events.
func (s *Server) handleSubscribe(topic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		// Send initial comment to establish connection (Safari compatibility)
		fmt.Fprintf(w, ": connected\n\n")
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}

		sub, err := s.publisher.Subscribe(r.Context(), topic)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer sub.Close()

		for event := range sub.Events() {
			if err := pubsub.WriteSSE(w, event); err != nil {
				logging.Error("error writing SSE event", "error", err)
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := Summary{}
	if s.set != nil {
		summary = Summary{
			StartPath:   s.set.StartPath,
			Solutions:   s.set.SolutionCount(),
			Projects:    len(s.set.UniqueProjects()),
			CodeFiles:   s.set.FileCount(),
			Diagnostics: len(s.diags),
			Cycles:      len(s.refLoops),
		}
	}
	writeJSON(w, summary)
}

func (s *Server) handleSolutions(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.set == nil {
		writeJSON(w, &model.SolutionSet{Solutions: []*model.Solution{}})
		return
	}
	writeJSON(w, s.set)
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	diags := s.diags
	if diags == nil {
		diags = []model.Diagnostic{}
	}
	writeJSON(w, diags)
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loops := s.refLoops
	if loops == nil {
		loops = []cycles.ProjectCycle{}
	}
	writeJSON(w, loops)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("error encoding response", "error", err)
	}
}

// Start starts the web server on the specified port
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("starting web server", "url", fmt.Sprintf("http://localhost%s", addr))
	return http.ListenAndServe(addr, s.router)
}
