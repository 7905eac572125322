// Package server exposes the black hole renderer over HTTP: preset
// management backed by the store, and progressive frame streaming over
// Server-Sent Events.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-blackhole-raytracer/pkg/scene"
	"github.com/df07/go-blackhole-raytracer/pkg/store"
)

// Server handles web requests for the black hole renderer
type Server struct {
	port    int
	presets *store.Store // nil disables persistence endpoints
}

// NewServer creates a new web server. The store may be nil, in which case
// only built-in presets are available.
func NewServer(port int, presets *store.Store) *Server {
	return &Server{port: port, presets: presets}
}

// Start starts the web server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/presets", s.handlePresets)
	mux.HandleFunc("/api/presets/", s.handlePresetByName)

	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("starting web server", "addr", fmt.Sprintf("http://localhost%s", addr))
	return http.ListenAndServe(addr, mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// sceneInfo describes one selectable scene for the client
type sceneInfo struct {
	Name    string `json:"name"`
	Source  string `json:"source"` // "builtin" or "stored"
	Default bool   `json:"default"`
}

// handleScenes lists built-in presets plus any stored ones
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	var scenes []sceneInfo
	for _, name := range scene.SceneNames() {
		scenes = append(scenes, sceneInfo{Name: name, Source: "builtin", Default: name == "default"})
	}

	if s.presets != nil {
		stored, err := s.presets.ListPresets()
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, fmt.Errorf("list presets: %w", err))
			return
		}
		for _, name := range stored {
			scenes = append(scenes, sceneInfo{Name: name, Source: "stored"})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenes)
}

// handlePresets saves a preset (POST) or lists stored preset names (GET)
func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if s.presets == nil {
		s.writeError(w, http.StatusServiceUnavailable, fmt.Errorf("preset store not configured"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		names, err := s.presets.ListPresets()
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(names)

	case http.MethodPost:
		var sc scene.Scene
		if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode scene: %w", err))
			return
		}
		if err := s.presets.SavePreset(&sc); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	}
}

// handlePresetByName loads (GET) or deletes (DELETE) one stored preset
func (s *Server) handlePresetByName(w http.ResponseWriter, r *http.Request) {
	if s.presets == nil {
		s.writeError(w, http.StatusServiceUnavailable, fmt.Errorf("preset store not configured"))
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/presets/")
	if name == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("preset name missing"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		sc, err := s.presets.LoadPreset(name)
		if err != nil {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sc)

	case http.MethodDelete:
		if err := s.presets.DeletePreset(name); err != nil {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	}
}

// resolveScene builds the scene for a render request: a stored preset if
// one matches, otherwise a built-in, with request overrides applied on top
func (s *Server) resolveScene(req RenderRequest) (*scene.Scene, error) {
	var sc *scene.Scene

	if s.presets != nil {
		if stored, err := s.presets.LoadPreset(req.Scene); err == nil {
			sc = stored
		}
	}
	if sc == nil {
		builtin, err := scene.CreateScene(req.Scene)
		if err != nil {
			return nil, err
		}
		sc = builtin
	}

	if req.Params != nil {
		sc.Params = *req.Params
	}
	if req.Camera != nil {
		sc.Camera = *req.Camera
	}
	if req.Quality != "" {
		if err := scene.ApplyQuality(&sc.Params, scene.Quality(req.Quality)); err != nil {
			return nil, err
		}
	}

	if err := sc.Params.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// parseIntParam parses an int parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	slog.Warn("request failed", "status", status, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
