package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-blackhole-raytracer/pkg/post"
	"github.com/df07/go-blackhole-raytracer/pkg/renderer"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
)

const (
	maxRenderWidth  = 1920
	maxRenderHeight = 1080
	maxRenderFrames = 600
)

// RenderRequest describes one render job submitted by the client
type RenderRequest struct {
	Scene     string              `json:"scene"`
	Params    *scene.Params       `json:"params,omitempty"`  // Inline override of the named scene
	Camera    *scene.CameraConfig `json:"camera,omitempty"`  // Inline camera override
	Quality   string              `json:"quality,omitempty"` // low, medium, high
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
	Frames    int                 `json:"frames"`
	TimeStep  float64             `json:"timeStep"`
	StartTime float64             `json:"startTime"`
	Bloom     bool                `json:"bloom"`
}

// FrameUpdate represents a single rendered frame sent via SSE
type FrameUpdate struct {
	FrameNumber   int     `json:"frameNumber"`
	TotalFrames   int     `json:"totalFrames"`
	Elapsed       float64 `json:"elapsed"`   // Simulation time of this frame
	ImageData     string  `json:"imageData"` // Base64 encoded PNG
	ElapsedMs     int64   `json:"elapsedMs"` // Wall clock since render start
	Captured      int     `json:"captured"`
	Escaped       int     `json:"escaped"`
	Opaque        int     `json:"opaque"`
	DiskHitPixels int     `json:"diskHitPixels"`
	AverageSteps  float64 `json:"averageSteps"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders an animation and streams frames to the client via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine keeps SSE writes serialized
	sseEventChan := make(chan SSEEvent, 100)
	go s.writeSSEEvents(w, ctx, sseEventChan)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sc, err := s.resolveScene(req)
	if err != nil {
		s.sendError(ctx, sseEventChan, err.Error())
		return
	}

	renderID := uuid.NewString()
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(renderID, consoleChan)
	go s.streamConsoleMessages(ctx, consoleChan, sseEventChan)

	slog.Info("render started", "id", renderID, "scene", sc.Name,
		"size", fmt.Sprintf("%dx%d", req.Width, req.Height), "frames", req.Frames)

	rend := renderer.NewRenderer(sc, req.Width, req.Height, renderer.DefaultConfig(), webLogger)

	opts := renderer.AnimationOptions{
		Frames:    req.Frames,
		StartTime: req.StartTime,
		TimeStep:  req.TimeStep,
	}

	startTime := time.Now()
	frameChan, errChan := rend.RenderAnimation(ctx, opts)

	s.streamFrames(ctx, sseEventChan, frameChan, errChan, req, startTime)

	if s.presets != nil {
		if err := s.presets.SaveSession(sc); err != nil {
			slog.Warn("failed to save session", "error", err)
		}
	}
}

// streamFrames forwards rendered frames to the SSE channel until the
// animation completes, fails, or the client disconnects
func (s *Server) streamFrames(ctx context.Context, sseEventChan chan SSEEvent,
	frameChan <-chan renderer.FrameResult, errChan <-chan error,
	req RenderRequest, startTime time.Time) {

	// Drain every frame before consulting the error channel so a buffered
	// final frame is never dropped
	for frame := range frameChan {
		select {
		case <-ctx.Done():
			return
		default:
		}
		s.sendFrame(ctx, sseEventChan, frame, req, startTime)
	}

	if err := <-errChan; err != nil {
		s.sendError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
}

// sendFrame encodes a frame as base64 PNG and queues it for the SSE writer
func (s *Server) sendFrame(ctx context.Context, sseEventChan chan SSEEvent,
	frame renderer.FrameResult, req RenderRequest, startTime time.Time) {

	select {
	case <-ctx.Done():
		return
	default:
	}

	img := frame.Image
	if req.Bloom {
		img = post.ApplyBloom(img, post.DefaultBloomConfig())
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		slog.Error("failed to encode frame", "frame", frame.FrameNumber, "error", err)
		return
	}

	update := FrameUpdate{
		FrameNumber:   frame.FrameNumber,
		TotalFrames:   req.Frames,
		Elapsed:       frame.Elapsed,
		ImageData:     imageData,
		ElapsedMs:     time.Since(startTime).Milliseconds(),
		Captured:      frame.Stats.Captured,
		Escaped:       frame.Stats.Escaped,
		Opaque:        frame.Stats.Opaque,
		DiskHitPixels: frame.Stats.DiskHitPixels,
		AverageSteps:  frame.Stats.AverageSteps,
	}

	data, err := json.Marshal(update)
	if err != nil {
		slog.Error("failed to marshal frame update", "error", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "frame", Data: string(data)}:
	case <-ctx.Done():
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents handles writing all SSE events in a single goroutine
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			select {
			case <-ctx.Done():
				return
			default:
			}

			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards logger output to the SSE channel
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				return
			}

			data, err := json.Marshal(consoleMsg)
			if err != nil {
				slog.Error("failed to marshal console message", "error", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// parseRenderRequest parses query parameters into a render request
func (s *Server) parseRenderRequest(r *http.Request) (RenderRequest, error) {
	q := r.URL.Query()
	req := RenderRequest{Scene: q.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(q, "width", 400, 16, maxRenderWidth); err != nil {
		return req, err
	}
	if req.Height, err = parseIntParam(q, "height", 300, 16, maxRenderHeight); err != nil {
		return req, err
	}
	if req.Frames, err = parseIntParam(q, "frames", 1, 1, maxRenderFrames); err != nil {
		return req, err
	}
	if req.TimeStep, err = parseFloatParam(q, "timeStep", 1.0/30.0, 0.0001, 10.0); err != nil {
		return req, err
	}
	if req.StartTime, err = parseFloatParam(q, "startTime", 0, 0, 1e6); err != nil {
		return req, err
	}

	req.Quality = q.Get("quality")
	req.Bloom = q.Get("bloom") == "true" || q.Get("bloom") == "1"

	if paramsJSON := q.Get("params"); paramsJSON != "" {
		var p scene.Params
		if err := json.Unmarshal([]byte(paramsJSON), &p); err != nil {
			return req, fmt.Errorf("invalid params: %w", err)
		}
		req.Params = &p
	}
	if cameraJSON := q.Get("camera"); cameraJSON != "" {
		var c scene.CameraConfig
		if err := json.Unmarshal([]byte(cameraJSON), &c); err != nil {
			return req, fmt.Errorf("invalid camera: %w", err)
		}
		req.Camera = &c
	}

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendError queues an error event for the SSE writer
func (s *Server) sendError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	slog.Warn("render error", "message", message)
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
