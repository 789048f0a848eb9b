package classify

// local.go - optional on-box scam prefilter using Hugot/ONNX.
//
// The prefilter never decides anything on its own: its signal is folded
// into the verdict prompt as an advisory note. It runs fully local and
// gracefully degrades to a no-op when no model or runtime is available.

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"
	"github.com/knights-analytics/hugot/pipelines"
)

// PrefilterConfig configures the local scam prefilter.
type PrefilterConfig struct {
	// ModelPath is the local path to an ONNX text-classification model
	// directory (must contain model.onnx).
	ModelPath string

	// OnnxLibraryPath is the directory holding libonnxruntime. Empty
	// falls back to the pure Go backend.
	OnnxLibraryPath string
}

// Prefilter wraps a local text-classification model that scores
// messages for scam likelihood before the main verdict call.
type Prefilter struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	mu       sync.RWMutex
	ready    bool
}

// NewPrefilter initializes the local model. Returns an error when the
// model or runtime cannot be loaded.
func NewPrefilter(cfg PrefilterConfig) (*Prefilter, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("no model path specified")
	}
	if _, err := os.Stat(filepath.Join(cfg.ModelPath, "model.onnx")); err != nil {
		return nil, fmt.Errorf("model not found at %s: %w", cfg.ModelPath, err)
	}

	session, err := newSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: cfg.ModelPath,
		Name:      "scam-prefilter",
	})
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("create pipeline: %w", err)
	}

	return &Prefilter{session: session, pipeline: pipeline, ready: true}, nil
}

// NewPrefilterWithFallback returns a prefilter that degrades to a no-op
// when initialization fails. The gateway stays up either way.
func NewPrefilterWithFallback(cfg PrefilterConfig) *Prefilter {
	p, err := NewPrefilter(cfg)
	if err != nil {
		log.Printf("[PREFILTER] disabled (graceful degradation): %v", err)
		return &Prefilter{ready: false}
	}
	log.Printf("[PREFILTER] enabled (model: %s)", cfg.ModelPath)
	return p
}

func newSession(cfg PrefilterConfig) (*hugot.Session, error) {
	if cfg.OnnxLibraryPath != "" {
		session, err := hugot.NewORTSession(
			options.WithOnnxLibraryPath(cfg.OnnxLibraryPath),
		)
		if err == nil {
			return session, nil
		}
		log.Printf("[PREFILTER] ONNX Runtime unavailable, falling back to Go backend: %v", err)
	}
	return hugot.NewGoSession()
}

// IsReady reports whether the local model is loaded.
func (p *Prefilter) IsReady() bool {
	if p == nil {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ready
}

// Note scores a message and renders the advisory line injected into the
// verdict prompt. Empty when the prefilter is degraded or errors out;
// the turn proceeds without it.
func (p *Prefilter) Note(ctx context.Context, text string) string {
	if !p.IsReady() {
		return ""
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	result, err := p.pipeline.RunPipeline([]string{text})
	if err != nil {
		log.Printf("[PREFILTER] inference failed: %v", err)
		return ""
	}
	if len(result.ClassificationOutputs) == 0 || len(result.ClassificationOutputs[0]) == 0 {
		return ""
	}

	out := result.ClassificationOutputs[0][0]
	if isScamLabel(out.Label) {
		return fmt.Sprintf("local model flags this message as scam-like (label=%s, score=%.2f)", out.Label, out.Score)
	}
	return fmt.Sprintf("local model sees no scam markers (label=%s, score=%.2f)", out.Label, out.Score)
}

// isScamLabel maps model-specific label conventions onto a threat bit.
func isScamLabel(label string) bool {
	switch label {
	case "scam", "spam", "phishing", "fraud", "LABEL_1":
		return true
	default:
		return false
	}
}

// Close releases the underlying session.
func (p *Prefilter) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ready = false
	if p.session != nil {
		return p.session.Destroy()
	}
	return nil
}
