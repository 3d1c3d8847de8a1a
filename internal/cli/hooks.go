package cli

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/observability"
)

// logHooks reports layout passes and HTTP responses to the CLI logger at debug
// level. Server errors are logged at warn level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnLayoutStart(context.Context, int, float64) {}

func (h *logHooks) OnLayoutComplete(_ context.Context, s observability.LayoutStats) {
	h.logger.Debug("layout pass",
		"items", s.Items,
		"width", s.Width,
		"left", round1(s.Heights[0]),
		"right", round1(s.Heights[1]),
		"imbalance", round1(s.Imbalance),
		"duration", s.Duration)
}

func (h *logHooks) OnRecompute(_ context.Context, reason string) {
	h.logger.Debug("recompute", "reason", reason)
}

func (h *logHooks) OnRequest(context.Context, string, string) {}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	if status >= 500 {
		h.logger.Warn("server error", "method", method, "path", path, "status", status, "duration", d)
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

var (
	_ observability.LayoutHooks = (*logHooks)(nil)
	_ observability.HTTPHooks   = (*logHooks)(nil)
)
