package mdrender

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/qblog/go-mdrender/internal/metrics"
	"github.com/qblog/go-mdrender/internal/stash"
)

// DefaultAckDelay is how long a control shows its copied state.
const DefaultAckDelay = 2 * time.Second

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// StashLookup resolves a block identifier to its original source.
type StashLookup interface {
	Lookup(id string) (string, bool)
}

// Indicator toggles the copied state of a control.
type Indicator interface {
	SetCopied(id string, copied bool)
}

// ActivationSource delivers control activations by block identifier.
type ActivationSource interface {
	OnActivate(fn func(id string))
}

// CopyOption configures a CopyHandler.
type CopyOption func(*CopyHandler)

// WithIndicator sets the indicator notified after successful writes.
func WithIndicator(ind Indicator) CopyOption {
	return func(h *CopyHandler) {
		h.indicator = ind
	}
}

// WithAckDelay sets how long the copied state lasts.
func WithAckDelay(d time.Duration) CopyOption {
	return func(h *CopyHandler) {
		if d > 0 {
			h.ackDelay = d
		}
	}
}

// WithCopyLogger sets the logger for clipboard failures.
func WithCopyLogger(logger *slog.Logger) CopyOption {
	return func(h *CopyHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithCopyRecorder sets the metrics recorder.
func WithCopyRecorder(r Recorder) CopyOption {
	return func(h *CopyHandler) {
		if r != nil {
			h.recorder = r
		}
	}
}

// withSchedule replaces time.AfterFunc (for testing).
func withSchedule(fn func(d time.Duration, f func())) CopyOption {
	return func(h *CopyHandler) {
		h.schedule = fn
	}
}

// CopyHandler copies stashed code block source to the clipboard when a
// control is activated.
type CopyHandler struct {
	clipboard Clipboard
	stash     StashLookup
	indicator Indicator
	ackDelay  time.Duration
	logger    *slog.Logger
	recorder  Recorder
	schedule  func(d time.Duration, f func())

	wg sync.WaitGroup
}

// NewCopyHandler creates a handler writing to clip the text found in st.
func NewCopyHandler(clip Clipboard, st StashLookup, opts ...CopyOption) *CopyHandler {
	h := &CopyHandler{
		clipboard: clip,
		stash:     st,
		ackDelay:  DefaultAckDelay,
		logger:    slog.New(slog.DiscardHandler),
		recorder:  metrics.NoopRecorder{},
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Activate starts copying the stash of id and reports whether one was
// found. The write runs asynchronously without a timeout. On success the
// indicator shows the copied state and reverts after the ack delay; each
// activation schedules its own reversion. Failures are logged and leave
// the indicator untouched.
func (h *CopyHandler) Activate(ctx context.Context, id string) bool {
	if id == "" || h.stash == nil {
		return false
	}
	text, ok := h.stash.Lookup(id)
	if !ok {
		return false
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if err := h.write(ctx, text); err != nil {
			h.recorder.IncCopy(metrics.ResultFailed)
			h.logger.Error("clipboard write failed", "id", id, "error", err)
			return
		}
		h.recorder.IncCopy(metrics.ResultSuccess)
		if h.indicator == nil {
			return
		}
		h.indicator.SetCopied(id, true)
		h.schedule(h.ackDelay, func() {
			h.indicator.SetCopied(id, false)
		})
	}()
	return true
}

func (h *CopyHandler) write(ctx context.Context, text string) error {
	if h.clipboard == nil {
		return ErrClipboardUnavailable
	}
	return h.clipboard.WriteText(ctx, text)
}

// Wait blocks until in-flight writes finish. Pending reversions are not
// waited for.
func (h *CopyHandler) Wait() {
	h.wg.Wait()
}

var installOnce sync.Once

// InstallCopyHandler registers h on src the first time it is called in the
// process and reports whether it did. Later calls are no-ops.
func InstallCopyHandler(src ActivationSource, h *CopyHandler) bool {
	installed := false
	installOnce.Do(func() {
		src.OnActivate(func(id string) {
			h.Activate(context.Background(), id)
		})
		installed = true
	})
	return installed
}

// CopyControl describes one copy control found in rendered markup.
type CopyControl struct {
	ID   string
	Lang string
}

// StashIndex is a StashLookup built from rendered markup.
type StashIndex struct {
	ix *stash.Index
}

// NewStashIndex indexes the copy controls and source stashes of markup.
func NewStashIndex(markup string) (*StashIndex, error) {
	ix, err := stash.ParseString(markup)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return &StashIndex{ix: ix}, nil
}

// Lookup returns the unescaped source stashed under id.
func (s *StashIndex) Lookup(id string) (string, bool) {
	return s.ix.Lookup(id)
}

// Controls lists the copy controls in document order.
func (s *StashIndex) Controls() []CopyControl {
	controls := s.ix.Controls()
	out := make([]CopyControl, len(controls))
	for i, c := range controls {
		out[i] = CopyControl{ID: c.ID, Lang: c.Lang}
	}
	return out
}

// Len returns the number of stashes.
func (s *StashIndex) Len() int {
	return s.ix.Len()
}
