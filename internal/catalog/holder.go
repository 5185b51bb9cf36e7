package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
)

// Holder publishes the current snapshot to readers on any goroutine.
type Holder struct {
	p atomic.Pointer[Snapshot]
}

func NewHolder() *Holder {
	h := &Holder{}
	h.p.Store(emptySnapshot())
	return h
}

// Current never returns nil; before the first load it is an empty snapshot.
func (h *Holder) Current() *Snapshot {
	if s := h.p.Load(); s != nil {
		return s
	}
	return emptySnapshot()
}

// Swap installs s and returns the snapshot it replaced. A nil s is ignored.
func (h *Holder) Swap(s *Snapshot) *Snapshot {
	if s == nil {
		return h.Current()
	}
	old := h.p.Swap(s)
	if old == nil {
		old = emptySnapshot()
	}
	return old
}

// Loader produces a snapshot from one source: a cache, a file, a download.
type Loader struct {
	Name string
	Load func(ctx context.Context) (*Snapshot, error)
}

var ErrNoSnapshot = errors.New("catalog: no loader produced a snapshot")

// LoadAsync tries each loader in order on a background goroutine and swaps
// in the first snapshot that loads. On failure the holder keeps what it
// had. The channel receives the final result and is then closed.
func LoadAsync(ctx context.Context, h *Holder, logger *slog.Logger, loaders ...Loader) <-chan error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	done := make(chan error, 1)
	go func() {
		defer close(done)
		var errs []error
		for _, l := range loaders {
			if err := ctx.Err(); err != nil {
				done <- err
				return
			}
			snap, err := l.Load(ctx)
			if err != nil {
				logger.Warn("catalog source failed", "source", l.Name, "err", err)
				errs = append(errs, fmt.Errorf("%s: %w", l.Name, err))
				continue
			}
			if snap == nil {
				continue
			}
			h.Swap(snap)
			logger.Info("catalog loaded", "source", l.Name, "items", snap.Len())
			done <- nil
			return
		}
		done <- errors.Join(append([]error{ErrNoSnapshot}, errs...)...)
	}()
	return done
}
