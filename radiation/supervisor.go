package radiation

import (
	"context"
	"io"
	"log"
	"sync/atomic"
	"weak"

	"golang.org/x/time/rate"
)

// Handle controls a running supervisor.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	events atomic.Uint64
}

// Stop signals the supervisor and waits for it to exit. No radiation is
// performed once Stop returns. Stop may be called any number of times from
// any goroutine, but not from within the supervisor itself.
func (h *Handle) Stop() {
	h.cancel()
	<-h.done
}

// Done is closed once the supervisor has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Events returns the number of radiation events performed so far.
func (h *Handle) Events() uint64 {
	return h.events.Load()
}

type options struct {
	limiter *rate.Limiter
	metrics *Metrics
	logger  *log.Logger
}

// Option configures a supervisor.
type Option func(o *options)

// WithLimit throttles the supervisor to r events per second with the given
// burst. Without it the supervisor spins.
func WithLimit(r rate.Limit, burst int) Option {
	return func(o *options) {
		o.limiter = rate.NewLimiter(r, burst)
	}
}

// WithMetrics records every outcome in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithLogger logs supervisor start and stop to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Start radiates t with e until ctx is done or the returned handle is
// stopped. The supervisor keeps t reachable for as long as it runs.
func Start(ctx context.Context, t Target, e *Engine, opts ...Option) *Handle {
	return start(ctx, func() Target { return t }, e, opts)
}

// StartWeak is like Start but holds only a weak reference to t. The
// supervisor exits on its own once t has been garbage collected.
func StartWeak[T any, PT interface {
	*T
	Target
}](ctx context.Context, t PT, e *Engine, opts ...Option) *Handle {
	wp := weak.Make((*T)(t))

	return start(ctx, func() Target {
		p := wp.Value()
		if p == nil {
			return nil
		}

		return PT(p)
	}, e, opts)
}

func start(ctx context.Context, lookup func() Target, e *Engine, opts []Option) *Handle {
	o := &options{
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(o)
	}

	ctx, cancel := context.WithCancel(ctx)

	h := &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(h.done)

		o.logger.Printf("radiation: supervisor started (reach=%d)", e.Reach())
		defer func() {
			o.logger.Printf("radiation: supervisor stopped after %d events", h.events.Load())
		}()

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if o.limiter != nil {
				err := o.limiter.Wait(ctx)
				if err != nil {
					return
				}
			}

			t := lookup()
			if t == nil {
				return
			}

			o.metrics.Observe(e.Radiate(t))
			h.events.Add(1)
		}
	}()

	return h
}
