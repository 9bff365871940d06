package feed

import (
	"context"
	"time"

	"socdash/internal/logger"
	"socdash/internal/store"
)

// Popper yields raw feed messages. A nil message with a nil error means
// nothing arrived before the source's own timeout.
type Popper interface {
	Pop(ctx context.Context) ([]byte, error)
}

// Dispatcher accepts store actions.
type Dispatcher interface {
	Dispatch(a store.Action)
}

// Loader drains a Popper into a Dispatcher.
type Loader struct {
	src     Popper
	dst     Dispatcher
	backoff time.Duration
	log     *logger.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithBackoff sets the pause after a failed Pop.
func WithBackoff(d time.Duration) LoaderOption {
	return func(l *Loader) { l.backoff = d }
}

// WithLogger sets the loader logger.
func WithLogger(lg *logger.Logger) LoaderOption {
	return func(l *Loader) { l.log = lg }
}

// NewLoader creates a loader reading src and dispatching into dst.
func NewLoader(src Popper, dst Dispatcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		src:     src,
		dst:     dst,
		backoff: time.Second,
		log:     logger.Default().With("feed"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Apply decodes one message and dispatches its actions.
func (l *Loader) Apply(data []byte) error {
	env, err := Decode(data)
	if err != nil {
		return err
	}
	actions := env.Actions()
	for _, a := range actions {
		l.dst.Dispatch(a)
	}
	l.log.Debugf("Applied %s envelope (%d actions)", env.Domain, len(actions))
	return nil
}

// Run pops and applies messages until ctx is cancelled.
// Malformed messages are logged and skipped.
func (l *Loader) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		data, err := l.src.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			l.log.Warnf("Feed pop failed: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(l.backoff):
			}
			continue
		}
		if data == nil {
			continue
		}
		if err := l.Apply(data); err != nil {
			l.log.Warnf("Dropping feed message: %v", err)
		}
	}
}
