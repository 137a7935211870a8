package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/storage"
	"github.com/inamate/sketchpad/internal/typeid"
)

// Persistence mirrors a Store into a KV under the origin's storage key.
// Local changes are written by a background writer that only keeps the most
// recent pending state. Writes from other display contexts replace the store
// wholesale. Failures are logged and otherwise ignored: the in-memory scene
// stays authoritative.
type Persistence struct {
	store  *Store
	kv     storage.KV
	key    string
	source string

	pending  chan document.State
	dispatch func(func())
	logger   *slog.Logger
}

// Option configures a Persistence.
type Option func(*Persistence)

// WithSource sets the display context id stamped on writes. Defaults to a
// fresh context id.
func WithSource(id string) Option { return func(p *Persistence) { p.source = id } }

// WithDispatch sets how remote updates are handed to the event loop that owns
// the store. Defaults to calling the function directly.
func WithDispatch(fn func(func())) Option { return func(p *Persistence) { p.dispatch = fn } }

func WithLogger(l *slog.Logger) Option { return func(p *Persistence) { p.logger = l } }

// NewPersistence subscribes to store. Call Load before the first mutation and
// Run to start writing.
func NewPersistence(store *Store, kv storage.KV, origin string, opts ...Option) *Persistence {
	p := &Persistence{
		store:    store,
		kv:       kv,
		key:      document.StorageKey(origin),
		pending:  make(chan document.State, 1),
		dispatch: func(fn func()) { fn() },
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	if p.source == "" {
		p.source = typeid.NewContextID()
	}
	store.Subscribe(p.onSnapshot)
	return p
}

func (p *Persistence) Source() string { return p.source }
func (p *Persistence) Key() string    { return p.key }

// Load reads the persisted scene into the store. A missing entry is not an
// error. On any other failure the store keeps its current state.
func (p *Persistence) Load(ctx context.Context) error {
	data, err := p.kv.Get(ctx, p.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load scene: %w", err)
	}
	env, err := document.DecodeEnvelope(data)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	p.store.Replace(env.State)
	return nil
}

// Run writes pending states until ctx is done.
func (p *Persistence) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case st := <-p.pending:
			if err := p.save(ctx, st); err != nil {
				p.logger.Warn("save scene", "key", p.key, "error", err)
			}
		}
	}
}

// Watch follows writes made by other display contexts until ctx is done.
func (p *Persistence) Watch(ctx context.Context, w storage.Watcher) error {
	ch, err := w.Watch(ctx, p.key)
	if err != nil {
		return fmt.Errorf("watch scene: %w", err)
	}
	go func() {
		for data := range ch {
			p.receive(data)
		}
	}()
	return nil
}

func (p *Persistence) receive(data []byte) {
	env, err := document.DecodeEnvelope(data)
	if err != nil {
		p.logger.Warn("decode remote scene", "key", p.key, "error", err)
		return
	}
	if env.Source == p.source {
		return
	}
	p.logger.Debug("remote scene", "key", p.key, "source", env.Source)
	p.dispatch(func() { p.store.Replace(env.State) })
}

func (p *Persistence) onSnapshot(snap Snapshot) {
	if snap.External {
		return
	}
	select {
	case p.pending <- snap.State:
	default:
		select {
		case <-p.pending:
		default:
		}
		p.pending <- snap.State
	}
}

func (p *Persistence) save(ctx context.Context, st document.State) error {
	data, err := document.Envelope{Source: p.source, State: st}.Encode()
	if err != nil {
		return err
	}
	if err := p.kv.Put(ctx, p.key, data); err != nil {
		return err
	}
	return nil
}
