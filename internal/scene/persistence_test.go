package scene

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/storage"
)

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (failingKV) Put(context.Context, string, []byte) error   { return errors.New("disk on fire") }

func waitFor(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for write")
		return nil
	}
}

func TestLoadMissingKeepsDefault(t *testing.T) {
	s := NewStore(document.DefaultState())
	p := NewPersistence(s, storage.NewMemory(), "local")
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Shapes()) != 0 || s.Tool() != document.ToolSelect {
		t.Errorf("store = %+v", s.State())
	}
}

func TestLoadFailureKeepsState(t *testing.T) {
	s := NewStore(document.SampleState())
	p := NewPersistence(s, failingKV{}, "local")
	if err := p.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(s.Shapes()) != 2 {
		t.Errorf("store lost its state: %+v", s.State())
	}
}

func TestLoadReplacesState(t *testing.T) {
	kv := storage.NewMemory()
	st := document.SampleState()
	st.Tool = document.ToolEllipse
	data, _ := document.Envelope{Source: "ctx_other", State: st}.Encode()
	kv.Put(context.Background(), document.StorageKey("local"), data)

	s := NewStore(document.DefaultState())
	saved := 0
	s.Subscribe(func(snap Snapshot) {
		if !snap.External {
			saved++
		}
	})
	p := NewPersistence(s, kv, "local")
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Shapes()) != 2 || s.Tool() != document.ToolEllipse {
		t.Errorf("store = %+v", s.State())
	}
	if saved != 0 {
		t.Error("loaded state should not look like a local change")
	}
}

func TestRunWritesLocalChanges(t *testing.T) {
	kv := storage.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watch, _ := kv.Watch(ctx, document.StorageKey("o"))

	s := NewStore(document.DefaultState())
	p := NewPersistence(s, kv, "o", WithSource("ctx_me"))
	go p.Run(ctx)

	s.SetColor(document.ColorOrange)

	env, err := document.DecodeEnvelope(waitFor(t, watch))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Source != "ctx_me" || env.State.Color != document.ColorOrange {
		t.Errorf("envelope = %+v", env)
	}
}

func TestSaveFailureIsAbsorbed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewStore(document.DefaultState())
	p := NewPersistence(s, failingKV{}, "o")
	go p.Run(ctx)

	s.SetColor(document.ColorRed)
	s.SetColor(document.ColorGreen)
	if s.Color() != document.ColorGreen {
		t.Errorf("color = %q", s.Color())
	}
}

func TestPendingKeepsLatest(t *testing.T) {
	s := NewStore(document.DefaultState())
	p := NewPersistence(s, storage.NewMemory(), "o")

	s.SetColor(document.ColorRed)
	s.SetColor(document.ColorGreen)
	s.SetColor(document.ColorOrange)

	select {
	case st := <-p.pending:
		if st.Color != document.ColorOrange {
			t.Errorf("pending color = %q, want Orange", st.Color)
		}
	default:
		t.Fatal("nothing pending")
	}
	select {
	case <-p.pending:
		t.Error("more than one pending write")
	default:
	}
}

func TestCrossContextSync(t *testing.T) {
	kv := storage.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := NewStore(document.DefaultState())
	pa := NewPersistence(a, kv, "o", WithSource("ctx_a"))
	go pa.Run(ctx)

	b := NewStore(document.DefaultState())
	received := make(chan Snapshot, 4)
	b.Subscribe(func(snap Snapshot) { received <- snap })
	pb := NewPersistence(b, kv, "o", WithSource("ctx_b"))
	if err := pb.Watch(ctx, kv); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	a.AddShape(rect(1, 2, 3, 4))

	select {
	case snap := <-received:
		if !snap.External || len(snap.Shapes) != 1 {
			t.Errorf("snapshot = %+v", snap)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("remote change never arrived")
	}
}

func TestOwnWritesIgnored(t *testing.T) {
	s := NewStore(document.DefaultState())
	p := NewPersistence(s, storage.NewMemory(), "o", WithSource("ctx_me"))

	data, _ := document.Envelope{Source: "ctx_me", State: document.SampleState()}.Encode()
	p.receive(data)
	if len(s.Shapes()) != 0 {
		t.Error("own write was applied")
	}

	data, _ = document.Envelope{Source: "ctx_you", State: document.SampleState()}.Encode()
	p.receive(data)
	if len(s.Shapes()) != 2 {
		t.Error("remote write not applied")
	}
}
