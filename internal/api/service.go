// Package api serves persisted scene state over HTTP.
package api

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/draw"
	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/storage"
)

var (
	ErrNotFound           = errors.New("scene not found")
	ErrOriginMismatch     = errors.New("token not issued for this origin")
	ErrPreconditionFailed = errors.New("scene changed")
	ErrInvalidState       = errors.New("invalid scene state")
	ErrInvalidSize        = errors.New("invalid render size")
)

// MaxRenderSize bounds each side of a headless render.
const MaxRenderSize = 8192

type Service struct {
	kv storage.KV
}

func NewService(kv storage.KV) *Service {
	return &Service{kv: kv}
}

// Scene is a stored envelope as it was written.
type Scene struct {
	Data []byte
	ETag string
}

// ETag returns a strong entity tag for a stored value.
func ETag(data []byte) string {
	sum := blake2b.Sum256(data)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

func (s *Service) Get(ctx context.Context, origin string) (*Scene, error) {
	data, err := s.kv.Get(ctx, document.StorageKey(origin))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get scene: %w", err)
	}
	return &Scene{Data: data, ETag: ETag(data)}, nil
}

// Put stores body, an envelope, for origin. An envelope without a source is
// stamped with source. When ifMatch is set the write only happens if the
// stored value still has that tag. The check and the write are not atomic;
// the last writer wins a race, as it does between display contexts.
func (s *Service) Put(ctx context.Context, origin, source string, body []byte, ifMatch string) (string, error) {
	env, err := document.DecodeEnvelope(body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if env.Source == "" {
		env.Source = source
	}

	if ifMatch != "" && ifMatch != "*" {
		current, err := s.Get(ctx, origin)
		switch {
		case errors.Is(err, ErrNotFound):
			return "", ErrPreconditionFailed
		case err != nil:
			return "", err
		case current.ETag != ifMatch:
			return "", ErrPreconditionFailed
		}
	}

	data, err := env.Encode()
	if err != nil {
		return "", err
	}
	if err := s.kv.Put(ctx, document.StorageKey(origin), data); err != nil {
		return "", fmt.Errorf("put scene: %w", err)
	}
	return ETag(data), nil
}

// Render draws the stored scene of origin, or an empty one, onto a headless
// surface of the given size and returns the recorded commands.
func (s *Service) Render(ctx context.Context, origin string, width, height float64) ([]draw.DrawCommand, error) {
	if !validSize(width) || !validSize(height) {
		return nil, ErrInvalidSize
	}

	st := document.DefaultState()
	scene, err := s.Get(ctx, origin)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, err
	default:
		env, err := document.DecodeEnvelope(scene.Data)
		if err != nil {
			return nil, fmt.Errorf("decode stored scene: %w", err)
		}
		st = env.State
	}

	rec := draw.NewRecorder(width, height)
	engine.NewRenderer().Render(rec, st, nil)
	return rec.Commands(), nil
}

// validSize is written so that NaN fails it.
func validSize(v float64) bool {
	return v > 0 && v <= MaxRenderSize
}
