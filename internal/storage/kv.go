// Package storage provides the durable key-value backends scene state is
// persisted to.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// KV is a durable key-value store.
type KV interface {
	// Get returns ErrNotFound when key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Watcher reports writes to a key, including the caller's own. The channel
// is closed when ctx is done. Slow receivers only see the latest value.
type Watcher interface {
	Watch(ctx context.Context, key string) (<-chan []byte, error)
}

// WatchKV is a KV whose writes can be observed.
type WatchKV interface {
	KV
	Watcher
}

// Offer delivers v on ch, replacing a value the receiver has not taken yet.
func Offer(ch chan []byte, v []byte) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
