//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/inamate/sketchpad/internal/storage"
)

// localStorageKV is a storage.WatchKV over window.localStorage. Watch is fed
// by the window's "storage" event, which browsers only fire for writes made
// by other tabs of the same origin.
type localStorageKV struct {
	ls js.Value
}

func newLocalStorageKV() *localStorageKV {
	return &localStorageKV{ls: js.Global().Get("localStorage")}
}

func (k *localStorageKV) Get(_ context.Context, key string) ([]byte, error) {
	v := k.ls.Call("getItem", key)
	if v.IsNull() {
		return nil, storage.ErrNotFound
	}
	return []byte(v.String()), nil
}

func (k *localStorageKV) Put(_ context.Context, key string, value []byte) (err error) {
	// setItem throws QuotaExceededError when storage is full or disabled
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("local storage put: %v", r)
		}
	}()
	k.ls.Call("setItem", key, string(value))
	return nil
}

func (k *localStorageKV) Watch(ctx context.Context, key string) (<-chan []byte, error) {
	ch := make(chan []byte, 1)
	window := js.Global()

	listener := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		if ev.Get("key").String() != key {
			return nil
		}
		v := ev.Get("newValue")
		if v.IsNull() {
			return nil
		}
		storage.Offer(ch, []byte(v.String()))
		return nil
	})
	window.Call("addEventListener", "storage", listener)

	go func() {
		<-ctx.Done()
		window.Call("removeEventListener", "storage", listener)
		listener.Release()
		close(ch)
	}()
	return ch, nil
}
