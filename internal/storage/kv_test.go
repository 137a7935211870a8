package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// testWatchKV runs the behavior every backend shares. Keys are unique per
// run so backends that outlive the test start clean.
func testWatchKV(t *testing.T, kv WatchKV) {
	prefix := fmt.Sprintf("%s/%d/", t.Name(), time.Now().UnixNano())

	t.Run("GetMissing", func(t *testing.T) {
		if _, err := kv.Get(context.Background(), prefix+"nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		ctx := context.Background()
		key := prefix + "overwrite"
		for _, v := range []string{"first", "second"} {
			if err := kv.Put(ctx, key, []byte(v)); err != nil {
				t.Fatalf("Put %s: %v", v, err)
			}
		}
		got, err := kv.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if string(got) != "second" {
			t.Errorf("Get = %q, want second", got)
		}
	})

	t.Run("WatchSeesLatest", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		key := prefix + "watched"

		ch, err := kv.Watch(ctx, key)
		if err != nil {
			t.Fatalf("Watch: %v", err)
		}
		kv.Put(ctx, prefix+"other", []byte("x"))
		kv.Put(ctx, key, []byte("1"))
		kv.Put(ctx, key, []byte("2"))

		timeout := time.After(5 * time.Second)
		for {
			select {
			case v := <-ch:
				switch string(v) {
				case "2":
					return
				case "1":
				default:
					t.Fatalf("watched %q from another key", v)
				}
			case <-timeout:
				t.Fatal("latest value never delivered")
			}
		}
	})

	t.Run("WatchClosesOnCancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		key := prefix + "cancelled"
		ch, err := kv.Watch(ctx, key)
		if err != nil {
			t.Fatalf("Watch: %v", err)
		}
		cancel()

		timeout := time.After(5 * time.Second)
		for closed := false; !closed; {
			select {
			case _, ok := <-ch:
				closed = !ok
			case <-timeout:
				t.Fatal("channel not closed")
			}
		}
		if err := kv.Put(context.Background(), key, []byte("after")); err != nil {
			t.Fatalf("Put after cancel: %v", err)
		}
	})
}
