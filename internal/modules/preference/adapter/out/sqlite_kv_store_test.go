package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	preferenceout "folio/internal/modules/preference/adapter/out"
	"folio/internal/platform/clock"
)

func TestSQLiteKVStoreRoundTripAndOverwrite(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "nested", "folio.db")
	store, err := preferenceout.NewSQLiteKVStore(dbPath, clock.Fixed{At: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	if _, found, err := store.Get(ctx, "preferredMode"); err != nil || found {
		t.Fatalf("expected missing key, found=%v err=%v", found, err)
	}
	if err := store.Set(ctx, "preferredMode", "serious"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "preferredMode", "playful"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, found, err := store.Get(ctx, "preferredMode")
	if err != nil || !found || value != "playful" {
		t.Fatalf("unexpected read: value=%q found=%v err=%v", value, found, err)
	}
}

func TestSQLiteKVStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "folio.db")
	first, err := preferenceout.NewSQLiteKVStore(dbPath, clock.SystemClock{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := first.Set(context.Background(), "preferredMode", "serious"); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = first.Close()

	second, err := preferenceout.NewSQLiteKVStore(dbPath, clock.SystemClock{})
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })
	value, found, err := second.Get(context.Background(), "preferredMode")
	if err != nil || !found || value != "serious" {
		t.Fatalf("value did not survive reopen: %q %v %v", value, found, err)
	}
}
