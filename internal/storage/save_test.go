package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pixil98/go-testutil"
)

func newSaveStores(t *testing.T) map[string]SaveStore {
	t.Helper()

	file, err := NewFileSaveStore(filepath.Join(t.TempDir(), "saves"))
	if err != nil {
		t.Fatalf("file store: %v", err)
	}

	bolt, err := NewBoltSaveStore(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("bolt store: %v", err)
	}

	mr := miniredis.RunT(t)
	redis, err := NewRedisSaveStore(context.Background(), mr.Addr())
	if err != nil {
		t.Fatalf("redis store: %v", err)
	}

	stores := map[string]SaveStore{"file": file, "bolt": bolt, "redis": redis}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func testRecord(slot, location string) *SaveRecord {
	return &SaveRecord{
		Slot:     slot,
		Location: location,
		SavedAt:  time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		Data:     json.RawMessage(`{"world":{"player":{"location":"` + location + `"}}}`),
	}
}

func TestSaveStores(t *testing.T) {
	ctx := context.Background()

	for name, store := range newSaveStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load(ctx, "alice", "slot1")
			if !errors.Is(err, ErrSaveNotFound) {
				t.Fatalf("expected ErrSaveNotFound, got %v", err)
			}

			recs, err := store.List(ctx, "alice")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "empty list", len(recs), 0)

			for _, rec := range []*SaveRecord{testRecord("slot2", "hallway"), testRecord("autosave", "roof"), testRecord("slot1", "street")} {
				if err := store.Save(ctx, "alice", rec); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			if err := store.Save(ctx, "bob", testRecord("slot1", "cellar")); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// Overwrite replaces the whole record.
			if err := store.Save(ctx, "alice", testRecord("slot1", "hallway")); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := store.Load(ctx, "alice", "slot1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "location", got.Location, "hallway")
			testutil.AssertEqual(t, "saved at", got.SavedAt.Equal(testRecord("", "").SavedAt), true)
			testutil.AssertEqual(t, "data", string(got.Data), `{"world":{"player":{"location":"hallway"}}}`)

			recs, err = store.List(ctx, "alice")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "list size", len(recs), 3)
			testutil.AssertEqual(t, "first slot", recs[0].Slot, "autosave")
			testutil.AssertEqual(t, "last slot", recs[2].Slot, "slot2")

			if err := store.Delete(ctx, "alice", "slot2"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			err = store.Delete(ctx, "alice", "slot2")
			if !errors.Is(err, ErrSaveNotFound) {
				t.Fatalf("expected ErrSaveNotFound on second delete, got %v", err)
			}

			recs, err = store.List(ctx, "alice")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "after delete", len(recs), 2)

			recs, err = store.List(ctx, "bob")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "profiles isolated", len(recs), 1)
		})
	}
}

func TestSaveStores_RejectBadKeys(t *testing.T) {
	ctx := context.Background()

	tests := map[string]struct {
		profile string
		rec     *SaveRecord
		expErr  string
	}{
		"empty profile": {profile: "", rec: testRecord("slot1", "x"), expErr: "profile is required"},
		"empty slot":    {profile: "alice", rec: testRecord("", "x"), expErr: "slot is required"},
		"path profile":  {profile: "../alice", rec: testRecord("slot1", "x"), expErr: "must contain only"},
		"spaced slot":   {profile: "alice", rec: testRecord("my slot", "x"), expErr: "must contain only"},
		"no data":       {profile: "alice", rec: &SaveRecord{Slot: "slot1"}, expErr: "has no data"},
	}

	for storeName, store := range newSaveStores(t) {
		for name, tt := range tests {
			t.Run(storeName+"/"+name, func(t *testing.T) {
				testutil.AssertErrorContains(t, store.Save(ctx, tt.profile, tt.rec), tt.expErr)
			})
		}
	}
}

func TestFileSaveStore_WritesInPlace(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileSaveStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Save(context.Background(), "alice", testRecord("slot1", "cellar")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = os.Stat(filepath.Join(dir, "alice", "slot1.json"))
	if err != nil {
		t.Errorf("expected save file: %v", err)
	}
	_, err = os.Stat(filepath.Join(dir, "alice", "slot1.json.tmp"))
	testutil.AssertEqual(t, "temp file removed", os.IsNotExist(err), true)
}
