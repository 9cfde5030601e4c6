package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrSaveNotFound is returned when a profile has nothing in a slot.
var ErrSaveNotFound = errors.New("save not found")

// AutosaveSlot is the slot written after every change to the world.
const AutosaveSlot = "autosave"

// SaveRecord is one saved game. Data is an opaque snapshot; Location and
// SavedAt are kept alongside it so slots can be listed without decoding it.
type SaveRecord struct {
	Slot     string          `json:"slot"`
	Location string          `json:"location"`
	SavedAt  time.Time       `json:"saved_at"`
	Data     json.RawMessage `json:"data"`
}

// SaveStore persists save slots per player profile. Every operation replaces
// or reads a whole record; there are no partial writes.
type SaveStore interface {
	Save(ctx context.Context, profile string, rec *SaveRecord) error
	Load(ctx context.Context, profile, slot string) (*SaveRecord, error)
	Delete(ctx context.Context, profile, slot string) error
	List(ctx context.Context, profile string) ([]*SaveRecord, error)
	Close() error
}

func validateSaveKey(profile, slot string) error {
	if profile == "" {
		return fmt.Errorf("profile is required")
	}
	if slot == "" {
		return fmt.Errorf("slot is required")
	}
	if err := ValidateIdentifier(profile); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	if err := ValidateIdentifier(slot); err != nil {
		return fmt.Errorf("slot: %w", err)
	}
	return nil
}

func encodeRecord(rec *SaveRecord) ([]byte, error) {
	if len(rec.Data) == 0 {
		return nil, fmt.Errorf("save %s has no data", rec.Slot)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshalling save: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte) (*SaveRecord, error) {
	var rec SaveRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshalling save: %w", err)
	}
	return &rec, nil
}

func sortRecords(recs []*SaveRecord) {
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Slot < recs[j].Slot
	})
}
