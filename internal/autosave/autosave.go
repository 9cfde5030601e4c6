// Package autosave writes the latest world of each session to its autosave
// slot. Sessions publish requests on the bus and move on; the Saver worker
// persists them. A failed save is logged and otherwise ignored.
package autosave

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/messaging"
	"github.com/pixil98/go-peril/internal/storage"
)

// Subject is the bus subject autosave requests travel on.
const Subject = "autosave"

// Request asks for a record to be written for a profile.
type Request struct {
	Profile string              `json:"profile"`
	Record  *storage.SaveRecord `json:"record"`
}

// NewRecord snapshots w into a save record for slot.
func NewRecord(slot string, w *game.WorldState) (*storage.SaveRecord, error) {
	snap := game.NewSnapshot(w)
	data, err := snap.Encode()
	if err != nil {
		return nil, err
	}
	return &storage.SaveRecord{
		Slot:     slot,
		Location: w.Player.Location,
		SavedAt:  snap.SavedAt,
		Data:     data,
	}, nil
}

// Publisher sends autosave requests without waiting for them to be stored.
type Publisher struct {
	bus messaging.Bus
}

func NewPublisher(bus messaging.Bus) *Publisher {
	return &Publisher{bus: bus}
}

// Publish queues an autosave of w for profile. Errors are logged, never
// returned, so callers cannot be held up by persistence.
func (p *Publisher) Publish(ctx context.Context, profile string, w *game.WorldState) {
	rec, err := NewRecord(storage.AutosaveSlot, w)
	if err != nil {
		slog.WarnContext(ctx, "building autosave", "profile", profile, "error", err)
		return
	}

	data, err := json.Marshal(&Request{Profile: profile, Record: rec})
	if err != nil {
		slog.WarnContext(ctx, "marshalling autosave", "profile", profile, "error", err)
		return
	}

	if err := p.bus.Publish(Subject, data); err != nil {
		slog.WarnContext(ctx, "publishing autosave", "profile", profile, "error", err)
	}
}

// Saver is a worker that stores autosave requests from the bus.
type Saver struct {
	bus   messaging.Bus
	store storage.SaveStore
}

func NewSaver(bus messaging.Bus, store storage.SaveStore) *Saver {
	return &Saver{bus: bus, store: store}
}

// Start subscribes once the bus is ready and handles requests until ctx is
// cancelled.
func (s *Saver) Start(ctx context.Context) error {
	select {
	case <-s.bus.Ready():
	case <-ctx.Done():
		return nil
	}

	unsubscribe, err := s.bus.Subscribe(Subject, func(data []byte) {
		s.handle(ctx, data)
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", Subject, err)
	}
	defer unsubscribe()

	slog.InfoContext(ctx, "autosave worker started")
	<-ctx.Done()
	return nil
}

func (s *Saver) handle(ctx context.Context, data []byte) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		slog.WarnContext(ctx, "decoding autosave request", "error", err)
		return
	}
	if req.Record == nil {
		slog.WarnContext(ctx, "autosave request without a record", "profile", req.Profile)
		return
	}

	// Use a fresh context so a save that arrives during shutdown still lands.
	if err := s.store.Save(context.WithoutCancel(ctx), req.Profile, req.Record); err != nil {
		slog.WarnContext(ctx, "autosave failed", "profile", req.Profile, "error", err)
		return
	}
	slog.DebugContext(ctx, "autosaved", "profile", req.Profile, "location", req.Record.Location)
}
