package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-peril/internal/autosave"
	"github.com/pixil98/go-peril/internal/listener"
	"github.com/pixil98/go-peril/internal/session"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	world, err := cfg.Content.BuildWorld()
	if err != nil {
		return nil, err
	}
	slog.Info("content loaded", "rooms", len(world.Rooms), "items", len(world.Items), "start", world.Player.Location)

	handler := cfg.Engine.BuildHandler(cfg.Content.Help)

	saves, err := cfg.Saves.BuildSaveStore(context.Background())
	if err != nil {
		return nil, fmt.Errorf("opening save store: %w", err)
	}

	bus, err := cfg.Nats.BuildBus()
	if err != nil {
		return nil, fmt.Errorf("creating bus: %w", err)
	}

	opts := []session.ManagerOpt{session.WithAutosaver(autosave.NewPublisher(bus))}
	if len(cfg.Saves.Slots) > 0 {
		opts = append(opts, session.WithSlots(cfg.Saves.Slots...))
	}
	sessions := session.NewManager(handler, world, saves, opts...)
	cm := listener.NewConnectionManager(sessions)

	// Create Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		worker, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("%s-%d", l.Protocol, i)] = worker
	}

	return service.WorkerList{
		"bus":       bus,
		"autosave":  &saveWorker{saver: autosave.NewSaver(bus, saves), store: saves},
		"sessions":  sessions,
		"listeners": &listeners,
	}, nil
}

// saveWorker runs the autosave worker and closes the save store once it
// stops.
type saveWorker struct {
	saver interface{ Start(context.Context) error }
	store interface{ Close() error }
}

func (w *saveWorker) Start(ctx context.Context) error {
	err := w.saver.Start(ctx)
	if cerr := w.store.Close(); cerr != nil {
		slog.WarnContext(ctx, "closing save store", "error", cerr)
	}
	return err
}
