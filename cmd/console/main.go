// Command console plays an adventure locally in a terminal window.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pixil98/go-peril/internal/autosave"
	"github.com/pixil98/go-peril/internal/commands"
	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/messaging"
	"github.com/pixil98/go-peril/internal/session"
	"github.com/pixil98/go-peril/internal/storage"
)

func main() {
	rooms := flag.String("rooms", "./content/rooms", "directory of room definitions")
	items := flag.String("items", "./content/items", "directory of item definitions")
	start := flag.String("start", "apartment_living_room", "starting room id")
	saves := flag.String("saves", "./data/saves", "directory for saved games")
	profile := flag.String("profile", "player", "save profile name")
	resume := flag.Bool("resume", false, "continue from the last autosave")
	logFile := flag.String("log", "", "write logs to this file")
	flag.Parse()

	if err := run(*rooms, *items, *start, *saves, *profile, *resume, *logFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(roomsPath, itemsPath, start, savesPath, profile string, resume bool, logFile string) error {
	// The terminal belongs to the UI, so logs go to a file or nowhere.
	if logFile != "" {
		f, err := os.OpenFile(filepath.Clean(logFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		slog.SetDefault(slog.New(slog.DiscardHandler))
	}

	if err := storage.ValidateIdentifier(profile); err != nil || profile == "" {
		return fmt.Errorf("invalid profile %q", profile)
	}

	roomStore, err := storage.NewFileStore[*game.Room](roomsPath)
	if err != nil {
		return fmt.Errorf("loading rooms: %w", err)
	}
	itemStore, err := storage.NewFileStore[*game.Item](itemsPath)
	if err != nil {
		return fmt.Errorf("loading items: %w", err)
	}
	world, err := game.NewWorldState(roomStore, itemStore, start)
	if err != nil {
		return fmt.Errorf("building world: %w", err)
	}

	saveStore, err := storage.NewFileSaveStore(savesPath)
	if err != nil {
		return err
	}
	defer saveStore.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := messaging.NewLocalBus(64)
	done := make(chan struct{}, 2)
	go func() { _ = bus.Start(ctx); done <- struct{}{} }()
	go func() { _ = autosave.NewSaver(bus, saveStore).Start(ctx); done <- struct{}{} }()
	defer func() {
		cancel()
		<-done
		<-done
	}()

	mgr := session.NewManager(commands.NewHandler(), world, saveStore,
		session.WithAutosaver(autosave.NewPublisher(bus)))
	s := mgr.NewSession(profile)

	intro := s.Look(ctx)
	if resume {
		intro, _ = s.Submit(ctx, "/load "+storage.AutosaveSlot)
	}

	return newUI(ctx, s).run(intro)
}
