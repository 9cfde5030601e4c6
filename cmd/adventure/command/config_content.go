package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/storage"
)

type ContentConfig struct {
	Rooms     AssetConfig[*game.Room] `json:"rooms"`
	Items     AssetConfig[*game.Item] `json:"items"`
	StartRoom string                  `json:"start_room"`
	Help      string                  `json:"help,omitempty"`
}

func (c *ContentConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Rooms.Validate("rooms"))
	el.Add(c.Items.Validate("items"))
	if c.StartRoom == "" {
		el.Add(fmt.Errorf("start_room is required"))
	}
	return el.Err()
}

// BuildWorld loads the content and assembles the starting world.
func (c *ContentConfig) BuildWorld() (*game.WorldState, error) {
	rooms, err := c.Rooms.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}
	items, err := c.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}

	w, err := game.NewWorldState(rooms, items, c.StartRoom)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	return w, nil
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
