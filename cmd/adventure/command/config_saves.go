package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-peril/internal/storage"
)

type SaveBackend string

const (
	SaveBackendFile  SaveBackend = "file"
	SaveBackendRedis SaveBackend = "redis"
	SaveBackendBolt  SaveBackend = "bolt"
)

type SavesConfig struct {
	Backend   SaveBackend `json:"backend"`
	Path      string      `json:"path,omitempty"`
	RedisAddr string      `json:"redis_addr,omitempty"`
	Slots     []string    `json:"slots,omitempty"`
}

func (c *SavesConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Backend {
	case SaveBackendFile, SaveBackendBolt:
		if c.Path == "" {
			el.Add(fmt.Errorf("saves: path is required for the %s backend", c.Backend))
		}
	case SaveBackendRedis:
		if c.RedisAddr == "" {
			el.Add(fmt.Errorf("saves: redis_addr is required for the redis backend"))
		}
	default:
		el.Add(fmt.Errorf("saves: unknown backend %q", c.Backend))
	}

	for _, s := range c.Slots {
		if s == storage.AutosaveSlot {
			el.Add(fmt.Errorf("saves: slot %q is reserved", s))
			continue
		}
		if err := storage.ValidateIdentifier(s); err != nil {
			el.Add(fmt.Errorf("saves: %w", err))
		}
	}

	return el.Err()
}

// BuildSaveStore opens the configured backend.
func (c *SavesConfig) BuildSaveStore(ctx context.Context) (storage.SaveStore, error) {
	switch c.Backend {
	case SaveBackendFile:
		return storage.NewFileSaveStore(c.Path)
	case SaveBackendBolt:
		return storage.NewBoltSaveStore(c.Path)
	case SaveBackendRedis:
		return storage.NewRedisSaveStore(ctx, c.RedisAddr)
	default:
		return nil, fmt.Errorf("unknown save backend %q", c.Backend)
	}
}
