package command

import (
	"context"
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-peril/internal/messaging"
)

const defaultQueueSize = 256

// NatsConfig selects the bus that carries autosave requests. With Disabled
// set, an in-process queue replaces the embedded NATS server.
type NatsConfig struct {
	Disabled     bool   `json:"disabled,omitempty"`
	Host         string `json:"host,omitempty"`
	Port         int    `json:"port,omitempty"`
	StartTimeout string `json:"start_timeout,omitempty"`
	QueueSize    int    `json:"queue_size,omitempty"`
}

func (c *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if c.StartTimeout != "" {
		if _, err := time.ParseDuration(c.StartTimeout); err != nil {
			el.Add(fmt.Errorf("nats: parsing start_timeout: %w", err))
		}
	}
	if c.Port < -1 || c.Port > 65535 {
		el.Add(fmt.Errorf("nats: port %d out of range", c.Port))
	}
	if c.QueueSize < 0 {
		el.Add(fmt.Errorf("nats: queue_size must not be negative"))
	}

	return el.Err()
}

// Bus is a messaging bus that also runs as a worker.
type Bus interface {
	messaging.Bus
	Start(ctx context.Context) error
}

// BuildBus creates the embedded NATS server, or a local queue when NATS is
// disabled.
func (c *NatsConfig) BuildBus() (Bus, error) {
	if c.Disabled {
		size := c.QueueSize
		if size == 0 {
			size = defaultQueueSize
		}
		return messaging.NewLocalBus(size), nil
	}

	var opts []messaging.NatsServerOpt
	if c.StartTimeout != "" {
		d, err := time.ParseDuration(c.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if c.Host != "" {
		opts = append(opts, messaging.WithHost(c.Host))
	}
	if c.Port != 0 {
		opts = append(opts, messaging.WithPort(c.Port))
	}

	s, err := messaging.NewNatsServer(opts...)
	if err != nil {
		return nil, err
	}
	return s, nil
}
