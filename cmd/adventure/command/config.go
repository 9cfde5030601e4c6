package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

type Config struct {
	Content   ContentConfig    `json:"content"`
	Engine    EngineConfig     `json:"engine"`
	Saves     SavesConfig      `json:"saves"`
	Nats      NatsConfig       `json:"nats"`
	Listeners []ListenerConfig `json:"listeners"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Content.validate())
	el.Add(c.Engine.validate())
	el.Add(c.Saves.validate())
	el.Add(c.Nats.validate())

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	return el.Err()
}
