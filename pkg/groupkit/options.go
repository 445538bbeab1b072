package groupkit

import (
	"context"

	"go.llib.dev/groupkit/pkg/logging"
	"go.llib.dev/groupkit/port/option"
)

type Option option.Option[Config]

type Config struct {
	// Logger receives the debug entries about drained Groups.
	//
	// Default: logging.Default
	Logger *logging.Logger
	// Context is used as the logging context.
	//
	// Default: context.Background()
	Context context.Context
}

func (c *Config) Init() {
	c.Logger = &logging.Default
	c.Context = context.Background()
}

func (c Config) Configure(t *Config) {
	if c.Logger != nil {
		t.Logger = c.Logger
	}
	if c.Context != nil {
		t.Context = c.Context
	}
}

func WithLogger(l *logging.Logger) Option {
	return option.Func[Config](func(c *Config) { c.Logger = l })
}

func WithContext(ctx context.Context) Option {
	return option.Func[Config](func(c *Config) { c.Context = ctx })
}
