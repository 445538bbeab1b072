package option_test

import (
	"testing"

	"go.llib.dev/groupkit/port/option"
	"go.llib.dev/testcase/assert"
)

type Config struct {
	Foo string
	Bar int
}

func (c *Config) Init() { c.Bar = 42 }

func Foo(v string) option.Option[Config] {
	return option.Func[Config](func(c *Config) { c.Foo = v })
}

func TestUse(t *testing.T) {
	t.Run("defaults are set by Init", func(t *testing.T) {
		c := option.Use[Config, option.Option[Config]](nil)
		assert.Equal(t, 42, c.Bar)
		assert.Empty(t, c.Foo)
	})
	t.Run("options are applied in order", func(t *testing.T) {
		c := option.Use[Config]([]option.Option[Config]{Foo("a"), Foo("b")})
		assert.Equal(t, "b", c.Foo)
		assert.Equal(t, 42, c.Bar)
	})
}
