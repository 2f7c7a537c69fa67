package events

// Config configures event dispatch.
type Config struct {
	Enabled       bool   `env:"EVENTS_ENABLED" envDefault:"true"`
	ChannelPrefix string `env:"EVENTS_CHANNEL_PREFIX" envDefault:"authbridge"`
}
