package clientip

// Config lists the proxy headers trusted for the client address.
type Config struct {
	TrustedHeaders []string `env:"CLIENT_IP_HEADERS" envSeparator:"," envDefault:"CF-Connecting-IP,X-Forwarded-For,X-Real-IP"`
}

// NewFromConfig creates a Resolver from cfg. An empty header list trusts
// the TCP peer address only.
func NewFromConfig(cfg Config) *Resolver {
	return &Resolver{headers: normalize(cfg.TrustedHeaders)}
}
