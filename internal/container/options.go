package container

import "fmt"

// Options holds the CLI flags for both binaries. The defaults keep every
// piece of state in process memory: memory store, in-process channel broker,
// log-only analytics.
type Options struct {
	Port            int    `default:"8888"           help:"Port to listen on"                                          short:"p"`
	BaseURL         string `help:"Base URL for short links (defaults to http://localhost:<port>)"`
	CodeLength      int    `default:"6"              help:"Length of generated short codes"                            short:"c"`
	DefaultValidity int    `default:"30"             help:"Default validity window in minutes"`
	Store           string `default:"memory"         help:"URL store backend: memory, redis, or postgres"`
	Broker          string `default:"channel"        help:"Event broker: channel (in-process) or redis"`
	AnalyticsStore  string `default:"log"            help:"Analytics store: log or redis"`
	RedisAddr       string `default:"localhost:6379" help:"Redis server address"                                       short:"r"`
	PostgresDSN     string `help:"PostgreSQL connection string (required for store=postgres)"`
	Cache           string `default:"off"            help:"Read cache for the URL store: off or redis"`
	CacheTTL        int    `default:"300"            help:"Cache TTL in seconds (0 caches without expiry)"`
	RateLimitStore  string `default:"memory"         help:"Rate limit store: memory or redis"`
	LogFormat       string `default:"console"        help:"Log format: console or json"`
	LogFile         string `help:"Optional log file path, rotated"`
}

// ServerBaseURL returns the base URL used to build short link display strings.
func (o *Options) ServerBaseURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}
