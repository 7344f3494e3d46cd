package cup

import "github.com/anxuanzi/cup/pkg/logging"

// sessionConfig holds the resolved configuration a NewSession call builds
// up from defaults plus any SessionOption overrides.
type sessionConfig struct {
	platform    string
	maxDepth    int
	logLevel    logging.Level
	cdpHost     string
	cdpPort     string
	titleFilter string
}

func defaultSessionConfig() sessionConfig {
	host, port := cdpEnv()
	return sessionConfig{
		maxDepth: 999,
		logLevel: logging.LevelInfo,
		cdpHost:  host,
		cdpPort:  port,
	}
}

// SessionOption configures a Session at construction time.
type SessionOption func(*sessionConfig)

// WithPlatform pins the Session to a specific registered adapter name
// (e.g. "windows", "darwin") instead of detecting the running OS.
func WithPlatform(name string) SessionOption {
	return func(c *sessionConfig) {
		c.platform = name
	}
}

// WithMaxDepth caps capture depth relative to each window root. 999 (the
// default) is a sentinel for "unbounded in practice".
func WithMaxDepth(depth int) SessionOption {
	return func(c *sessionConfig) {
		c.maxDepth = depth
	}
}

// WithLogLevel sets the Session's logger verbosity.
func WithLogLevel(level logging.Level) SessionOption {
	return func(c *sessionConfig) {
		c.logLevel = level
	}
}

// WithCDP overrides the web adapter's connection parameters, which
// otherwise come from CUP_CDP_HOST / CUP_CDP_PORT.
func WithCDP(host, port string) SessionOption {
	return func(c *sessionConfig) {
		c.cdpHost = host
		c.cdpPort = port
	}
}

// WithAppFilter restricts overview, desktop and full captures to windows
// whose title contains the given substring (case-insensitive), mirroring
// the CLI's --app flag. Foreground captures are not filtered.
func WithAppFilter(titleSubstring string) SessionOption {
	return func(c *sessionConfig) {
		c.titleFilter = titleSubstring
	}
}
