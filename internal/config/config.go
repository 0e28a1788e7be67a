// Package config parses the command-line surface shared by both the
// server and client binaries and validates the resulting combination of
// flags.
package config

import (
	"flag"
	"fmt"
	"runtime"
)

// PayloadType names the fabrication mode a server runs in.
type PayloadType string

const (
	PayloadContainer PayloadType = "container"
	PayloadSleep     PayloadType = "sleep"
	// PayloadCommand is accepted by the flag parser for fidelity with the
	// original CLI surface but is never a valid server configuration.
	PayloadCommand PayloadType = "command"
)

// Config holds every flag value. Parse checks it against cross-field rules
// (see Validate) before returning it, except when -help is set.
type Config struct {
	Client bool

	PayloadType      PayloadType
	ContainerSize    uint
	PayloadSleepTime float64

	NProducerThreads uint
	// NContextThreads is accepted for command-line compatibility with the
	// reactor thread pool this flag sized in the original design, but has
	// no effect on this build: a Session owns exactly one goroutine for its
	// entire lifetime (see DESIGN.md), so there is no shared reactor pool
	// left to size. runServer logs the configured value so it's visible
	// rather than silently swallowed.
	NContextThreads uint
	MaxNServed      uint
	FullQueueSleepMs uint
	MaxQueueSize     uint

	Port     uint
	Host     string
	ClientID uint

	// StatusAddr and DashboardAddr bind the ambient, read-only status
	// surfaces (server and client respectively). Empty disables them.
	StatusAddr    string
	DashboardAddr string

	Help bool
}

// ConfigError marks an invalid flag or combination of flags. It is always
// fatal to the process at startup.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// Parse builds a FlagSet over args (typically os.Args[1:]), registering
// both the long and short name of each flag against the same variable, and
// returns the resulting Config after validation.
func Parse(args []string) (*Config, error) {
	fs := flag.NewFlagSet("workdispatch", flag.ContinueOnError)

	cfg := &Config{}
	var payloadType string

	fs.BoolVar(&cfg.Client, "client", false, "run as client; otherwise server")

	fs.StringVar(&payloadType, "payload_type", string(PayloadContainer), "fabrication mode: container or sleep")
	fs.StringVar(&payloadType, "p", string(PayloadContainer), "shorthand for -payload_type")

	fs.UintVar(&cfg.ContainerSize, "container_size", 1000, "elements per container")
	fs.UintVar(&cfg.ContainerSize, "s", 1000, "shorthand for -container_size")

	fs.Float64Var(&cfg.PayloadSleepTime, "payload_sleep_time", 1.0, "seconds per sleep payload")
	fs.Float64Var(&cfg.PayloadSleepTime, "t", 1.0, "shorthand for -payload_sleep_time")

	defaultThreads := uint(runtime.NumCPU())
	fs.UintVar(&cfg.NProducerThreads, "n_producer_threads", defaultThreads, "producer thread count (0 = auto)")
	fs.UintVar(&cfg.NProducerThreads, "n", defaultThreads, "shorthand for -n_producer_threads")

	fs.UintVar(&cfg.NContextThreads, "n_context_threads", defaultThreads, "reactor thread count (0 = auto); accepted for CLI compatibility, has no effect in this build")
	fs.UintVar(&cfg.NContextThreads, "l", defaultThreads, "shorthand for -n_context_threads")

	fs.UintVar(&cfg.MaxNServed, "max_n_served", 10000, "shutdown threshold")
	fs.UintVar(&cfg.MaxNServed, "m", 10000, "shorthand for -max_n_served")

	fs.UintVar(&cfg.FullQueueSleepMs, "full_queue_sleep_ms", 5, "producer backoff on full queue")
	fs.UintVar(&cfg.FullQueueSleepMs, "f", 5, "shorthand for -full_queue_sleep_ms")

	fs.UintVar(&cfg.MaxQueueSize, "max_queue_size", 5000, "queue capacity")
	fs.UintVar(&cfg.MaxQueueSize, "q", 5000, "shorthand for -max_queue_size")

	fs.UintVar(&cfg.Port, "port", 10000, "TCP port")
	fs.StringVar(&cfg.Host, "host", "127.0.0.1", "server bind or client target")
	fs.UintVar(&cfg.ClientID, "client_id", 0, "informational id printed by client")

	fs.StringVar(&cfg.StatusAddr, "status_addr", "", "bind address for the server status endpoint (empty disables it)")
	fs.StringVar(&cfg.DashboardAddr, "dashboard_addr", "", "bind address for the client dashboard (empty disables it)")

	fs.BoolVar(&cfg.Help, "help", false, "print usage and exit")
	fs.BoolVar(&cfg.Help, "h", false, "shorthand for -help")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.PayloadType = PayloadType(payloadType)
	if cfg.Help {
		return cfg, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.NProducerThreads == 0 {
		cfg.NProducerThreads = defaultThreads
	}
	if cfg.NContextThreads == 0 {
		cfg.NContextThreads = defaultThreads
	}
	return cfg, nil
}

// Validate checks cross-field rules that a plain flag default cannot
// express: most importantly, a server can never be configured to fabricate
// PayloadCommand items.
func (c *Config) Validate() error {
	switch c.PayloadType {
	case PayloadContainer, PayloadSleep:
		// fine for either role
	case PayloadCommand:
		if !c.Client {
			return &ConfigError{Field: "payload_type", Reason: "payload_type=command is not a valid server fabrication mode"}
		}
	default:
		return &ConfigError{Field: "payload_type", Reason: fmt.Sprintf("unknown payload type %q", c.PayloadType)}
	}

	if c.Port == 0 || c.Port > 65535 {
		return &ConfigError{Field: "port", Reason: fmt.Sprintf("%d is not a valid TCP port", c.Port)}
	}
	if !c.Client && c.MaxQueueSize == 0 {
		return &ConfigError{Field: "max_queue_size", Reason: "a server needs a positive queue capacity"}
	}
	return nil
}
