// Package config provides centralized configuration for breakminder runtime
// values.
package config

import (
	"os"
	"strconv"
	"time"
)

// RuntimeConfig holds runtime configuration values.
type RuntimeConfig struct {
	// Daemon configuration
	Daemon DaemonConfig

	// Bus configuration
	Bus BusConfig

	// Counter serializer configuration
	Counter CounterConfig

	// Sound routing configuration
	Sound SoundConfig

	// Storage configuration
	Storage StorageConfig
}

// DaemonConfig holds daemon-related configuration.
type DaemonConfig struct {
	// StartupWait is the time to wait for the daemon to start before
	// checking status. Default: 500ms
	StartupWait time.Duration

	// KillTimeout is the timeout for graceful shutdown before force kill.
	// Default: 5s
	KillTimeout time.Duration
}

// BusConfig holds the UI-collaborator websocket bus configuration.
type BusConfig struct {
	// ListenAddr is the address the daemon serves the bus on.
	// Default: 127.0.0.1:7641
	ListenAddr string

	// WriteTimeout bounds a single outbound websocket write.
	// Default: 5s
	WriteTimeout time.Duration

	// SendBuffer is the per-client outbound message buffer. A slow client
	// that falls this far behind starts dropping messages (delivery is
	// best-effort by contract). Default: 32
	SendBuffer int
}

// CounterConfig holds counter serializer configuration.
type CounterConfig struct {
	// MaxAttempts is the per-operation retry cap against the store.
	// Default: 5
	MaxAttempts int

	// Backoff is the fixed delay before the queue is retried after a
	// transient store failure. Default: 500ms
	Backoff time.Duration
}

// SoundConfig holds auxiliary sound routing configuration.
type SoundConfig struct {
	// RetryDelay is the pause before the single redelivery attempt after
	// the audio surface has been re-ensured. Default: 300ms
	RetryDelay time.Duration
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// GCInterval is the cadence of Badger value-log garbage collection.
	// Default: 10m
	GCInterval time.Duration
}

// Default returns the default runtime configuration.
func Default() *RuntimeConfig {
	return &RuntimeConfig{
		Daemon: DaemonConfig{
			StartupWait: 500 * time.Millisecond,
			KillTimeout: 5 * time.Second,
		},
		Bus: BusConfig{
			ListenAddr:   "127.0.0.1:7641",
			WriteTimeout: 5 * time.Second,
			SendBuffer:   32,
		},
		Counter: CounterConfig{
			MaxAttempts: 5,
			Backoff:     500 * time.Millisecond,
		},
		Sound: SoundConfig{
			RetryDelay: 300 * time.Millisecond,
		},
		Storage: StorageConfig{
			GCInterval: 10 * time.Minute,
		},
	}
}

// Global is the shared runtime configuration, initialized from defaults and
// environment overrides at package load.
var Global = loadFromEnv(Default())

// loadFromEnv applies BREAKMINDER_* environment overrides.
func loadFromEnv(cfg *RuntimeConfig) *RuntimeConfig {
	cfg.Bus.ListenAddr = envString("BREAKMINDER_ADDR", cfg.Bus.ListenAddr)
	cfg.Daemon.StartupWait = envDuration("BREAKMINDER_STARTUP_WAIT", cfg.Daemon.StartupWait)
	cfg.Daemon.KillTimeout = envDuration("BREAKMINDER_KILL_TIMEOUT", cfg.Daemon.KillTimeout)
	cfg.Counter.MaxAttempts = envInt("BREAKMINDER_COUNTER_MAX_ATTEMPTS", cfg.Counter.MaxAttempts)
	cfg.Counter.Backoff = envDuration("BREAKMINDER_COUNTER_BACKOFF", cfg.Counter.Backoff)
	cfg.Sound.RetryDelay = envDuration("BREAKMINDER_SOUND_RETRY_DELAY", cfg.Sound.RetryDelay)
	cfg.Storage.GCInterval = envDuration("BREAKMINDER_GC_INTERVAL", cfg.Storage.GCInterval)
	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
