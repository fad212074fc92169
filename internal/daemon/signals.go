package daemon

import (
	"os"
	"os/signal"
	"syscall"
)

// SignalHandler handles OS signals for graceful shutdown.
type SignalHandler struct {
	signals chan os.Signal
}

// NewSignalHandler creates a new signal handler.
func NewSignalHandler() *SignalHandler {
	return &SignalHandler{
		signals: make(chan os.Signal, 1),
	}
}

// Setup registers signal handlers.
func (h *SignalHandler) Setup() {
	signal.Notify(h.signals,
		syscall.SIGINT,  // Ctrl+C
		syscall.SIGTERM, // Termination request
		syscall.SIGHUP,  // Terminal hangup
	)
}

// Signals returns the channel shutdown signals arrive on.
func (h *SignalHandler) Signals() <-chan os.Signal {
	return h.signals
}

// Cleanup unregisters the signal handlers.
func (h *SignalHandler) Cleanup() {
	signal.Stop(h.signals)
}
