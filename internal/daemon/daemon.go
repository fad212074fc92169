// Package daemon wires the scheduling core together and manages the
// background process lifecycle.
package daemon

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/breakminder/breakminder/internal/alarm"
	"github.com/breakminder/breakminder/internal/bus"
	"github.com/breakminder/breakminder/internal/config"
	"github.com/breakminder/breakminder/internal/counter"
	"github.com/breakminder/breakminder/internal/logging"
	"github.com/breakminder/breakminder/internal/notify"
	"github.com/breakminder/breakminder/internal/sched"
	"github.com/breakminder/breakminder/internal/storage"
)

// Daemon is the running breakminder process.
type Daemon struct {
	cfg *config.RuntimeConfig
	db  *storage.DB

	settingsRepo *storage.SettingsRepo
	snapshotRepo *storage.SnapshotRepo
	counterRepo  *storage.CounterRepo
	onetimeRepo  *storage.OneTimeRepo
	supportRepo  *storage.SoundSupportRepo

	alarms     *alarm.Timers
	hub        *bus.Hub
	sink       notify.Sink
	reconciler *sched.Reconciler
	oneshot    *sched.OneShot
	serializer *counter.Serializer

	cron    *cron.Cron
	httpSrv *http.Server
	pidFile *PIDFile

	startedAt time.Time
}

// New builds a daemon on top of an open database.
func New(cfg *config.RuntimeConfig, db *storage.DB) *Daemon {
	d := &Daemon{
		cfg:          cfg,
		db:           db,
		settingsRepo: storage.NewSettingsRepo(db),
		snapshotRepo: storage.NewSnapshotRepo(db),
		counterRepo:  storage.NewCounterRepo(db),
		onetimeRepo:  storage.NewOneTimeRepo(db),
		supportRepo:  storage.NewSoundSupportRepo(db),
		pidFile:      NewPIDFile(),
	}

	d.alarms = alarm.NewTimers(nil)
	d.hub = bus.NewHub(d, cfg.Bus.WriteTimeout, cfg.Bus.SendBuffer)

	d.sink = notify.NewBusSink(d.hub)
	sound := notify.NewSoundRouter(d.hub, d.supportRepo, cfg.Sound.RetryDelay)
	firing := sched.NewFiringHandler(d.settingsRepo, d.onetimeRepo, d.alarms, d.sink, sound, d.hub)
	d.alarms.SetHandler(firing.HandleFire)

	d.reconciler = sched.NewReconciler(d.alarms, d.snapshotRepo)
	d.oneshot = sched.NewOneShot(d.alarms, d.onetimeRepo)
	d.serializer = counter.New(d.counterRepo, d.hub,
		counter.WithRetry(cfg.Counter.MaxAttempts, cfg.Counter.Backoff))

	d.cron = cron.New()
	d.httpSrv = &http.Server{
		Addr:    cfg.Bus.ListenAddr,
		Handler: d.routes(),
	}

	return d
}

// routes builds the daemon's HTTP surface: the websocket bus plus a health
// probe.
func (d *Daemon) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", d.hub)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Run runs the daemon in the foreground until ctx is cancelled or a
// shutdown signal arrives.
func (d *Daemon) Run(ctx context.Context) error {
	if d.pidFile.IsRunning() {
		return ErrAlreadyRunning
	}
	if err := d.pidFile.Write(); err != nil {
		return err
	}
	defer d.pidFile.Remove()

	d.startedAt = time.Now()

	d.serializer.Start()
	defer d.serializer.Stop()

	// Timers did not survive the previous process; rebuild them from the
	// store. The reconciler re-creates recurring timers (nothing is armed,
	// so each enabled kind takes the create path), and the one-shot
	// controller re-arms the persisted countdown with its remaining time.
	if err := d.rebuildTimers(); err != nil {
		logging.Warn("timer rebuild incomplete", logging.KeyError, err)
	}
	defer d.alarms.Stop()

	if err := d.startMaintenance(); err != nil {
		return err
	}
	defer d.cron.Stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info("bus listening", "addr", d.cfg.Bus.ListenAddr)
		if err := d.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	signals := NewSignalHandler()
	signals.Setup()
	defer signals.Cleanup()

	logging.Info("daemon started", "pid_file", d.pidFile.Path())

	select {
	case err := <-errCh:
		return err
	case sig := <-signals.Signals():
		logging.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
		logging.Info("shutting down", "reason", "context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), d.cfg.Daemon.KillTimeout)
	defer cancel()
	d.hub.Close()
	return d.httpSrv.Shutdown(shutdownCtx)
}

// rebuildTimers restores scheduling state after a process start.
func (d *Daemon) rebuildTimers() error {
	settings, err := d.settingsRepo.Get()
	if err != nil {
		return err
	}
	if err := d.reconciler.Reconcile(settings.Reminders); err != nil {
		return err
	}
	return d.oneshot.Resume()
}

// startMaintenance schedules periodic storage upkeep.
func (d *Daemon) startMaintenance() error {
	spec := "@every " + d.cfg.Storage.GCInterval.String()
	_, err := d.cron.AddFunc(spec, func() {
		// One GC round per tick; Badger asks callers to repeat until
		// nothing is rewritten, which the next tick covers.
		rewritten, err := d.db.RunValueLogGC(0.5)
		if err != nil {
			logging.Warn("value log GC failed", logging.KeyError, err)
			return
		}
		if rewritten {
			logging.DebugLog("value log GC rewrote a file")
		}
	})
	if err != nil {
		return err
	}
	d.cron.Start()
	return nil
}
