package cli

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/vdplayer/internal/app"
	"github.com/llehouerou/vdplayer/internal/config"
	"github.com/llehouerou/vdplayer/internal/engine"
	"github.com/llehouerou/vdplayer/internal/engine/beep"
	"github.com/llehouerou/vdplayer/internal/engine/mpv"
	"github.com/llehouerou/vdplayer/internal/errmsg"
	"github.com/llehouerou/vdplayer/internal/inhibit"
	"github.com/llehouerou/vdplayer/internal/logging"
	"github.com/llehouerou/vdplayer/internal/mpris"
	"github.com/llehouerou/vdplayer/internal/notify"
	"github.com/llehouerou/vdplayer/internal/relay"
	"github.com/llehouerou/vdplayer/internal/resolve"
	"github.com/llehouerou/vdplayer/internal/session"
	"github.com/llehouerou/vdplayer/internal/state"
	"github.com/llehouerou/vdplayer/internal/stderr"
)

// newEngine creates the engine for kind.
func newEngine(kind engine.Kind, locator string, poster relay.Poster, cfg *config.Config, log *logrus.Entry) (engine.Engine, error) {
	if kind == engine.KindBeep {
		return beep.New(locator, poster, log), nil
	}
	return mpv.New(locator, poster, mpv.Options{
		Fullscreen: cfg.Fullscreen,
		Extra:      cfg.MPV.Options,
		Log:        log,
	})
}

func run(ctx context.Context, cfg *config.Config, locator string) error {
	logger, closer, err := logging.Setup(logging.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		JSON:  cfg.Log.JSON,
	})
	if err != nil {
		return fatal(errmsg.OpInitialize, err)
	}
	defer closer.Close()
	log := logging.Component(logger, "main")
	log.WithFields(logrus.Fields{"locator": locator, "version": Version}).Info("starting")

	if err := stderr.Start(logging.Component(logger, "stderr")); err != nil {
		log.WithError(err).Warn("cannot capture stderr")
	} else {
		defer stderr.Stop()
	}

	resolved, err := newResolver(cfg, logging.Component(logger, "resolve")).Resolve(ctx, locator)
	if err != nil {
		log.WithError(err).Error("cannot resolve locator")
		return fatal(errmsg.OpResolve, err)
	}

	queue := relay.NewQueue()
	defer queue.Close()

	kind, err := engine.ParseKind(cfg.Engine)
	if err != nil {
		return fatal(errmsg.OpConfigLoad, err)
	}
	kind = engine.Choose(kind, resolved)
	eng, err := newEngine(kind, resolved, queue, cfg, logging.Component(logger, "engine"))
	if err != nil {
		log.WithError(err).WithField("engine", kind).Error("cannot create engine")
		return fatal(errmsg.OpEngineCreate, err)
	}
	defer eng.Close()
	log.WithField("engine", kind).Info("engine ready")

	ic := cfg.GetInhibitConfig()
	inh := newInhibitor(ic, logging.Component(logger, "inhibit"))
	if inh != nil {
		defer inh.Close()
	}
	lease := inhibit.NewManager(inh, queue, inhibit.Options{
		AppName: ic.AppName,
		Reason:  ic.Reason,
		Timeout: ic.Timeout,
		Async:   ic.Async,
	}, logging.Component(logger, "inhibit"))

	pc := cfg.GetPlaybackConfig()
	opts := session.Options{
		Locator:  sessionLocator(locator, resolved),
		Engine:   eng,
		Inhibit:  lease,
		SeekStep: pc.SeekStep,
		Log:      logging.Component(logger, "session"),
	}
	if pc.Resume {
		if store, err := state.Open(logging.Component(logger, "state")); err != nil {
			log.WithError(err).Warn("resume positions unavailable")
		} else {
			defer store.Close()
			opts.Store = store
		}
	}
	if cfg.Notifications {
		opts.Notifier = notify.New(ic.AppName, logging.Component(logger, "notify"))
	}
	sess := session.New(opts)

	if cfg.MPRIS {
		if adapter, err := mpris.New(sess, queue); err != nil {
			log.WithError(err).Warn("media keys unavailable")
		} else {
			defer adapter.Close()
		}
	}

	if err := sess.Play(); err != nil {
		return fatal(errmsg.OpPlaybackStart, err)
	}

	model := app.New(app.Options{
		Session:         sess,
		Queue:           queue,
		RefreshInterval: pc.RefreshInterval,
	})
	_, runErr := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()

	closeCtx, cancel := context.WithTimeout(context.Background(), ic.ShutdownTimeout)
	defer cancel()
	if err := sess.Close(closeCtx); err != nil {
		log.WithError(err).Warn("idle inhibition not released cleanly")
	}

	if runErr != nil {
		return fatal(errmsg.OpInitialize, runErr)
	}
	log.Info("bye")
	return nil
}

// newResolver hands hosted pages to the configured helper. With no helper
// configured every URL goes to the engine unchanged.
func newResolver(cfg *config.Config, log *logrus.Entry) *resolve.Resolver {
	opts := resolve.Options{Log: log}
	if cfg.HasResolver() {
		opts.Command = cfg.Resolver.Command
		opts.Fallback = cfg.Resolver.Fallback
		opts.Format = cfg.Resolver.Format
		opts.Timeout = cfg.Resolver.Timeout
		opts.Hosts = cfg.Resolver.Hosts
	} else {
		log.Debug("no url helper configured")
	}
	return resolve.New(opts)
}

// newInhibitor returns nil when inhibition is turned off or misconfigured.
func newInhibitor(ic config.InhibitConfig, log *logrus.Entry) inhibit.Inhibitor {
	if !ic.Enabled {
		log.Info("idle inhibition disabled")
		return nil
	}
	backend, err := inhibit.ParseBackend(ic.Backend)
	if err != nil {
		log.Warn(errmsg.Format(errmsg.OpInhibit, err))
		return nil
	}
	return inhibit.New(backend, log)
}

// sessionLocator is the name the session is remembered and shown under.
// A helper's direct URL changes on every run, so pages keep their own URL.
func sessionLocator(locator, resolved string) string {
	if strings.Contains(locator, "://") && !strings.HasPrefix(locator, "file://") {
		return locator
	}
	return resolved
}
