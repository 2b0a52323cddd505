package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/locomotion/internal/logger"
	"github.com/oomph-ac/locomotion/scenario"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/worker"
	"go.uber.org/zap"
)

var (
	configPath    = flag.String("config", "", "settings file, defaults are used when empty")
	levelPath     = flag.String("level", "", "level file used by scenarios that do not name one")
	writeConfig   = flag.String("write-config", "", "write the default settings to this path and exit")
	watch         = flag.Bool("watch", false, "re-run the scenarios whenever the settings file changes")
	statsviewAddr = flag.String("statsview", "", "serve runtime statistics on this address")
	sentryDSN     = flag.String("sentry", "", "sentry DSN for reporting panics")
	workers       = flag.Int("workers", 0, "number of scenarios run in parallel, one per CPU when zero")
)

// The following program runs scripted locomotion scenarios and prints a report for each. Scenario
// files are given as arguments; the built in tour of the reference level runs when there are none.
func main() {
	flag.Parse()

	if *writeConfig != "" {
		if err := settings.DefaultSettings().SaveTo(*writeConfig); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	s, err := settings.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(s.Logging, true)
	defer log.Sync()

	if dsn := firstNonEmpty(*sentryDSN, s.Debug.SentryDSN); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Environment: s.Debug.Environment}); err != nil {
			log.Warn("unable to initialize sentry", zap.Error(err))
		}
		defer sentry.Flush(time.Second * 5)
	}

	if addr := firstNonEmpty(*statsviewAddr, s.Debug.StatsviewAddr); addr != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(addr))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Info("serving runtime statistics", zap.String("addr", addr))
	}

	scenarios, err := loadScenarios(flag.Args())
	if err != nil {
		log.Fatal("unable to load scenarios", zap.Error(err))
	}

	pool := worker.NewPool(*workers, log)
	defer pool.Close()

	runAll(pool, scenarios, s, log)
	if !*watch {
		return
	}
	if *configPath == "" {
		log.Fatal("-watch needs a settings file")
	}

	w, err := settings.NewWatcher(*configPath)
	if err != nil {
		log.Fatal("unable to watch settings", zap.Error(err))
	}
	defer w.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	log.Info("watching settings", zap.String("path", *configPath))
	for {
		select {
		case updated, ok := <-w.Updates:
			if !ok {
				return
			}
			log.Info("settings reloaded, running scenarios again")
			runAll(pool, scenarios, updated, log)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("settings reload failed, keeping previous settings", zap.Error(err))
		case <-interrupt:
			return
		}
	}
}

func loadScenarios(paths []string) ([]scenario.Scenario, error) {
	if len(paths) == 0 {
		scenarios := scenario.Demo()
		for i := range scenarios {
			scenarios[i].Level = *levelPath
		}
		return scenarios, nil
	}

	scenarios := make([]scenario.Scenario, 0, len(paths))
	for _, path := range paths {
		sc, err := scenario.Load(path)
		if err != nil {
			return nil, err
		}
		if sc.Level == "" && sc.InlineLevel == nil {
			sc.Level = *levelPath
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// runAll runs every scenario on the pool and waits for them to finish.
func runAll(pool *worker.Pool, scenarios []scenario.Scenario, s settings.Settings, log *zap.Logger) {
	var wg sync.WaitGroup
	for _, sc := range scenarios {
		wg.Add(1)
		err := pool.Submit(sc.Name, func() {
			defer wg.Done()
			report, err := scenario.Run(sc, s, log)
			if err != nil {
				log.Error("scenario failed", zap.String("scenario", sc.Name), zap.Error(err))
				return
			}
			fmt.Println(report)
		})
		if err != nil {
			wg.Done()
			log.Error("unable to submit scenario", zap.String("scenario", sc.Name), zap.Error(err))
		}
	}
	wg.Wait()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
