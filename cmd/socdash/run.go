package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"socdash/config"
	"socdash/internal/feed"
	"socdash/internal/hunt"
	inputredis "socdash/internal/input/redis"
	"socdash/internal/instrument"
	"socdash/internal/logger"
	"socdash/internal/pipeline"
	"socdash/internal/store"
	"socdash/internal/views"
	"socdash/pkg/models"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start a dashboard session",
		Long: `Start a dashboard session: the state store is fed from the Redis refresh feed,
finished hunts are recorded to the configured output, and metrics are served over HTTP.

Each line read from stdin is a command:
  <query>            start a hunt (rejected while one is running)
  clear              discard the current hunt
  status             print the current hunt
  section <name>     switch the dashboard section
  summary            print the current KPI summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if path != "" {
				logger.Infof("Config loaded from: %s", path)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s, err := newSession(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer s.close()

			return s.run(ctx, cmd.InOrStdin())
		},
	}
}

type session struct {
	cfg       *config.Config
	out       io.Writer
	outMu     sync.Mutex
	collector *instrument.Collector
	store     *store.Store
	runner    *hunt.Runner
	recorder  *pipeline.Recorder
	consumer  *inputredis.Consumer
	metrics   *http.Server

	lastOverall views.Rating
}

func newSession(cfg *config.Config, out io.Writer) (*session, error) {
	s := &session{cfg: cfg, out: out, collector: instrument.NewCollector()}

	s.store = store.New(store.WithObserver(s.collector))
	s.store.Subscribe(s.onSnapshot)

	backend, err := newHuntBackend(cfg.Socdash.Hunt)
	if err != nil {
		return nil, err
	}
	s.runner = hunt.NewRunner(backend, hunt.WithObserver(s.collector))
	s.runner.Subscribe(s.onHunt)

	writer, err := newHuntWriter(cfg.Socdash.Output)
	if err != nil {
		s.close()
		return nil, err
	}
	if writer != nil {
		s.recorder = pipeline.NewRecorder(writer, 0, 0)
		s.runner.Subscribe(s.recorder.Observe)
		logger.Infof("Hunt output mode: %s", cfg.Socdash.Output.Mode)
	}

	if cfg.Socdash.Feed.Enabled {
		rc := cfg.Socdash.Feed.Redis
		s.consumer, err = inputredis.NewConsumer(inputredis.Config{
			Addr:         rc.Addr,
			Password:     rc.Password,
			DB:           rc.DB,
			Key:          rc.Key,
			BlockTimeout: rc.BlockTimeout,
		})
		if err != nil {
			s.close()
			return nil, fmt.Errorf("failed to create feed consumer: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = s.consumer.Ping(pingCtx)
		cancel()
		if err != nil {
			s.close()
			return nil, fmt.Errorf("feed redis unavailable at %s: %w", rc.Addr, err)
		}
	}

	if cfg.Socdash.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", s.collector.Handler())
		s.metrics = &http.Server{Addr: cfg.Socdash.Metrics.Listen, Handler: mux}
	}
	return s, nil
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	logger.Infof("socdash session starting")

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if s.recorder != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.recorder.Run(runCtx); err != nil {
				logger.Errorf("Hunt recorder stopped: %v", err)
			}
		}()
	}
	if s.consumer != nil {
		loader := feed.NewLoader(s.consumer, s.store)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := loader.Run(runCtx); err != nil {
				logger.Errorf("Feed loader stopped: %v", err)
			}
		}()
		logger.Infof("Feed reading redis list %s", s.consumer.Key())
	}
	if s.metrics != nil {
		go func() {
			if err := s.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("Metrics server failed: %v", err)
			}
		}()
		logger.Infof("Metrics listening on %s", s.metrics.Addr)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-runCtx.Done():
				return
			}
		}
	}()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			s.handle(line)
		}
	}

	// Let an in-flight hunt land in the recorder before it drains.
	if s.runner.IsRunning() && ctx.Err() == nil {
		s.runner.Wait()
	}
	if s.metrics != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.metrics.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Failed to shut down metrics server: %v", err)
		}
		cancel()
	}
	s.runner.Close()
	cancel()
	wg.Wait()
	logger.Infof("socdash session stopped")
	return nil
}

func (s *session) handle(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case "clear":
		s.runner.ClearResults()
	case "status":
		s.print(s.runner.Current())
	case "summary":
		s.print(views.Build(s.store.State()).KPIs)
	case "section":
		s.store.Dispatch(store.SetSection{Section: store.Section(strings.TrimSpace(rest))})
	default:
		if task, ok := s.runner.Start(line); !ok {
			s.printf("hunt %s is still running; query ignored\n", task.ID)
		}
	}
}

func (s *session) onSnapshot(st store.State) {
	summary := views.KPISummary(st.Metrics, views.Calculate(st))
	logger.Debugf("KPI summary: overall=%s counts=%v", summary.Overall, summary.Counts)
	if summary.Overall != s.lastOverall {
		logger.Infof("KPI overall rating: %s -> %s", s.lastOverall, summary.Overall)
		s.lastOverall = summary.Overall
	}
}

func (s *session) onHunt(task *models.HuntTask) {
	if task == nil || !task.Status.Terminal() {
		return
	}
	s.print(task)
}

func (s *session) print(v interface{}) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Warnf("Failed to print: %v", err)
	}
}

func (s *session) printf(format string, args ...interface{}) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *session) close() {
	if s.runner != nil {
		s.runner.Close()
	}
	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil {
			logger.Errorf("Failed to close hunt writer: %v", err)
		}
	}
	if s.consumer != nil {
		if err := s.consumer.Close(); err != nil {
			logger.Errorf("Failed to close feed consumer: %v", err)
		}
	}
}
