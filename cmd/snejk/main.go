package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"math"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"snejk/internal/cli"
	"snejk/internal/game"
	"snejk/internal/logging"
	"snejk/internal/meshio"
)

func init() {
	// glfw and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath  string
		headless    bool
		ticks       int
		dt          float64
		seed        uint64
		objPath     string
		metricsAddr string
		logLevel    string
	)
	flag.StringVar(&configPath, "config", "", "YAML config file (default $"+game.ConfigEnv+")")
	flag.BoolVar(&headless, "headless", false, "run without a window, steered by noise")
	flag.IntVar(&ticks, "ticks", 600, "ticks to simulate in headless mode")
	flag.Float64Var(&dt, "dt", 1.0/60, "seconds per headless tick")
	flag.Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "seed for headless steering")
	flag.StringVar(&objPath, "obj", "", "write the final mesh as Wavefront OBJ (headless)")
	flag.StringVar(&metricsAddr, "metrics", "", "serve Prometheus metrics on this address")
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flag.Parse()

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		slog.Error("invalid -log-level", "error", err)
		os.Exit(2)
	}
	logging.Setup(os.Stderr, level)

	if !(dt > 0) || math.IsInf(dt, 0) {
		slog.Error("invalid -dt, want a positive number of seconds", "dt", dt)
		os.Exit(2)
	}

	cfg, err := game.LoadConfig(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sigCtx, cancel := cli.NewSignalContext()
	defer cancel()
	ctx, stop := context.WithCancel(sigCtx)
	defer stop()

	reg := prometheus.NewRegistry()
	metrics := game.NewMetrics(reg)
	bus := game.NewEventBus()
	bus.SubscribeAll(func(e game.Event) {
		slog.Debug("body event", "type", e.Type, "id", e.EntityID, "samples", e.Data)
	})

	g, gctx := errgroup.WithContext(ctx)
	if metricsAddr != "" {
		g.Go(func() error { return serveMetrics(gctx, metricsAddr, reg) })
	}

	if headless {
		err = runHeadless(gctx, cfg, bus, metrics, ticks, dt, seed, objPath)
	} else {
		err = runViewer(gctx, cfg, bus, metrics)
	}
	stop()
	if err != nil {
		slog.Error("run failed", "error", err)
	}
	if werr := g.Wait(); werr != nil {
		slog.Error("metrics server failed", "error", werr)
		err = errors.Join(err, werr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func runHeadless(ctx context.Context, cfg game.Config, bus *game.EventBus, metrics *game.Metrics, ticks int, dt float64, seed uint64, objPath string) (err error) {
	opts := []game.SessionOption{game.WithEventBus(bus), game.WithMetrics(metrics)}
	var sink *meshio.OBJSink
	if objPath != "" {
		sink = meshio.NewOBJSink(objPath)
		opts = append(opts, game.WithSink(sink))
	}
	s, err := game.NewSession(cfg, opts...)
	if err != nil {
		return err
	}
	s.Spawn()

	steer := game.NewWanderSteering(seed)
	var mesh *game.MeshBuffers
	for i := 0; i < ticks; i++ {
		if ctx.Err() != nil {
			break
		}
		mesh, err = s.Tick(steer.Steer(float64(i)*dt), dt)
		if err != nil {
			return err
		}
	}
	if mesh != nil {
		head := s.Recorder().Head()
		slog.Info("headless run finished",
			"ticks", ticks,
			"samples", s.Recorder().Len(),
			"vertices", mesh.VertexCount(),
			"triangles", mesh.TriangleCount(),
			"head", head.Position,
			"heading", head.Heading(),
		)
	}
	if sink != nil {
		if err := sink.Close(); err != nil {
			return err
		}
		slog.Info("wrote mesh", "path", objPath)
	}
	return nil
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("serving metrics", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
