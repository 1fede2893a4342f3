package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rook-computer/inkpoint/internal/app"
	"github.com/rook-computer/inkpoint/internal/config"
	"github.com/rook-computer/inkpoint/internal/logging"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/system"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "inkpoint-sim:", err)
		os.Exit(2)
	}
}

type simFlags struct {
	listen    string
	dev       bool
	staticDir string
	scenario  string
	dataDir   string
	battery   int
	logLevel  string
}

func newRootCmd() *cobra.Command {
	flags := &simFlags{}

	cmd := &cobra.Command{
		Use:           "inkpoint-sim",
		Short:         "Run the reader UI against an in-memory panel, driven from the browser",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulator(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.listen, "listen", "", "http listen address; also configurable via "+config.EnvListenAddr)
	cmd.Flags().BoolVar(&flags.dev, "dev", false, "enable dev mode; also configurable via "+config.EnvDevMode)
	cmd.Flags().StringVar(&flags.staticDir, "static-dir", "", "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	cmd.Flags().StringVar(&flags.scenario, "scenario", scenarioLibrary, "startup scenario: "+strings.Join(scenarioNames, " | "))
	cmd.Flags().StringVar(&flags.dataDir, "data-dir", filepath.Join(os.TempDir(), "inkpoint-sim"), "simulated data directory")
	cmd.Flags().IntVar(&flags.battery, "battery", 76, "initial simulated battery charge")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "trace | debug | info | warn | error")

	return cmd
}

func runSimulator(cmd *cobra.Command, flags *simFlags) error {
	cfg, err := config.FromEnv(config.SimulatorListenAddr)
	if err != nil {
		return fmt.Errorf("server config error: %w", err)
	}
	if flags.listen != "" {
		cfg.ListenAddr = flags.listen
	}
	if cmd.Flags().Changed("dev") {
		cfg.DevMode = flags.dev
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	cfg.DataDir = filepath.Clean(flags.dataDir)
	cfg, err = cfg.Resolve()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, HumanReadable: true, Writer: os.Stderr})
	if err != nil {
		return err
	}

	processCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	battery := &SimBattery{}
	battery.Set(flags.battery)
	panel := &render.MemoryPanel{Keep: 32}

	var control *SimControl
	a, err := app.New(cfg, app.Options{
		Panel:     panel,
		Battery:   battery,
		Runner:    system.NoopRunner{Logger: logger},
		Logger:    logger,
		StaticDir: flags.staticDir,
		WebRoutes: func(mux *http.ServeMux) { registerSimEndpoints(mux, control) },
	})
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	control = NewSimControl(processCtx, a, panel, battery, flags.scenario)
	if err := control.ApplyScenario(control.startupScenario); err != nil {
		return fmt.Errorf("scenario init error: %w", err)
	}

	fmt.Println("inkpoint simulator listening on", cfg.ListenAddr)
	fmt.Println("Scenario:", control.startupScenario)
	fmt.Println("Data dir:", cfg.DataDir)
	fmt.Println("UI: http://" + displayAddr(cfg.ListenAddr) + "/")

	return a.Start(processCtx)
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "127.0.0.1" + addr
	}
	return addr
}
