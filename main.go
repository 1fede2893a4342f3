package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rook-computer/inkpoint/internal/app"
	"github.com/rook-computer/inkpoint/internal/config"
	"github.com/rook-computer/inkpoint/internal/input"
	"github.com/rook-computer/inkpoint/internal/logging"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/system"
)

const envStdioLog = "INKPOINT_STDIO_LOG"

const debugLogPath = "./inkpoint-debug.log"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "inkpoint:", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	debug     bool
	stdioLog  string
	dataDir   string
	listen    string
	logLevel  string
	humanLogs bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "inkpoint",
		Short:         "inkpoint drives the e-ink reader UI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevice(cmd, flags, false)
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging to "+debugLogPath+"; also configurable via "+config.EnvDebug)
	cmd.PersistentFlags().StringVar(&flags.stdioLog, "stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	cmd.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "directory for settings, recents and books; also configurable via "+config.EnvDataDir)
	cmd.PersistentFlags().StringVar(&flags.listen, "listen", "", "http listen address; also configurable via "+config.EnvListenAddr)
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "trace | debug | info | warn | error; also configurable via "+config.EnvLogLevel)
	cmd.PersistentFlags().BoolVar(&flags.humanLogs, "human-logs", false, "write console-formatted logs instead of JSON")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newSnapshotCmd(flags))

	return cmd
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	var sudo bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run on the device: framebuffer panel, evdev buttons and the web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevice(cmd, flags, sudo)
		},
	}
	cmd.Flags().BoolVar(&sudo, "sudo", false, "run system commands (power off) through sudo")
	return cmd
}

// resolveConfig layers flags over the environment over defaults.
func resolveConfig(cmd *cobra.Command, flags *rootFlags, listenDefault string) (config.Config, error) {
	cfg, err := config.FromEnv(listenDefault)
	if err != nil {
		return config.Config{}, err
	}
	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	if flags.listen != "" {
		cfg.ListenAddr = flags.listen
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = flags.debug
	}
	return cfg.Resolve()
}

// newLogger writes to w, or to the debug log file when debugging is on.
func newLogger(cfg config.Config, flags *rootFlags, w io.Writer) (logging.Logger, func(), error) {
	closeFn := func() {}
	if cfg.Debug {
		f, err := os.OpenFile(debugLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "debug log open error:", err)
		} else {
			w = f
			closeFn = func() { _ = f.Close() }
		}
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, HumanReadable: flags.humanLogs, Writer: w})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return logger, closeFn, nil
}

func runDevice(cmd *cobra.Command, flags *rootFlags, sudo bool) error {
	// Crashes must stay diagnosable while the console is in graphics mode.
	logPath := flags.stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if err := redirectStdIO(logPath); err != nil {
		fmt.Fprintln(os.Stderr, "stdio log redirect error:", err)
	}

	cfg, err := resolveConfig(cmd, flags, config.DeviceListenAddr)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, flags, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Infof("main", "starting: display=%s input=%s data=%s listen=%s", cfg.DisplayDevice, cfg.InputGlob, cfg.DataDir, cfg.ListenAddr)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	panel, err := render.OpenFramebufferPanel(cfg.DisplayDevice, logger)
	if err != nil {
		return fmt.Errorf("open display: %w", err)
	}
	keys, err := input.OpenEvdev(ctx, cfg.InputGlob, logger)
	if err != nil {
		_ = panel.Close()
		return fmt.Errorf("open input: %w", err)
	}

	a, err := app.New(cfg, app.Options{
		Panel:           panel,
		Keys:            keys,
		Battery:         system.NewSysfsBattery(),
		Runner:          system.ShellRunner{Sudo: sudo},
		Logger:          logger,
		ConsoleGraphics: true,
	})
	if err != nil {
		_ = panel.Close()
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Errorf("main", "close: %v", err)
		}
	}()

	err = a.Start(ctx)
	stop()
	keys.Wait()
	logger.Infof("main", "stopped at %s", time.Now().Format(time.RFC3339))
	return err
}
