package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rook-computer/inkpoint/internal/app"
	"github.com/rook-computer/inkpoint/internal/config"
	"github.com/rook-computer/inkpoint/internal/system"
)

func newSnapshotCmd(flags *rootFlags) *cobra.Command {
	var (
		out     string
		battery int
	)
	cmd := &cobra.Command{
		Use:       "snapshot <screen>",
		Short:     "Render one screen off-device and write it as PNG",
		Args:      cobra.ExactArgs(1),
		ValidArgs: app.ScreenNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags, config.DeviceListenAddr)
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg, flags, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			a, err := app.New(cfg, app.Options{
				Battery: system.FixedBattery(battery),
				Logger:  logger,
				NoWeb:   true,
			})
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			frame, err := a.Snapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = args[0] + ".png"
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := png.Encode(f, frame); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <screen>.png)")
	cmd.Flags().IntVar(&battery, "battery", 80, "battery charge shown in the header")
	return cmd
}
