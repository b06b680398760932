package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/keywarp/internal/app"
	"github.com/dshills/keywarp/internal/config"
	"github.com/dshills/keywarp/internal/engine/history"
	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/input/mode"
	"github.com/dshills/keywarp/internal/preview"
)

func newPreviewCmd(stdout io.Writer) *cobra.Command {
	var (
		modeName string
		width    int
		height   int
		outDir   string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render mode layouts to PNG files",
		Long: `Render the initial layout of hint, hint2, grid, screen and history
mode, as the config file styles them, to <mode>.png files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := app.LoadOptions(cmd.Flags())
			if err != nil {
				return err
			}
			modes, err := previewModes(modeName)
			if err != nil {
				return err
			}
			if width <= 0 || height <= 0 {
				return fmt.Errorf("%w: size %dx%d", errUsage, width, height)
			}

			log := quietLogger(opts, cmd.ErrOrStderr())
			reg, err := config.New(key.USKeymap(), log)
			if err != nil {
				return err
			}
			if err := reg.LoadFile(opts.ConfigPath); err != nil {
				return err
			}
			entries, err := history.NewFile(opts.HistoryPath).Entries()
			if err != nil {
				log.Warn().Err(err).Msg("history unavailable")
				entries = nil
			}

			pngs, err := preview.RenderPNGs(cmd.Context(), reg, width, height, modes, entries)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for i, m := range modes {
				path := filepath.Join(outDir, m.String()+".png")
				if err := os.WriteFile(path, pngs[i], 0o644); err != nil {
					return err
				}
				fmt.Fprintln(stdout, path)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&modeName, "mode", "all", "mode to render: hint, hint2, grid, screen, history or all")
	fs.IntVar(&width, "width", 1920, "image width in pixels")
	fs.IntVar(&height, "height", 1080, "image height in pixels")
	fs.StringVarP(&outDir, "output", "o", ".", "output directory")
	return cmd
}

// previewModes resolves the --mode argument.
func previewModes(name string) ([]mode.Mode, error) {
	if name == "all" {
		return preview.Modes, nil
	}
	m, err := mode.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	for _, pm := range preview.Modes {
		if pm == m {
			return []mode.Mode{m}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s has no layout to preview", errUsage, name)
}
