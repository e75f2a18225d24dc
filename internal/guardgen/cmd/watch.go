package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"guardgen/internal/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch [model]",
	Short: "Regenerate the guards whenever the model or config changes",
	Long: `Generate once, then watch the model and config files and regenerate the
output file after every change. Generation errors are logged and the watch
continues.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		if cfg.Output == "" || cfg.Output == "-" {
			return errors.New("watch needs an output file, use --output")
		}

		logger := logging.NewLogger()
		defer logger.Close()

		regenerate := func() error {
			// Reload so edits to the config file take effect.
			next, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			code, _, err := generate(cmd.Context(), next, logger)
			if len(code) > 0 {
				if werr := writeOutput(cmd.OutOrStdout(), next, code); werr != nil {
					return werr
				}
			}
			return err
		}

		w, err := newWatcher(logger, regenerate, cfg.Model, cfgPath)
		if err != nil {
			return err
		}
		return w.Run(cmd.Context())
	},
}

// watcher calls regenerate once and then after each burst of changes to
// its files.
type watcher struct {
	fs         *fsnotify.Watcher
	files      map[string]bool
	regenerate func() error
	logger     *logging.LoggerCloser
	debounce   time.Duration
}

func newWatcher(logger *logging.LoggerCloser, regenerate func() error, files ...string) (*watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &watcher{
		fs:         fs,
		files:      make(map[string]bool),
		regenerate: regenerate,
		logger:     logger,
		debounce:   200 * time.Millisecond,
	}

	// Directories are watched because editors replace files on save.
	dirs := make(map[string]bool)
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			fs.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fs.Add(dir); err != nil {
			fs.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run blocks until ctx is done. The underlying watcher is closed on return.
func (w *watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	w.run()

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("change", "file", event.Name, "op", event.Op.String())
			pending = time.Now()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "err", err)

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				pending = time.Time{}
				w.run()
			}
		}
	}
}

func (w *watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

func (w *watcher) run() {
	start := time.Now()
	if err := w.regenerate(); err != nil {
		w.logger.Error("regeneration failed", "err", err)
		return
	}
	w.logger.Info("regenerated", "took", time.Since(start).Round(time.Millisecond))
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
