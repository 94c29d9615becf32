// Command gdelt decodes, enriches and stores GDELT 2.0 update files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/codebook"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/config"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/logging"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/reader"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/record"
)

// app holds the state shared by every command of one invocation.
type app struct {
	// Global flags
	configPath string
	verbose    bool
	dbPath     string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := &app{}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		if a.logger != nil {
			a.logger.Error("command failed", zap.Error(err))
			_ = a.logger.Sync()
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "gdelt",
		Short: "Decode and enrich GDELT 2.0 events, mentions and GKG files",
		Long: `gdelt reads GDELT 2.0 update files (events export, mentions and Global
Knowledge Graph), decodes every column into typed records, joins GKG GCAM
measurements against the GCAM codebook, and stores the results in SQLite.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "path to gdelt.yaml")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (overrides config)")

	root.AddCommand(
		newDecodeCmd(a),
		newIngestCmd(a),
		newCodebookCmd(a),
		newFetchCmd(a),
		newServeCmd(a),
		newSchemaCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		logger, err := logging.New(cfg.Logging.Level, a.verbose)
		if err != nil {
			return err
		}
		a.logger = logger
	}
	return nil
}

// loadCodebook returns the configured codebook, or the embedded one.
func (a *app) loadCodebook() (*codebook.Codebook, error) {
	if a.cfg.Codebook == "" {
		return codebook.Default()
	}
	f, err := os.Open(a.cfg.Codebook)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", codebook.ErrLoadFailure, err)
	}
	defer f.Close()
	cb, err := codebook.Load(f)
	if err != nil {
		return nil, fmt.Errorf("codebook %s: %w", a.cfg.Codebook, err)
	}
	a.logger.Debug("codebook loaded", zap.String("path", a.cfg.Codebook), zap.Int("variables", cb.Count()))
	return cb, nil
}

// readFile reads every row of a plain or zipped GDELT file. kind overrides
// the kind detected from the file name.
func readFile(path string, kind string) (record.Kind, [][]string, error) {
	rc, name, err := reader.OpenArchive(path)
	if err != nil {
		return record.KindUnknown, nil, err
	}
	defer rc.Close()

	k := reader.DetectKind(name)
	if kind != "" {
		if k, err = record.ParseKind(kind); err != nil {
			return record.KindUnknown, nil, err
		}
	}
	if k == record.KindUnknown {
		return k, nil, fmt.Errorf("%s: cannot tell the record kind from the name, use --kind", path)
	}
	rows, err := reader.NewReader(rc).ReadAll()
	if err != nil {
		return k, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return k, rows, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
