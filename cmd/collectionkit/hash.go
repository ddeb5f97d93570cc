package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/collectionkit/collection"
	"github.com/kbukum/collectionkit/config"
	"github.com/kbukum/collectionkit/errors"
	"github.com/kbukum/collectionkit/logger"
	"github.com/kbukum/collectionkit/observability"
)

type hashFlags struct {
	configFile *string
	limit      int
	priority   string
}

func newHashCmd(configFile *string) *cobra.Command {
	f := &hashFlags{configFile: configFile}
	cmd := &cobra.Command{
		Use:   "hash <file>...",
		Short: "Print the SHA-256 digest of each file, in argument order",
		Example: `  collectionkit hash go.mod go.sum
  collectionkit hash --limit 4 --priority background *.tar`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig(*f.configFile, cmd, f)
			if err != nil {
				return err
			}
			return runHash(cmd.Context(), cfg, args, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&f.limit, "limit", "l", 0, "maximum files hashed at once (0: all at once)")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "scheduling hint: background, low, medium, high, user_initiated")
	return cmd
}

// loadAppConfig reads the config file and environment, then applies the
// flags that were set explicitly on the command line.
func loadAppConfig(path string, cmd *cobra.Command, f *hashFlags) (*appConfig, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}

	cfg := &appConfig{}
	err := config.LoadConfig(serviceName, cfg,
		config.WithConfigFile(path),
		config.WithDefaults(map[string]any{
			"name":                      serviceName,
			"environment":               "production",
			"observability.sample_rate": 1.0,
		}),
	)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("limit") {
		cfg.Collection.Limit = f.limit
	}
	if cmd.Flags().Changed("priority") {
		cfg.Collection.Priority = f.priority
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runHash hashes paths concurrently and writes "digest  path" lines in the
// order the paths were given. Nothing is written if any file fails.
func runHash(ctx context.Context, cfg *appConfig, paths []string, out io.Writer) error {
	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging, cfg.Name).WithComponent("hash")

	shutdown, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		return fmt.Errorf("observability setup: %w", err)
	}
	defer func() {
		if serr := shutdown(context.WithoutCancel(ctx)); serr != nil {
			log.Warn("observability shutdown failed", logger.ErrorFields("shutdown", serr))
		}
	}()

	metrics, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
	if err != nil {
		return err
	}

	opts, err := cfg.Collection.Options()
	if err != nil {
		return err
	}
	opts = append(opts,
		collection.WithName("hash_files"),
		collection.WithLogger(log),
		collection.WithMetrics(metrics),
	)

	digests, err := collection.ConcurrentMap(ctx, paths, hashFile, opts...)
	if err != nil {
		if ctx.Err() != nil {
			return errors.Canceled(err)
		}
		return err
	}

	for i, d := range digests {
		if _, err := fmt.Fprintf(out, "%s  %s\n", d, paths[i]); err != nil {
			return err
		}
	}
	log.Info("hashed files", logger.Fields(logger.FieldTotal, len(paths)))
	return nil
}

func hashFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
