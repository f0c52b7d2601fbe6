package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/semtoken/internal/cli"
	"github.com/aretw0/semtoken/internal/config"
	"github.com/aretw0/semtoken/internal/logging"
	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rootCmd = &cobra.Command{
	Use:   "semtoken",
	Short: "semtoken describes tokens as RDF/Turtle documents",
	Long: `semtoken turns a token's metadata (name, ticker, properties, SHACL shapes and
owl:sameAs links) into a Turtle document, keeps drafts and publishes the result
to IPFS, a NATS object store or a local command.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to semtoken.yaml")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("store", "", "Draft store: memory, file, redis, loam")
	rootCmd.PersistentFlags().String("store-dir", "", "Directory of the file or loam store")
	rootCmd.PersistentFlags().String("publisher", "", "Publisher: none, memory, ipfs, nats, process")
}

// loadConfig reads the config file and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	overrides := map[string]*string{
		"log-level": &cfg.LogLevel,
		"store":     &cfg.Store.Driver,
		"store-dir": &cfg.Store.Dir,
		"publisher": &cfg.Publisher.Driver,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.NewWithWriter(os.Stderr, logging.ParseLevel(cfg.LogLevel), cfg.LogFormat == "json")
}

// openRuntime builds the Studio for a command. Callers must Close the runtime.
func openRuntime(cmd *cobra.Command) (*cli.Runtime, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg)
	rt, err := cli.NewRuntime(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing semtoken: %w", err)
	}
	return rt, logger, nil
}

// readDescriptor loads a descriptor from a JSON or YAML file, or from stdin when
// path is empty or "-".
func readDescriptor(path string, stdin io.Reader) (domain.TokenDescriptor, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.TokenDescriptor{}, fmt.Errorf("failed to read descriptor: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.TokenDescriptor{}, fmt.Errorf("%w: %w", domain.ErrInvalidDraft, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
		return domain.DecodeDraftMap(raw)
	default:
		return domain.DecodeDraft(data)
	}
}
