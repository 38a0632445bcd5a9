package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vbonduro/kondate/internal/config"
	"github.com/vbonduro/kondate/internal/db"
	"github.com/vbonduro/kondate/internal/logging"
	"github.com/vbonduro/kondate/internal/service"
	"github.com/vbonduro/kondate/internal/store"
	"github.com/vbonduro/kondate/internal/suggest"
	"github.com/vbonduro/kondate/internal/suggest/claude"
	"github.com/vbonduro/kondate/internal/suggest/ollama"
)

// cli holds what every subcommand needs once the root command has loaded
// the configuration.
type cli struct {
	dbPath   string
	logLevel string

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func()
}

func newRootCmd() *cobra.Command {
	c := &cli{closeLog: func() {}}

	root := &cobra.Command{
		Use:   "kondate",
		Short: "Track perishable food and get menu suggestions",
		Long: `kondate keeps an inventory of perishable food in a local SQLite database and
asks an AI service for a menu that uses the items closest to expiry. Once a
menu is accepted, the ingredients it names are removed from the inventory.

Configuration comes from defaults, the file named by KONDATE_CONFIG, then
environment variables (DB_PATH, SUGGEST_BACKEND, CLAUDE_API_KEY, ...).
Flags override all of them.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) { c.closeLog() },
	}

	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "path to the SQLite database (overrides DB_PATH)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	root.AddCommand(
		c.newServeCmd(),
		c.newAddCmd(),
		c.newListCmd(),
		c.newRemoveCmd(),
		c.newResetCmd(),
		c.newSuggestCmd(),
	)
	return root
}

func (c *cli) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.dbPath != "" {
		cfg.DBPath = c.dbPath
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	c.cfg = cfg
	c.logger = logger
	c.closeLog = cleanup
	return nil
}

// openService opens the database and builds the MenuService on top of it.
// The returned func closes the database.
func (c *cli) openService() (*service.MenuService, func(), error) {
	database, err := db.Open(c.cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	svc := service.NewMenuService(
		store.NewFoodStore(database),
		newGenerator(c.cfg, c.logger),
		suggest.LabelParser{Label: c.cfg.IngredientLabel},
		c.logger,
	)
	closeDB := func() {
		if err := database.Close(); err != nil {
			c.logger.Error("failed to close database", "error", err)
		}
	}
	return svc, closeDB, nil
}

// newGenerator picks the suggestion backend. It returns nil when Claude is
// selected without an API key, which makes the service use the placeholder
// menu.
func newGenerator(cfg *config.Config, logger *slog.Logger) suggest.Generator {
	switch cfg.SuggestBackend {
	case "ollama":
		logger.Info("using Ollama suggestion backend", "model", cfg.OllamaModel)
		return ollama.NewGenerator(cfg.OllamaHost, cfg.OllamaModel, cfg.SuggestTimeout)
	default:
		if cfg.ClaudeAPIKey == "" {
			logger.Warn("CLAUDE_API_KEY is not set, suggestions use a placeholder menu")
			return nil
		}
		logger.Info("using Claude suggestion backend", "model", cfg.ClaudeModel)
		return claude.NewGenerator(cfg.ClaudeAPIKey, cfg.ClaudeModel, cfg.SuggestTimeout)
	}
}

// confirm asks a yes/no question on out and reads the answer from in.
// Anything but y or yes, including EOF, is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	_, _ = fmt.Fprintf(out, "%s [y/N] ", question)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
