package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/vbonduro/kondate/internal/session"
	"github.com/vbonduro/kondate/internal/web"
	"github.com/vbonduro/kondate/internal/web/templates"
)

const (
	sessionTTL        = 12 * time.Hour
	lockTimeout       = 2 * time.Second
	lockRetryInterval = 100 * time.Millisecond
)

func (c *cli) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface",
		Long:  "Serve the inventory and menu pages on LISTEN_ADDR. Only one server may use a database file at a time.",
		Args:  cobra.NoArgs,
		RunE:  c.runServe,
	}
}

func (c *cli) runServe(cmd *cobra.Command, _ []string) error {
	lock, err := lockDatabase(cmd.Context(), c.cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			c.logger.Error("failed to release database lock", "error", err)
		}
	}()

	svc, closeDB, err := c.openService()
	if err != nil {
		return err
	}
	defer closeDB()

	server := web.NewServer(svc, templates.FS, session.NewStore(sessionTTL), c.logger)
	server.SetSuggestTimeout(c.cfg.SuggestTimeout)
	if err := server.ListenAndServe(c.cfg.ListenAddr); err != nil {
		c.logger.Error("server error", "error", err)
		return err
	}
	return nil
}

// lockDatabase takes an exclusive lock on <dbPath>.lock so two servers never
// share an inventory file.
func lockDatabase(ctx context.Context, dbPath string) (*flock.Flock, error) {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil && ctx.Err() == nil {
		return nil, fmt.Errorf("failed to lock database: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("database %s is in use by another kondate server", dbPath)
	}
	return lock, nil
}
