package main

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/mark3labs/promptdiff/internal/catalog"
	"github.com/mark3labs/promptdiff/internal/config"
	"github.com/mark3labs/promptdiff/internal/errors"
	"github.com/mark3labs/promptdiff/internal/logger"
	"github.com/mark3labs/promptdiff/internal/selection"
	"github.com/mark3labs/promptdiff/internal/store"
	"github.com/mark3labs/promptdiff/internal/tui"
)

var (
	flagFrom    string
	flagTo      string
	flagDataURL string
	flagNoStore bool
)

// loadClient resolves config, applies the --data-url override, and
// builds the catalog client. Shared by every command that talks to the
// data host.
func loadClient() (*config.Config, *catalog.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flagDataURL != "" {
		cfg.DataURL = flagDataURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, catalog.NewClient(cfg.DataURL, cfg.HTTPTimeout), nil
}

// hostLabel extracts the host portion of the data URL, used as the key
// for persisted selections.
func hostLabel(dataURL string) string {
	u, err := url.Parse(dataURL)
	if err != nil || u.Host == "" {
		return dataURL
	}
	return u.Host
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogFile, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logger.Sync()

	ctx := cmd.Context()
	host := hostLabel(cfg.DataURL)

	var st *store.Store
	if !flagNoStore {
		ns, err := store.StartEmbedded(cfg.DataDir)
		if err != nil {
			logger.Warn("embedded store unavailable, continuing without it: %v", err)
		} else {
			nc, err := store.ConnectInProcess(ns)
			if err != nil {
				logger.Warn("store connection failed, continuing without it: %v", err)
				ns.Shutdown()
			} else {
				defer func() {
					if err := store.Shutdown(nc, ns); err != nil {
						logger.Warn("store shutdown: %v", err)
					}
				}()
				st, err = store.Open(ctx, nc)
				if err != nil {
					logger.Warn("store setup failed, continuing without it: %v", err)
					st = nil
				}
			}
		}
	}

	params := selection.Params{From: flagFrom, To: flagTo}
	logger.Info("starting viewer for %s (from=%q to=%q)", cfg.DataURL, flagFrom, flagTo)

	return errors.Recover(func() error {
		return tui.Run(ctx, cfg, client, st, host, params)
	})
}

// resolvePair picks the pair of labels for a one-shot command: explicit
// arguments when given, else catalog defaults (oldest and newest).
func resolvePair(ctx context.Context, client *catalog.Client, from, to string) (selection.Selection, error) {
	versions, err := client.LoadVersions(ctx)
	if err != nil {
		return selection.Selection{}, err
	}
	sel := selection.Resolve(versions, selection.Params{From: from, To: to}, selection.Selection{})
	if !sel.Valid() {
		return selection.Selection{}, fmt.Errorf("no versions published at %s", client.BaseURL())
	}
	if from != "" && sel.From != from {
		return selection.Selection{}, fmt.Errorf("unknown version %q", from)
	}
	if to != "" && sel.To != to {
		return selection.Selection{}, fmt.Errorf("unknown version %q", to)
	}
	return sel, nil
}
