package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/starbuild/internal/catalog"
	"github.com/appengine-ltd/starbuild/internal/config"
	"github.com/appengine-ltd/starbuild/internal/editor"
	"github.com/appengine-ltd/starbuild/internal/store"
)

const defaultWikiHint = catalog.DefaultWiki

type cliEnv struct {
	settings     config.Settings
	settingsPath string
	logger       *slog.Logger
}

func loadEnv(cmd *cobra.Command) (cliEnv, error) {
	path, _ := cmd.Flags().GetString("settings")
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return cliEnv{}, fmt.Errorf("locate settings: %w", err)
		}
		path = p
	}
	settings, err := config.Load(path)
	if err != nil {
		return cliEnv{}, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		settings.LogLevel = level
		settings.Normalize(filepath.Dir(path))
	}
	if cmd.Flags().Lookup("cache") != nil {
		if cache, _ := cmd.Flags().GetString("cache"); cache != "" {
			settings.CatalogCache = cache
		}
	}
	return cliEnv{
		settings:     settings,
		settingsPath: path,
		logger:       settings.Logger(cmd.ErrOrStderr()),
	}, nil
}

// catalog loads the configured file or cache synchronously. The wiki is
// only contacted by "catalog fetch". A missing catalog is not fatal: the
// build still loads, item names just go unchecked.
func (e cliEnv) catalog(ctx context.Context) *catalog.Holder {
	h := catalog.NewHolder()
	src := catalog.Sources{File: e.settings.CatalogFile, Cache: e.settings.CatalogCache}
	if err := <-catalog.LoadAsync(ctx, h, e.logger, src.Loaders(e.logger)...); err != nil {
		e.logger.Debug("no catalog", "err", err)
	}
	return h
}

// session opens a build file into a fresh editor session. With allowNew a
// missing file starts an empty build that saves to path.
func (e cliEnv) session(ctx context.Context, path string, opts store.Options, allowNew bool) (*editor.Session, error) {
	opts.Logger = e.logger
	st := store.New(opts)
	s := editor.NewSession(st, e.catalog(ctx))
	path = strings.TrimSpace(path)
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && allowNew {
		return s, nil
	} else if err != nil {
		return nil, err
	}
	if !st.LoadFromFile(path) {
		return nil, fmt.Errorf("could not load build %s", path)
	}
	return s, nil
}
