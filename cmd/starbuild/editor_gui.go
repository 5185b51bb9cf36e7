//go:build cgo

package main

import (
	"context"

	"github.com/appengine-ltd/starbuild/internal/gui"
)

func runEditor(ctx context.Context, s *session, opts options) error {
	if opts.terminal {
		return runTerminal(ctx, s)
	}
	app := gui.NewApp(gui.AppConfig{
		Version:     version,
		Commit:      commit,
		BuildDate:   date,
		Console:     s.console,
		CatalogLoad: s.catalogLoad,
		AssetDir:    opts.assetDir,
		Scale:       float32(s.settings.UIScale),
		Logger:      s.logger,
	})
	return app.Run()
}
