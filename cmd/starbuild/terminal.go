package main

import (
	"context"

	"github.com/appengine-ltd/starbuild/internal/ui"
)

func runTerminal(ctx context.Context, s *session) error {
	return ui.NewApp(ui.AppConfig{
		Version:     version,
		Commit:      commit,
		BuildDate:   date,
		Console:     s.console,
		CatalogLoad: s.catalogLoad,
	}).Run(ctx)
}
