//go:build !cgo

package main

import "context"

// Without cgo there is no raylib window; the terminal editor is the only
// front end.
func runEditor(ctx context.Context, s *session, opts options) error {
	if !opts.terminal {
		s.logger.Info("desktop editor unavailable in this build, using the terminal")
	}
	return runTerminal(ctx, s)
}
