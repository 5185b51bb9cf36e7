package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/appengine-ltd/starbuild/internal/catalog"
	"github.com/appengine-ltd/starbuild/internal/config"
	"github.com/appengine-ltd/starbuild/internal/console"
	"github.com/appengine-ltd/starbuild/internal/editor"
	"github.com/appengine-ltd/starbuild/internal/store"
)

// version, commit, date are injected at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const logFileName = "starbuild.log"

type options struct {
	showVersion  bool
	terminal     bool
	buildPath    string
	settingsPath string
	assetDir     string
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("starbuild", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	fs.BoolVar(&opts.terminal, "tui", false, "use the terminal editor even when the desktop one is available")
	fs.StringVar(&opts.buildPath, "build", "", "build file to open")
	fs.StringVar(&opts.settingsPath, "settings", "", "settings file (default: per-user config directory)")
	fs.StringVar(&opts.assetDir, "assets", "assets", "directory holding fonts/ and ui/ textures")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() == 1 && opts.buildPath == "" {
		opts.buildPath = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// session is everything an editor front end needs, plus what has to be
// flushed when it exits.
type session struct {
	settings     config.Settings
	settingsPath string
	logger       *slog.Logger
	logFile      *os.File
	store        *store.Store
	console      *console.Console
	catalogLoad  <-chan error
}

func start(ctx context.Context, opts options) (*session, error) {
	path := opts.settingsPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return nil, fmt.Errorf("locate settings: %w", err)
		}
		path = p
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)

	s := &session{settings: settings, settingsPath: path}
	var logOut io.Writer = os.Stderr
	if err := os.MkdirAll(dir, 0o755); err == nil {
		if f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
			s.logFile = f
			logOut = f
		}
	}
	s.logger = settings.Logger(logOut)

	s.store = store.New(store.Options{
		Autosave:     settings.Autosave,
		AutosavePath: settings.AutosaveFile,
		Debounce:     settings.AutosaveDebounce,
		Logger:       s.logger,
	})
	holder := catalog.NewHolder()
	sources := catalog.Sources{
		File:  settings.CatalogFile,
		Cache: settings.CatalogCache,
		Wiki:  settings.CatalogWiki,
	}
	s.catalogLoad = catalog.LoadAsync(ctx, holder, s.logger, sources.Loaders(s.logger)...)
	s.console = console.New(editor.NewSession(s.store, holder))
	s.restore(opts.buildPath)
	s.logger.Info("starbuild started", "version", version, "settings", path)
	return s, nil
}

// restore opens the build named on the command line. Without one it
// recovers the autosave, which holds the newest edits, and keeps saving to
// the build that was open last.
func (s *session) restore(buildPath string) {
	if buildPath != "" {
		if s.store.LoadFromFile(buildPath) {
			s.console.SetPath(buildPath)
		}
		return
	}
	if fileExists(s.settings.AutosaveFile) && s.store.LoadFromFile(s.settings.AutosaveFile) {
		s.console.SetPath(s.settings.LastBuild)
		return
	}
	if s.settings.LastBuild != "" && s.store.LoadFromFile(s.settings.LastBuild) {
		s.console.SetPath(s.settings.LastBuild)
	}
}

// close flushes the autosave and remembers the build file for next time.
func (s *session) close() error {
	err := s.store.Flush()
	if p := s.console.Path(); p != "" && p != s.settings.LastBuild {
		s.settings.LastBuild = p
		if serr := config.Save(s.settingsPath, s.settings); serr != nil {
			err = errors.Join(err, fmt.Errorf("save settings: %w", serr))
		}
	}
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
	return err
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
