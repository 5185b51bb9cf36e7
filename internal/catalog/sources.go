package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Sources describes where the editors look for a catalog at startup.
type Sources struct {
	// File is an optional catalog JSON export; it wins when present.
	File string
	// Cache is the sqlite cache written by imports and wiki fetches.
	Cache string
	// Wiki, when set, is fetched if neither file nor cache produced a
	// catalog. A successful fetch is written back to Cache.
	Wiki  string
	Fetch FetchOptions
}

var errNoSource = errors.New("source not configured")

// Loaders turns the sources into LoadAsync loaders in priority order.
func (s Sources) Loaders(logger *slog.Logger) []Loader {
	var out []Loader
	if path := strings.TrimSpace(s.File); path != "" {
		out = append(out, Loader{Name: "file", Load: func(context.Context) (*Snapshot, error) {
			return LoadJSON(path)
		}})
	}
	if path := strings.TrimSpace(s.Cache); path != "" {
		out = append(out, Loader{Name: "cache", Load: func(ctx context.Context) (*Snapshot, error) {
			return ReadCache(ctx, path)
		}})
	}
	if base := strings.TrimSpace(s.Wiki); base != "" {
		out = append(out, Loader{Name: "wiki", Load: func(ctx context.Context) (*Snapshot, error) {
			snap, err := FetchSnapshot(ctx, base, s.Fetch)
			if err != nil {
				return nil, err
			}
			if s.Cache != "" {
				if err := WriteCache(ctx, s.Cache, snap); err != nil && logger != nil {
					logger.Warn("catalog cache write failed", "path", s.Cache, "err", err)
				}
			}
			return snap, nil
		}})
	}
	if len(out) == 0 {
		out = append(out, Loader{Name: "none", Load: func(context.Context) (*Snapshot, error) {
			return nil, errNoSource
		}})
	}
	return out
}

// ReadCache opens the cache at path, reads its snapshot and closes it.
func ReadCache(ctx context.Context, path string) (*Snapshot, error) {
	c, err := OpenCache(path)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.Snapshot(ctx)
}

// WriteCache replaces the contents of the cache at path with snap.
func WriteCache(ctx context.Context, path string, snap *Snapshot) error {
	c, err := OpenCache(path)
	if err != nil {
		return err
	}
	if err := c.Put(ctx, snap); err != nil {
		_ = c.Close()
		return err
	}
	return c.Close()
}
