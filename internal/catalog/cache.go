package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/appengine-ltd/starbuild/internal/build"
)

// Cache keeps the last downloaded catalog on disk so the editor can start
// without network access.
type Cache struct {
	db   *sql.DB
	path string
}

var ErrCacheEmpty = errors.New("catalog cache is empty")

var cacheSchema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		category TEXT NOT NULL,
		name     TEXT NOT NULL,
		type     TEXT NOT NULL DEFAULT '',
		rarity   TEXT NOT NULL DEFAULT '',
		tooltip  TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (category, name)
	)`,
	`CREATE TABLE IF NOT EXISTS modifiers (
		category TEXT NOT NULL,
		name     TEXT NOT NULL,
		epic     INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (category, name)
	)`,
	`CREATE TABLE IF NOT EXISTS ships (
		name         TEXT PRIMARY KEY,
		tier         TEXT NOT NULL DEFAULT '',
		description  TEXT NOT NULL DEFAULT '',
		fore         INTEGER NOT NULL DEFAULT 0,
		aft          INTEGER NOT NULL DEFAULT 0,
		devices      INTEGER NOT NULL DEFAULT 0,
		hangars      INTEGER NOT NULL DEFAULT 0,
		tac          INTEGER NOT NULL DEFAULT 0,
		eng          INTEGER NOT NULL DEFAULT 0,
		sci          INTEGER NOT NULL DEFAULT 0,
		uni          INTEGER NOT NULL DEFAULT 0,
		experimental INTEGER NOT NULL DEFAULT 0,
		sec_def      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

func OpenCache(path string) (*Cache, error) {
	if path == "" {
		path = "catalog.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	for _, stmt := range cacheSchema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create cache schema: %w", err)
		}
	}
	return &Cache{db: db, path: path}, nil
}

func (c *Cache) Path() string { return c.path }

func (c *Cache) Close() error { return c.db.Close() }

// Put replaces the cached catalog with s in one transaction.
func (c *Cache) Put(ctx context.Context, s *Snapshot) (retErr error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, table := range []string{"items", "modifiers", "ships"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	items, mods, ships := s.records()
	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items (category, name, type, rarity, tooltip) VALUES (?, ?, ?, ?, ?)`,
			string(it.Category), it.Name, it.Type, it.Rarity, it.Tooltip); err != nil {
			return fmt.Errorf("insert item %q: %w", it.Name, err)
		}
	}
	for _, m := range mods {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO modifiers (category, name, epic) VALUES (?, ?, ?)`,
			string(m.Category), m.Name, boolInt(m.Epic)); err != nil {
			return fmt.Errorf("insert modifier %q: %w", m.Name, err)
		}
	}
	for _, sh := range ships {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ships (name, tier, description, fore, aft, devices, hangars, tac, eng, sci, uni, experimental, sec_def)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sh.Name, sh.Tier, sh.Description, sh.Fore, sh.Aft, sh.Devices, sh.Hangars,
			sh.Tac, sh.Eng, sh.Sci, sh.Uni, boolInt(sh.Experimental), boolInt(sh.SecDef)); err != nil {
			return fmt.Errorf("insert ship %q: %w", sh.Name, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('updated_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("stamp cache: %w", err)
	}
	return tx.Commit()
}

// Snapshot reads the cached catalog. An empty cache returns ErrCacheEmpty.
func (c *Cache) Snapshot(ctx context.Context) (*Snapshot, error) {
	var items []Item
	rows, err := c.db.QueryContext(ctx, `SELECT category, name, type, rarity, tooltip FROM items`)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	for rows.Next() {
		var it Item
		var category string
		if err := rows.Scan(&category, &it.Name, &it.Type, &it.Rarity, &it.Tooltip); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.Category = build.Category(category)
		items = append(items, it)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	var mods []Modifier
	rows, err = c.db.QueryContext(ctx, `SELECT category, name, epic FROM modifiers`)
	if err != nil {
		return nil, fmt.Errorf("select modifiers: %w", err)
	}
	for rows.Next() {
		var m Modifier
		var category string
		var epic int
		if err := rows.Scan(&category, &m.Name, &epic); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan modifier: %w", err)
		}
		m.Category = build.Category(category)
		m.Epic = epic != 0
		mods = append(mods, m)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	var ships []Ship
	rows, err = c.db.QueryContext(ctx,
		`SELECT name, tier, description, fore, aft, devices, hangars, tac, eng, sci, uni, experimental, sec_def FROM ships`)
	if err != nil {
		return nil, fmt.Errorf("select ships: %w", err)
	}
	for rows.Next() {
		var sh Ship
		var exp, secDef int
		if err := rows.Scan(&sh.Name, &sh.Tier, &sh.Description, &sh.Fore, &sh.Aft, &sh.Devices, &sh.Hangars,
			&sh.Tac, &sh.Eng, &sh.Sci, &sh.Uni, &exp, &secDef); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan ship: %w", err)
		}
		sh.Experimental = exp != 0
		sh.SecDef = secDef != 0
		ships = append(ships, sh)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	if len(items) == 0 && len(ships) == 0 {
		return nil, ErrCacheEmpty
	}
	return NewSnapshot(items, mods, ships), nil
}

// UpdatedAt reports when Put last succeeded; zero when never.
func (c *Cache) UpdatedAt(ctx context.Context) (time.Time, error) {
	var raw string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'updated_at'`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read cache stamp: %w", err)
	}
	return time.Parse(time.RFC3339Nano, raw)
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	return rows.Close()
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
