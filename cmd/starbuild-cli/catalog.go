package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/catalog"
	"github.com/appengine-ltd/starbuild/internal/parser"
)

func runCatalogImport(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	jsonPath, _ := cmd.Flags().GetString("json")
	itemsPath, _ := cmd.Flags().GetString("items")
	modsPath, _ := cmd.Flags().GetString("modifiers")
	shipsPath, _ := cmd.Flags().GetString("ships")

	var snap *catalog.Snapshot
	switch {
	case jsonPath != "":
		if snap, err = catalog.LoadJSON(jsonPath); err != nil {
			return err
		}
	case itemsPath != "" || shipsPath != "":
		if snap, err = importCargo(itemsPath, modsPath, shipsPath); err != nil {
			return err
		}
	default:
		return errors.New("nothing to import: pass --json, or --items/--modifiers/--ships")
	}
	if err := catalog.WriteCache(cmd.Context(), env.settings.CatalogCache, snap); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items and %d ships into %s.\n",
		snap.Len(), len(snap.Ships()), env.settings.CatalogCache)
	return nil
}

func importCargo(itemsPath, modsPath, shipsPath string) (*catalog.Snapshot, error) {
	var (
		items []catalog.Item
		mods  []catalog.Modifier
		ships []catalog.Ship
	)
	if itemsPath != "" {
		data, err := os.ReadFile(itemsPath)
		if err != nil {
			return nil, err
		}
		if items, err = catalog.ParseCargoItems(data); err != nil {
			return nil, fmt.Errorf("%s: %w", itemsPath, err)
		}
	}
	if modsPath != "" {
		data, err := os.ReadFile(modsPath)
		if err != nil {
			return nil, err
		}
		if mods, err = catalog.ParseCargoModifiers(data); err != nil {
			return nil, fmt.Errorf("%s: %w", modsPath, err)
		}
	}
	if shipsPath != "" {
		data, err := os.ReadFile(shipsPath)
		if err != nil {
			return nil, err
		}
		if ships, err = catalog.ParseCargoShips(data); err != nil {
			return nil, fmt.Errorf("%s: %w", shipsPath, err)
		}
	}
	return catalog.NewSnapshot(items, mods, ships), nil
}

func runCatalogFetch(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	wiki, _ := cmd.Flags().GetString("wiki")
	if wiki == "" {
		wiki = env.settings.CatalogWiki
	}
	errOut := cmd.ErrOrStderr()
	snap, err := catalog.FetchSnapshot(cmd.Context(), wiki, catalog.FetchOptions{
		OnProgress: func(p catalog.Progress) {
			fmt.Fprintf(errOut, "%-10s %6d rows %8d KiB\n", p.Table, p.Rows, p.DownloadedBytes/1024)
		},
	})
	if err != nil {
		return err
	}
	if err := catalog.WriteCache(cmd.Context(), env.settings.CatalogCache, snap); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	env.logger.Info("catalog fetched", "items", snap.Len(), "ships", len(snap.Ships()), "cache", env.settings.CatalogCache)
	fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d items and %d ships.\n", snap.Len(), len(snap.Ships()))
	return nil
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	snap, err := catalog.ReadCache(cmd.Context(), env.settings.CatalogCache)
	if err != nil {
		return err
	}
	if err := catalog.WriteJSON(args[0], snap); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d items to %s.\n", snap.Len(), args[0])
	return nil
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	category, _ := cmd.Flags().GetString("category")
	var cats []build.Category
	if category != "" {
		c, ok := parser.SlotCategories.Resolve(strings.ReplaceAll(category, "_", " "))
		if !ok {
			return fmt.Errorf("unknown category %q", category)
		}
		cats = append(cats, build.Category(c))
	}
	snap := env.catalog(cmd.Context()).Current()
	if snap.Len() == 0 {
		return errors.New("catalog is empty: run \"starbuild-cli catalog fetch\" or \"catalog import\" first")
	}
	out := cmd.OutOrStdout()
	matches := snap.Search(strings.Join(args, " "), limit, cats...)
	if len(matches) == 0 {
		fmt.Fprintln(out, "No matches.")
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(out, "%-48s %-22s %s\n", m.Item.Name, m.Item.Category, m.Item.Rarity)
	}
	return nil
}

func runCatalogStatus(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	c, err := catalog.OpenCache(env.settings.CatalogCache)
	if err != nil {
		return err
	}
	defer c.Close()
	out := cmd.OutOrStdout()
	at, err := c.UpdatedAt(cmd.Context())
	if err != nil {
		return err
	}
	if at.IsZero() {
		fmt.Fprintf(out, "%s: empty\n", c.Path())
		return nil
	}
	snap, err := c.Snapshot(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d items, %d ships, updated %s\n",
		c.Path(), snap.Len(), len(snap.Ships()), at.Local().Format("2006-01-02 15:04"))
	return nil
}
