package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// version, commit, date are injected at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "starbuild-cli",
		Short:   "Inspect and edit starship builds from the command line",
		Version: fmt.Sprintf("%s (%s) %s", version, commit, date),
		Long: `starbuild-cli works on the same build files, settings and catalog cache
as the desktop editor. Use it to check builds in scripts, render skill
cards, and keep the item catalog current.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("settings", "", "Settings file (default: per-user config directory)")
	rootCmd.PersistentFlags().String("log-level", "", "Override the settings log level: debug|info|warn|error")

	validateCmd := &cobra.Command{
		Use:   "validate <build.json>",
		Short: "Report empty required fields and slots beyond the ship's limits",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}

	summaryCmd := &cobra.Command{
		Use:   "summary <build.json>",
		Short: "Print the captain, ship and equipment overview of a build",
		Args:  cobra.ExactArgs(1),
		RunE:  runSummary,
	}
	summaryCmd.Flags().String("section", "", "Print one section instead: space|ground|captain|skills|boffs|doffs")

	skillsCmd := &cobra.Command{
		Use:   "skills <build.json>",
		Short: "Print the space and ground skill trees with bonus bars",
		Args:  cobra.ExactArgs(1),
		RunE:  runSkills,
	}
	skillsCmd.Flags().Bool("bars", false, "Draw the bonus bars as terminal graphics")

	cardCmd := &cobra.Command{
		Use:   "card <build.json> <out.png>",
		Short: "Render the build's skill bars to a PNG card",
		Args:  cobra.ExactArgs(2),
		RunE:  runCard,
	}
	cardCmd.Flags().Int("width", 800, "Card width in pixels")
	cardCmd.Flags().Int("height", 300, "Card height in pixels")

	consoleCmd := &cobra.Command{
		Use:   "console [build.json]",
		Short: "Edit a build with typed commands on stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConsole,
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the item, modifier and ship catalog cache",
	}
	catalogCmd.PersistentFlags().String("cache", "", "Catalog cache database (default: from settings)")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Load a catalog JSON or wiki Cargo exports into the cache",
		Args:  cobra.NoArgs,
		RunE:  runCatalogImport,
	}
	importCmd.Flags().String("json", "", "Catalog JSON document with items, modifiers and ships")
	importCmd.Flags().String("items", "", "Cargo export of the item infobox table")
	importCmd.Flags().String("modifiers", "", "Cargo export of the modifiers table")
	importCmd.Flags().String("ships", "", "Cargo export of the ships table")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the catalog from the wiki into the cache",
		Args:  cobra.NoArgs,
		RunE:  runCatalogFetch,
	}
	fetchCmd.Flags().String("wiki", "", "Wiki base URL (default: from settings, then "+defaultWikiHint+")")

	exportCmd := &cobra.Command{
		Use:   "export <catalog.json>",
		Short: "Write the cached catalog as a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE:  runCatalogExport,
	}

	searchCmd := &cobra.Command{
		Use:   "search <text...>",
		Short: "Fuzzy-search catalog item names",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCatalogSearch,
	}
	searchCmd.Flags().StringP("category", "c", "", "Restrict to a slot category, e.g. fore_weapons")
	searchCmd.Flags().IntP("limit", "n", 10, "Maximum results")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show what the catalog cache holds and when it was refreshed",
		Args:  cobra.NoArgs,
		RunE:  runCatalogStatus,
	}

	catalogCmd.AddCommand(importCmd, fetchCmd, exportCmd, searchCmd, statusCmd)
	rootCmd.AddCommand(validateCmd, summaryCmd, skillsCmd, cardCmd, consoleCmd, catalogCmd)
	return rootCmd
}
