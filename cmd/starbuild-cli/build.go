package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/starbuild/internal/console"
	"github.com/appengine-ltd/starbuild/internal/store"
	"github.com/appengine-ltd/starbuild/internal/ui"
)

func runValidate(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	s, err := env.session(cmd.Context(), args[0], store.Options{}, false)
	if err != nil {
		return err
	}
	issues := s.Validate()
	out := cmd.OutOrStdout()
	if len(issues) == 0 {
		fmt.Fprintln(out, "Build is valid.")
		return nil
	}
	for _, is := range issues {
		fmt.Fprintln(out, is.String())
	}
	return fmt.Errorf("%s: %d issue(s)", args[0], len(issues))
}

func runSummary(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	s, err := env.session(cmd.Context(), args[0], store.Options{}, false)
	if err != nil {
		return err
	}
	section, _ := cmd.Flags().GetString("section")
	c := console.New(s)
	if section == "" {
		fmt.Fprintln(cmd.OutOrStdout(), c.Exec("summary").Text)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), c.Show(section))
	return nil
}

func runSkills(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	s, err := env.session(cmd.Context(), args[0], store.Options{}, false)
	if err != nil {
		return err
	}
	b := s.Store().Build()
	out := cmd.OutOrStdout()
	if bars, _ := cmd.Flags().GetBool("bars"); bars {
		fmt.Fprint(out, ui.SkillBarsANSI(&b, 64))
	}
	fmt.Fprintln(out, console.RenderSkills(&b))
	return nil
}

func runCard(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	s, err := env.session(cmd.Context(), args[0], store.Options{}, false)
	if err != nil {
		return err
	}
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	b := s.Store().Build()
	if err := ui.SaveSkillCard(args[1], &b, width, height); err != nil {
		return fmt.Errorf("write card: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s.\n", args[1])
	return nil
}

// runConsole edits a build interactively. The settings' autosave applies,
// and "save" without a path writes back to the file that was opened.
func runConsole(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	s, err := env.session(cmd.Context(), path, store.Options{
		Autosave:     env.settings.Autosave,
		AutosavePath: env.settings.AutosaveFile,
		Debounce:     env.settings.AutosaveDebounce,
	}, true)
	if err != nil {
		return err
	}
	c := console.New(s)
	c.SetPath(path)
	runErr := c.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	if err := s.Store().Flush(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
