package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ruminaider/selectme/cmd/selectme/tui"
	"github.com/ruminaider/selectme/internal/config"
	"github.com/ruminaider/selectme/internal/native"
	"github.com/ruminaider/selectme/internal/widget"
)

var (
	runOut     string
	runForce   bool
	runWidth   string
	runColumns int
	runSearch  bool
	runLocale  string
	runCSS     string
)

var runCmd = &cobra.Command{
	Use:   "run <source>",
	Short: "Edit the selects of a source document interactively",
	Long: "Open every select of the source document as a selection widget. " +
		"ctrl+s submits and prints the form values; with --out the updated " +
		"document is written instead. ctrl+c cancels.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := applyRunFlags(cmd, &cfg); err != nil {
			return err
		}

		logger, closeLog, err := openLogger(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		form, err := native.Load(args[0])
		if err != nil {
			return err
		}

		m, err := tui.NewModel(form, cfg.Options(), widget.WithLogger(logger))
		if err != nil {
			return err
		}
		final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
		if err != nil {
			m.Dispose()
			return fmt.Errorf("running selection ui: %w", err)
		}
		done, ok := final.(tui.Model)
		if !ok {
			return fmt.Errorf("unexpected model type %T", final)
		}
		done.Dispose()

		out := cmd.OutOrStdout()
		if !done.Submitted {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		logger.Info("form submitted", "source", args[0], "selects", len(form.Selects))
		return emitForm(out, form, runOut, runForce)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "Write the updated source document here instead of printing values")
	runCmd.Flags().BoolVarP(&runForce, "force", "f", false, "Overwrite --out without asking")
	runCmd.Flags().StringVar(&runWidth, "width", "", "Widget width: a percentage like 50% or a cell count")
	runCmd.Flags().IntVar(&runColumns, "columns", 0, "Number of option columns in the dropdown")
	runCmd.Flags().BoolVar(&runSearch, "search", true, "Show the search field")
	runCmd.Flags().StringVar(&runLocale, "locale", "", "Message locale, e.g. en or de")
	runCmd.Flags().StringVar(&runCSS, "css", "", "Theme file (overrides css_file)")
}

// applyRunFlags copies explicitly set flags over the config file values.
func applyRunFlags(cmd *cobra.Command, cfg *config.File) error {
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = runWidth
	}
	if flags.Changed("columns") {
		cfg.ColumnCount = runColumns
	}
	if flags.Changed("search") {
		cfg.Search = runSearch
	}
	if flags.Changed("locale") {
		cfg.Locale = runLocale
	}
	if flags.Changed("css") {
		cfg.CSSFile = runCSS
	}
	return cfg.Validate()
}

// confirmOverwrite asks before replacing an existing file.
var confirmOverwrite = func(path string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s exists. Overwrite?", path)).
				Value(&ok),
		),
	).Run()
	return ok, err
}

// emitForm prints the encoded values, or writes the document to path.
func emitForm(out io.Writer, form *native.Form, path string, force bool) error {
	if path == "" {
		fmt.Fprintln(out, form.Values().Encode())
		return nil
	}

	if _, err := os.Stat(path); err == nil && !force {
		ok, err := confirmOverwrite(path)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(out, "Left %s unchanged.\n", path)
			return nil
		}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	data, err := native.Marshal(form)
	if err != nil {
		return fmt.Errorf("encoding form: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
