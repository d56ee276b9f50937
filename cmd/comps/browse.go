package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/comps/internal/cli"
	"github.com/Veraticus/comps/internal/common"
	"github.com/Veraticus/comps/internal/tui"
	"github.com/Veraticus/comps/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	var (
		readOnly bool
		theme    string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse data values and report rules interactively",
		Long: `Open a terminal browser with one tab per dimension plus the reports.
Rules deleted in the browser are saved to the rule file on exit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			sess := newSession(cfg, nil)

			opts := []tui.Option{tui.WithTheme(themes.ByName(theme)), tui.WithReadOnly(readOnly)}

			rulePath, err := loadRules(sess, true)
			switch {
			case err == nil:
				opts = append(opts, tui.WithBook(sess.Book))
			case errors.Is(err, common.ErrMissingConfig):
				readOnly = true
				opts = append(opts, tui.WithBook(sess.Book), tui.WithReadOnly(true))
			default:
				return err
			}

			if viper.GetString("data") != "" {
				if _, err := loadRecords(ctx, sess, true); err != nil {
					return err
				}
				opts = append(opts, tui.WithStore(sess.Store))
			}

			changes, err := tui.Run(ctx, opts...)
			if err != nil {
				return err
			}
			if changes == 0 || readOnly {
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("%d rule changes", changes))) //nolint:forbidigo // User-facing output
			return saveRules(cmd.OutOrStdout(), sess, rulePath)
		},
	}

	cmd.Flags().BoolVar(&readOnly, "read-only", false, "do not allow rule deletion")
	cmd.Flags().StringVar(&theme, "theme", "default", "color theme (default, catppuccin)")
	return cmd
}
