package main

import (
	"fmt"

	"github.com/Veraticus/comps/internal/cli"
	"github.com/Veraticus/comps/internal/model"
	"github.com/spf13/cobra"
)

func valuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "values [dimension]",
		Short: "List the distinct values found in the data",
		Long: `Without an argument, list every "Municipality (County)" location in the
data file. With a dimension, list the distinct values recorded for it.`,
		Example: `  comps values --data sold.csv
  comps values water --data sold.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			sess := newSession(cfg, nil)

			title := "Locations"
			list := func() []string { return sess.Store.Locations() }
			if len(args) == 1 {
				d, err := model.ParseDimension(args[0])
				if err != nil {
					return err
				}
				title = d.String()
				list = func() []string { return sess.Store.Values(d) }
			}

			if _, err := loadRecords(cmd.Context(), sess, false); err != nil {
				return err
			}

			values := list()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s (%d)", title, len(values)))) //nolint:forbidigo // User-facing output
			for _, v := range values {
				fmt.Fprintln(out, v) //nolint:forbidigo // User-facing output
			}
			return nil
		},
	}
}
