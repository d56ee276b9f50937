package main

import (
	"fmt"
	"slices"

	"github.com/Veraticus/comps/internal/cli"
	"github.com/Veraticus/comps/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the configuration",
	}

	cmd.AddCommand(configInitCmd())
	cmd.AddCommand(configShowCmd())

	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write the default configuration to --config, or to
$HOME/.config/comps/config.yaml. Edit the columns section to match your export.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ExpandPath(cfgFile)
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}

			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Wrote "+path)) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			source := viper.ConfigFileUsed()
			if source == "" {
				source = "(defaults and environment)"
			}
			fmt.Fprintln(out, cli.FormatTitle("Configuration: "+source)) //nolint:forbidigo // User-facing output

			keys := viper.AllKeys()
			slices.Sort(keys)
			rows := make([][]string, 0, len(keys))
			for _, k := range keys {
				rows = append(rows, []string{k, fmt.Sprint(viper.Get(k))})
			}
			return cli.WriteTable(out, []string{"Key", "Value"}, rows)
		},
	}
}
