package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/comps/internal/cli"
	"github.com/Veraticus/comps/internal/model"
	"github.com/Veraticus/comps/internal/service"
	"github.com/spf13/cobra"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage report definitions",
		Long: `List, create and edit the reports in a rule file. Every change is saved
back to the file given by --rules.`,
	}

	cmd.AddCommand(listRulesCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(removeReportCmd())
	cmd.AddCommand(addRuleCmd())
	cmd.AddCommand(deleteRuleCmd())
	cmd.AddCommand(checkRulesCmd())

	return cmd
}

// withRules loads the configured rule file into a fresh session.
func withRules(allowMissing bool) (*service.Session, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	sess := newSession(cfg, nil)
	path, err := loadRules(sess, allowMissing)
	if err != nil {
		return nil, "", err
	}
	return sess, path, nil
}

func listRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every report and its rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, _, err := withRules(false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if sess.Book.Len() == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No reports found. Use 'comps rules new' to create one.")) //nolint:forbidigo // User-facing output
				return nil
			}

			var rows [][]string
			for _, r := range sess.Book.Reports() {
				if r.Rules.Len() == 0 {
					rows = append(rows, []string{r.Name, "", cli.SubtleStyle.Render("(all records)")})
					continue
				}
				for _, d := range model.Dimensions() {
					if r.Rules.IsWildcard(d) {
						continue
					}
					rows = append(rows, []string{r.Name, d.String(), strings.Join(r.Rules.Values(d), ", ")})
				}
			}
			return cli.WriteTable(out, []string{"Report", "Dimension", "Values"}, rows)
		},
	}
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty report",
		Long:  `Create a report with no rules. An empty report matches every record until rules are added.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, path, err := withRules(true)
			if err != nil {
				return err
			}

			created, err := sess.Book.AddReport(args[0])
			if err != nil {
				return err
			}
			if !created {
				return fmt.Errorf("report %q already exists", args[0])
			}
			return saveRules(cmd.OutOrStdout(), sess, path)
		},
	}
}

func removeReportCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a report and all of its rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, path, err := withRules(false)
			if err != nil {
				return err
			}

			name := args[0]
			if _, err := sess.Book.Report(name); err != nil {
				return err
			}

			if !yes {
				prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				ok, err := prompter.Confirm(cmd.Context(), fmt.Sprintf("Delete report %q?", name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("Nothing deleted.")) //nolint:forbidigo // User-facing output
					return nil
				}
			}

			if err := sess.Book.DeleteReport(name); err != nil {
				return err
			}
			return saveRules(cmd.OutOrStdout(), sess, path)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func addRuleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <report> <dimension> <value>...",
		Short: "Accept values for a dimension",
		Long: `Add one or more accepted values to a report. Dimensions are county,
municipality, zip, water, condo and category.`,
		Example: `  comps rules add "Geneva Lake" water "Geneva Lake"
  comps rules add Kenosha zip 53140 53142 53144`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRules(cmd, args, func(sess *service.Session, report string, d model.Dimension, value string) (bool, error) {
				return sess.Book.AddRule(report, d, value)
			})
		},
	}
}

func deleteRuleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <report> <dimension> <value>...",
		Short: "Stop accepting values for a dimension",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRules(cmd, args, func(sess *service.Session, report string, d model.Dimension, value string) (bool, error) {
				return sess.Book.DeleteRule(report, d, value)
			})
		},
	}
}

type ruleEdit func(sess *service.Session, report string, d model.Dimension, value string) (bool, error)

// editRules applies edit to every value argument and saves when anything changed.
func editRules(cmd *cobra.Command, args []string, edit ruleEdit) error {
	d, err := model.ParseDimension(args[1])
	if err != nil {
		return err
	}

	sess, path, err := withRules(false)
	if err != nil {
		return err
	}

	changed := 0
	for _, value := range args[2:] {
		ok, err := edit(sess, args[0], d, value)
		if err != nil {
			return err
		}
		if ok {
			changed++
		}
	}

	if changed == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No changes.")) //nolint:forbidigo // User-facing output
		return nil
	}
	return saveRules(cmd.OutOrStdout(), sess, path)
}

func checkRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Find rule values that never occur in the data",
		Long: `Compare every rule value against the values seen in the data file and
suggest close matches for the ones that never occur. A misspelled value
silently filters out every record.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, _, err := withRules(false)
			if err != nil {
				return err
			}
			if _, err := loadRecords(cmd.Context(), sess, false); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			found := sess.Check()
			if len(found) == 0 {
				fmt.Fprintln(out, cli.FormatSuccess("Every rule value occurs in the data.")) //nolint:forbidigo // User-facing output
				return nil
			}

			var rows [][]string
			for _, rw := range found {
				for _, w := range rw.Warnings {
					rows = append(rows, []string{rw.Name, w.Dimension.String(), w.Value, strings.Join(w.Suggestions, ", ")})
				}
			}
			return cli.WriteTable(out, []string{"Report", "Dimension", "Value", "Did you mean"}, rows)
		},
	}
}
