package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/modelctl/internal/lifecycle"
	"github.com/zjrosen/modelctl/internal/log"
)

var (
	addCreated     string
	addDeprecation string
	addRetirement  string
)

var addCmd = &cobra.Command{
	Use:   "add NAME VERSION",
	Short: "Add a model version to the registry",
	Long: `Add a model version with its lifecycle dates.

The creation date defaults to now. Deprecation and retirement dates are
optional, and must not precede creation (or each other).

Examples:
  modelctl add gpt-4 0613 --created 2023-06-13
  modelctl add gpt-4 0314 --created 2023-03-14 --deprecation 2024-06-13 --retirement 2024-10-01`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	name, ver := args[0], args[1]

	var opts []lifecycle.Option
	for _, d := range []struct {
		flag  string
		value string
		opt   func(time.Time) lifecycle.Option
	}{
		{"created", addCreated, lifecycle.WithCreated},
		{"deprecation", addDeprecation, lifecycle.WithDeprecation},
		{"retirement", addRetirement, lifecycle.WithRetirement},
	} {
		if d.value == "" {
			continue
		}
		t, err := parseDate(d.flag, d.value)
		if err != nil {
			return err
		}
		opts = append(opts, d.opt(t))
	}

	r, err := loadRegistry(cmd.Context())
	if err != nil {
		return err
	}

	model, err := lifecycle.NewModel(name, ver, opts...)
	if err != nil {
		return err
	}
	if err := r.Add(model); err != nil {
		return err
	}
	if err := saveRegistry(cmd.Context(), r); err != nil {
		return err
	}

	log.Info(log.CatCLI, "Added model", "key", model.Key().String())
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added model: %s\n", model)
	return nil
}

func init() {
	addCmd.Flags().StringVar(&addCreated, "created", "", "creation date (YYYY-MM-DD or RFC 3339, default: now)")
	addCmd.Flags().StringVar(&addDeprecation, "deprecation", "", "deprecation date (YYYY-MM-DD or RFC 3339)")
	addCmd.Flags().StringVar(&addRetirement, "retirement", "", "retirement date (YYYY-MM-DD or RFC 3339)")
	rootCmd.AddCommand(addCmd)
}
