package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/modelctl/internal/log"
)

var removeCmd = &cobra.Command{
	Use:     "remove NAME VERSION",
	Aliases: []string{"rm"},
	Short:   "Remove a model version from the registry",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, ver := args[0], args[1]

		r, err := loadRegistry(cmd.Context())
		if err != nil {
			return err
		}
		if !r.Remove(name, ver) {
			return notFound(name, ver)
		}
		if err := saveRegistry(cmd.Context(), r); err != nil {
			return err
		}

		log.Info(log.CatCLI, "Removed model", "name", name, "version", ver)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed model: %s v%s\n", name, ver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
