package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/modelctl/internal/presentation"
)

var (
	statusAt   string
	statusJSON bool
)

var statusCmd = &cobra.Command{
	Use:   "status NAME VERSION",
	Short: "Show the lifecycle status of a model version",
	Long: `Show a model version's status and lifecycle dates.

Examples:
  modelctl status gpt-4 0314
  modelctl status gpt-4 0314 --at 2024-12-01`,
	Args: cobra.ExactArgs(2),
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	at, err := referenceTime(statusAt)
	if err != nil {
		return err
	}

	r, err := loadRegistry(cmd.Context())
	if err != nil {
		return err
	}

	model, ok := r.Get(args[0], args[1])
	if !ok {
		return notFound(args[0], args[1])
	}

	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	dto := presentation.FromModel(model, at)
	if statusJSON {
		return formatter.FormatModel(dto)
	}
	return formatter.FormatStatus(dto)
}

func init() {
	statusCmd.Flags().StringVar(&statusAt, "at", "", "reference date for status (default: now)")
	statusCmd.Flags().StringVar(&statusAt, "date", "", "same as --at")
	_ = statusCmd.Flags().MarkHidden("date")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output JSON")
	rootCmd.AddCommand(statusCmd)
}
