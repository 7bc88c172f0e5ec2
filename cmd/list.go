package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/modelctl/internal/lifecycle"
	"github.com/zjrosen/modelctl/internal/presentation"
)

var (
	listStatus string
	listName   string
	listAt     string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List models in the registry",
	Long: `List models in insertion order, optionally filtered by status and name.

Status is computed at --at (default: now), so the same registry can be viewed
as of any date.

Examples:
  modelctl list
  modelctl list --status deprecated
  modelctl list --name gpt-4 --at 2024-07-01
  modelctl list --json | jq '.[].name'`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	at, err := referenceTime(listAt)
	if err != nil {
		return err
	}

	var status lifecycle.Status
	if listStatus != "" {
		status, err = lifecycle.ParseStatus(listStatus)
		if err != nil {
			return fmt.Errorf("invalid status %q: must be active, deprecated or retired", listStatus)
		}
	}

	r, err := loadRegistry(cmd.Context())
	if err != nil {
		return err
	}

	var models []*lifecycle.Model
	switch {
	case listStatus != "" && listName != "":
		models = filterByName(r.ListByStatus(status, at), listName)
	case listStatus != "":
		models = r.ListByStatus(status, at)
	case listName != "":
		models = r.ListByName(listName)
	default:
		models = r.List()
	}

	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	dtos := presentation.FromModels(models, at)
	if listJSON {
		return formatter.FormatModels(dtos)
	}
	return formatter.FormatModelsText(dtos)
}

func filterByName(models []*lifecycle.Model, name string) []*lifecycle.Model {
	result := make([]*lifecycle.Model, 0, len(models))
	for _, m := range models {
		if m.Name() == name {
			result = append(result, m)
		}
	}
	return result
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status: active, deprecated or retired")
	listCmd.Flags().StringVarP(&listName, "name", "n", "", "filter by model name")
	listCmd.Flags().StringVar(&listAt, "at", "", "reference date for status (default: now)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output JSON")
	rootCmd.AddCommand(listCmd)
}
