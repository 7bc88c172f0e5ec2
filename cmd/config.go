package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/modelctl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the modelctl config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write a commented default config file",
	Long: `Write a default config file with every option documented.

PATH defaults to .modelctl/config.yaml in the current directory. An existing
file is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := localConfigPath
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote config: %s\n", path)
		return nil
	},
}

var configSetFlagCmd = &cobra.Command{
	Use:   "set-flag NAME true|false",
	Short: "Turn a feature flag on or off in the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid flag value %q: use true or false", args[1])
		}
		path := activeConfigPath()
		if err := config.SaveFlag(path, args[0], enabled); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Set flag %s=%t in %s\n", args[0], enabled, path)
		return nil
	},
}

var configSetRegistryCmd = &cobra.Command{
	Use:   "set-registry PATH",
	Short: "Set the default registry file in the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := activeConfigPath()
		if err := config.SaveRegistryPath(path, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Set registry=%s in %s\n", args[0], path)
		return nil
	},
}

// activeConfigPath is the file that was loaded, or the local default when none was.
func activeConfigPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return localConfigPath
}

func init() {
	configCmd.AddCommand(configInitCmd, configSetFlagCmd, configSetRegistryCmd)
	rootCmd.AddCommand(configCmd)
}
