package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tixcli/tix/internal/config"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:     "config",
	GroupID: "setup",
	Short:   "Inspect tix configuration",
	Long: `Inspect tix configuration.

Settings come from, highest priority first: command-line flags, TIX_*
environment variables (TIX_DATA, TIX_JSON, TIX_INIT_MISSING,
TIX_LOCK_TIMEOUT, TIX_SORT), the first config file found among
./.tix/config.yaml, $XDG_CONFIG_HOME/tix/config.yaml and
~/.config/tix/config.yaml, and built-in defaults.`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

// keyConfigFile reports which config file was read, when there was one.
const keyConfigFile = "config-file"

// currentSettings returns every setting with the value this invocation
// resolved, flags included.
func currentSettings() map[string]interface{} {
	settings := config.AllSettings()
	if path := config.ConfigFileUsed(); path != "" {
		settings[keyConfigFile] = path
	}
	return settings
}

func runConfigList(cmd *cobra.Command, args []string) error {
	settings := currentSettings()
	if jsonOutput {
		outputJSON(cmd.OutOrStdout(), settings)
		return nil
	}
	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func init() {
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
