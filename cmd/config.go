/*
Copyright © 2025 CODA Project
*/
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/common-creation/debugfixture/internal/config"
)

var (
	outputFormat string
	initPath     string
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage debugfixture configuration",
	Long: `View, validate, and initialize debugfixture configuration.

Configuration is optional: without it every run prints the same nine lines.`,
}

// showCmd shows the current configuration
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// getCmd gets a specific configuration value
var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a specific configuration value",
	Long: `Get a specific configuration value.

Examples:
  debugfixture config get fixture.a
  debugfixture config get logging.level`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// initCmd writes a sample configuration file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample configuration file",
	Long: `Write a commented sample configuration file holding the default values.

The file is written to --path, or to $HOME/.config/debugfixture/config.yaml.
An existing file is never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// validateCmd validates the configuration
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(getCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(validateCmd)

	showCmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "output format (yaml, json)")
	initCmd.Flags().StringVar(&initPath, "path", "", "where to write the sample file")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}

	var output []byte
	var err error

	switch strings.ToLower(outputFormat) {
	case "json":
		output, err = json.MarshalIndent(GetConfig(), "", "  ")
		output = append(output, '\n')
	case "yaml", "yml":
		output, err = yaml.Marshal(GetConfig())
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(output)
	return err
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}

	value, err := getConfigValue(GetConfig(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get configuration value: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := initPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if err := config.CreateSampleConfig(path); err != nil {
		return err
	}

	ShowSuccess("Configuration initialized at %s", path)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		ShowError("Configuration validation failed:")
		ShowError("  %v", configErr)
		return fmt.Errorf("configuration is invalid")
	}

	if err := GetConfig().Validate(); err != nil {
		ShowError("Configuration validation failed:")
		ShowError("  %v", err)
		return fmt.Errorf("configuration is invalid")
	}

	ShowSuccess("Configuration is valid")
	return nil
}

// getConfigValue looks up a dotted key in the effective configuration.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return "", err
	}

	if !v.IsSet(key) {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}

	switch value := v.Get(key).(type) {
	case []interface{}:
		parts := make([]string, len(value))
		for i, item := range value {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ","), nil
	default:
		return fmt.Sprint(value), nil
	}
}
