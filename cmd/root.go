/*
Copyright © 2025 CODA Project

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/common-creation/debugfixture/internal/config"
	"github.com/common-creation/debugfixture/internal/errors"
	"github.com/common-creation/debugfixture/internal/logging"
	"github.com/common-creation/debugfixture/internal/runner"
	"github.com/common-creation/debugfixture/internal/styles"
)

var (
	cfgFile   string
	debugMode bool
	noColor   bool
	format    string

	settings  *viper.Viper
	cfg       *config.Config
	configErr error
	logger    *logging.Logger

	// diagnostics destination for Show* helpers
	errOut io.Writer = os.Stderr
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "debugfixture",
	Short: "Deterministic fixture program for debugger and tooling tests",
	Long: `debugfixture runs a short, fully deterministic computation and prints
a line at every step. It exists to be driven by debuggers and language
tooling test harnesses.

A run:
- prints a banner
- prints the sum and product of two operands, then their combined result
- prints a running total over a fixed sequence, then the final total

With no configuration the output is always the same nine lines.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// SetVersion sets the version information for the application
func SetVersion(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = GetVersionString()
}

// ExecuteContext runs the root command with ctx and exits 1 on failure.
func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	closeLogger()
	if err != nil {
		ShowError("%v", err)
		if errors.Classify(err) == errors.ConfigError {
			ShowInfo("Run 'debugfixture config validate' for details.")
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = initConfig
	rootCmd.Version = GetVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./debugfixture.yaml or $HOME/.config/debugfixture/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")

	rootCmd.Flags().StringVarP(&format, "format", "f", "", "output format (text, json); overrides config")
}

// initConfig reads in config file and ENV variables. A configuration error
// is kept in configErr so commands that do not need the configuration
// (version) still work.
func initConfig(cmd *cobra.Command, args []string) error {
	errOut = cmd.ErrOrStderr()

	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Bind flags to viper
	if err := v.BindPFlag("debug", cmd.Root().PersistentFlags().Lookup("debug")); err != nil {
		return err
	}
	if err := v.BindPFlag("no_color", cmd.Root().PersistentFlags().Lookup("no-color")); err != nil {
		return err
	}
	if err := v.BindPFlag("output.format", rootCmd.Flags().Lookup("format")); err != nil {
		return err
	}
	settings = v

	cfg, configErr = loadConfiguration(v)
	if configErr != nil {
		cfg = config.NewDefaultConfig()
	}

	if IsDebug() {
		cfg.Logging.Level = "debug"
	}

	closeLogger()
	var err error
	logger, err = cfg.SetupLogging(errOut)
	if err != nil {
		// logging config was already validated; this is a file open failure
		env := logging.GetEnvironmentFromEnvVar()
		if IsDebug() {
			env = "development"
		}
		logger, _ = logging.SetupLogging(errOut, env, nil)
		ShowWarning("Failed to initialize logging: %v", err)
	}

	if configErr != nil {
		logger.Debug("configuration not loaded", "error", configErr)
	} else {
		cfg.GetLoggerWithContext().Debug("configuration loaded", "path", v.ConfigFileUsed())
	}

	return nil
}

func loadConfiguration(v *viper.Viper) (*config.Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")

		// surfaces unreadable or malformed files before the typed decode
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Config("read config", err)
		}
	}

	loaded, err := config.NewLoader().Load(v.ConfigFileUsed())
	if err != nil {
		return nil, errors.Config("load config", err)
	}

	if f := rootCmd.Flags().Lookup("format"); f != nil && f.Changed {
		loaded.Output.Format = strings.ToLower(v.GetString("output.format"))
		if err := loaded.Validate(); err != nil {
			return nil, errors.User("--format", err)
		}
	}

	return loaded, nil
}

// closeLogger closes the logger installed by initConfig and puts a stderr
// logger back as the default so nothing writes to a closed file.
func closeLogger() {
	if logger != nil {
		_ = logger.Close()
		logger = nil
		logging.ResetDefault()
	}
}

// runRoot runs the fixture program
func runRoot(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}

	ctx := logging.WithLogger(cmd.Context(), logger)
	_, err := runner.New(cfg, cmd.OutOrStdout()).Run(ctx)
	return err
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return cfg
}

// IsDebug returns whether debug mode is enabled
func IsDebug() bool {
	if settings == nil {
		return debugMode
	}
	return debugMode || settings.GetBool("debug")
}

func colorDisabled() bool {
	if settings != nil && settings.GetBool("no_color") {
		return true
	}
	return noColor
}

// ShowError displays an error message to the user
func ShowError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(errOut, styles.New(errOut, colorDisabled()).Error.Render("Error: "+msg))
}

// ShowWarning displays a warning message to the user
func ShowWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(errOut, styles.New(errOut, colorDisabled()).Warning.Render("Warning: "+msg))
}

// ShowSuccess displays a success message to the user
func ShowSuccess(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(errOut, styles.New(errOut, colorDisabled()).Success.Render("✓ "+msg))
}

// ShowInfo displays an informational message to the user
func ShowInfo(format string, args ...interface{}) {
	fmt.Fprintln(errOut, fmt.Sprintf(format, args...))
}
