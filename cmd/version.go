/*
Copyright © 2025 CODA Project
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information variables
// These are set at build time using ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

var (
	verbose    bool
	jsonOutput bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long: `Display detailed version information about debugfixture.

Shows the version number, build information, and platform details.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed version information")
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "output version information as JSON")
}

func runVersion(cmd *cobra.Command, args []string) error {
	versionInfo := getVersionInfo()
	out := cmd.OutOrStdout()

	if jsonOutput {
		return outputJSON(out, versionInfo)
	}

	if verbose {
		return outputVerbose(out, versionInfo)
	}

	fmt.Fprintf(out, "debugfixture version %s\n", versionInfo.Version)
	return nil
}

// VersionInfo contains all version-related information
type VersionInfo struct {
	Version   string            `json:"version"`
	Commit    string            `json:"commit"`
	Date      string            `json:"date"`
	GoVersion string            `json:"go_version"`
	Platform  string            `json:"platform"`
	BuildInfo map[string]string `json:"build_info,omitempty"`
	Features  []string          `json:"features,omitempty"`
}

func getVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.BuildInfo = make(map[string]string)

		if buildInfo.Main.Version != "" {
			info.BuildInfo["module_version"] = buildInfo.Main.Version
		}

		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.Commit == "unknown" {
					info.Commit = setting.Value
				}
			case "vcs.time":
				if info.Date == "unknown" {
					info.Date = setting.Value
				}
			case "vcs.modified":
				info.BuildInfo["vcs_modified"] = setting.Value
			case "GOOS", "GOARCH", "CGO_ENABLED":
				info.BuildInfo[setting.Key] = setting.Value
			}
		}
	}

	info.Features = []string{"text-output", "json-output", "config-file", "env-overrides"}

	return info
}

func outputJSON(w io.Writer, info VersionInfo) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}

func outputVerbose(w io.Writer, info VersionInfo) error {
	fmt.Fprintf(w, "debugfixture version %s\n", info.Version)
	fmt.Fprintf(w, "Commit: %s\n", info.Commit)
	fmt.Fprintf(w, "Built: %s\n", info.Date)
	fmt.Fprintf(w, "Go version: %s\n", info.GoVersion)
	fmt.Fprintf(w, "Platform: %s\n", info.Platform)

	if len(info.Features) > 0 {
		fmt.Fprintln(w, "\nEnabled features:")
		for _, feature := range info.Features {
			fmt.Fprintf(w, "  - %s\n", feature)
		}
	}

	if len(info.BuildInfo) > 0 {
		fmt.Fprintln(w, "\nBuild information:")
		for key, value := range info.BuildInfo {
			fmt.Fprintf(w, "  %s: %s\n", key, value)
		}
	}

	return nil
}

// GetVersionString returns a formatted version string
func GetVersionString() string {
	if Version == "dev" {
		return fmt.Sprintf("debugfixture %s (commit: %s)", Version, getShortCommit())
	}
	return fmt.Sprintf("debugfixture %s", Version)
}

func getShortCommit() string {
	if len(Commit) >= 7 {
		return Commit[:7]
	}
	return Commit
}
