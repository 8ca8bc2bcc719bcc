package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgfit-cli/internal/config"
	"github.com/AnyUserName/imgfit-cli/internal/profile"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string

	// cfg holds the loaded config file, nil when none was found.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "imgfit",
	Short: "Fit images into a size budget",
	Long: `imgfit — re-encodes a single image so its file size best approximates
a target expressed in kilobytes, optionally cropping a region first.

The search lowers encoder quality before it touches pixel dimensions,
so output stays at full resolution whenever the budget allows it.`,
	Version:           version,
	PersistentPreRunE: loadConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./imgfit.yaml if present)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgfit %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// loadConfig reads the optional config file and registers its profiles.
// An explicitly named file must exist; the default path is best-effort.
func loadConfig(_ *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = "imgfit.yaml"
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c

	for name, p := range c.Profiles {
		profile.Register(profile.Profile{
			Name:     name,
			TargetKB: p.TargetKB,
			Format:   p.Format,
		})
	}
	logVerbose("config: %s (%d profiles)", path, len(c.Profiles))
	return nil
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[imgfit] "+format+"\n", args...)
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
