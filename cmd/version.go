package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print version information.

Release builds stamp the version at link time:

  go build -ldflags "-X main.version=v1.0.0 -X main.commit=$(git rev-parse --short HEAD) -X main.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"

Binaries installed with go install report the module version and VCS revision instead.`,
		Args: cobra.NoArgs,
		// no config needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			v, c := resolveBuildInfo(version, commit, debug.ReadBuildInfo)
			if c != "" {
				v += " " + c
			}
			fmt.Fprintf(cmd.OutOrStdout(), "gamepanel %s (built %s, %s/%s)\n", v, buildTime, runtime.GOOS, runtime.GOARCH)
		},
	}
}

// resolveBuildInfo falls back to the embedded module information when the
// binary was not stamped with -ldflags
func resolveBuildInfo(v, c string, read func() (*debug.BuildInfo, bool)) (string, string) {
	info, ok := read()
	if !ok {
		return v, c
	}

	if v == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v = info.Main.Version
	}
	if c == "" {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
				c = setting.Value[:7]
			}
		}
	}
	return v, c
}
