package main

import (
	"github.com/s0up4200/gamepanel/cmd"
)

// set with -ldflags "-X main.version=... -X main.commit=... -X main.buildTime=..."
var (
	version   = "dev"
	commit    = ""
	buildTime = "unknown"
)

func main() {
	cmd.SetVersion(version, commit, buildTime)
	cmd.Execute()
}
