package main

import (
	"github.com/BugBounty-MockingBird/bugbounty-ksp-api-client/cmd"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.SetVersion(version, buildTime)
	cmd.Execute()
}
