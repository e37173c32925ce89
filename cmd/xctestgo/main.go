// Command xctestgo is the default CLI entry point, running the bundle
// of self-test classes in internal/selftest.
package main

import (
	"os"

	"xctestgo/cmd"
	"xctestgo/internal/selftest"
)

// version is overwritten at build time via -ldflags.
var version = "dev"

func main() {
	root := cmd.NewRootCmd("SelfTests", selftest.Entries(), version)
	os.Exit(cmd.Execute(root))
}
