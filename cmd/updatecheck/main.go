// updatecheck - Cached package update checks
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/updatecheck

package main

import (
	"os"

	"github.com/ariel-frischer/updatecheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
