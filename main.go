// Breakminder - a break reminder daemon.
package main

import (
	"os"

	"github.com/breakminder/breakminder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.Die(err)
		os.Exit(1)
	}
}
