// The main package for the zyteroute executable.
package main

import (
	"github.com/paxaxel223/zyteroute/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
