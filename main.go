// main holds the entry point for the featlens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/featlens/featlens/cmd"
	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/internal/iocache"
)

func main() {
	err := cmd.Execute()

	iocache.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	// Commands exit via LogFatal on their own failures; errors surfacing
	// here come from setup (flags, config, validation).
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Fatal %v\n", err)
		os.Exit(1)
	}
}
