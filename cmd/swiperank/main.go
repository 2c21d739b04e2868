package main

import (
	"fmt"
	"os"
	"swiperank/internal/di"
	"swiperank/internal/structures"

	"github.com/spf13/pflag"
)

func main() {
	flags := &structures.CliFlags{}
	pflag.StringVarP(&flags.ConfigPath, "config", "c", "config/config.yaml", "path to the yaml config file")
	pflag.BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to the console")
	pflag.Parse()

	// InitApp blocks until the server shuts down.
	_, cleanup, err := di.InitApp(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "swiperank: %s\n", err)
		os.Exit(1)
	}
	cleanup()
}
