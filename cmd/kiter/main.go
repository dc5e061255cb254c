package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

// Set via ldflags.
var version = "dev"

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "kiter"
	app.Usage = "Kinesis stream subscriber"
	app.Version = version
	app.Flags = tailFlags()
	app.Action = runTail
	app.Commands = []cli.Command{
		cmdTail,
		cmdShards,
	}
	return app
}

func main() {
	// .env is optional; it may carry AWS_* and REDIS_URL.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
