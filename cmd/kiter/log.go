package main

import (
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var fLogLevel = "log-level"

var flagsLog = []cli.Flag{
	cli.StringFlag{
		Name:   fLogLevel,
		Value:  "info",
		Usage:  "Log level of the messages written to standard error",
		EnvVar: "LOG_LEVEL",
	},
}

// Logs go to stderr so that stdout only carries records.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	config.Level = lvl
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

func getLogger(ctx *cli.Context) (*zap.Logger, error) {
	return newLogger(ctx.String(fLogLevel))
}
