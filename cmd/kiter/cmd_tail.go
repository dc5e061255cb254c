package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/remind101/kiter"
	k "github.com/remind101/kiter/interface"
	"github.com/remind101/kiter/printer"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var (
	fShardID        = "shard-id"
	fIteratorType   = "iterator-type"
	fSequenceNumber = "sequence-number"
	fTimestamp      = "timestamp"
	fVerbose        = "verbose"
	fDataFormat     = "data-format"
	fPollTime       = "poll-time"
	fMaxRetries     = "max-retries"
	fStopOnError    = "stop-on-error"
	fMaxShards      = "max-shards"
)

var flagsTail = []cli.Flag{
	cli.StringSliceFlag{
		Name:  fShardID + ", s",
		Usage: "Shard to read, repeatable. Every shard of the stream when omitted",
	},
	cli.StringFlag{
		Name:  fIteratorType + ", t",
		Value: "LATEST",
		Usage: "Where to start reading: " + strings.Join(k.IteratorTypes, ", "),
	},
	cli.StringFlag{
		Name:  fSequenceNumber,
		Usage: "Sequence number for AT_SEQUENCE_NUMBER and AFTER_SEQUENCE_NUMBER",
	},
	cli.StringFlag{
		Name:  fTimestamp,
		Usage: "UNIX epoch seconds, fractions allowed, for AT_TIMESTAMP",
	},
	cli.BoolFlag{
		Name:  fVerbose,
		Usage: "Print partition key, sequence number and the other record fields as JSON",
	},
	cli.StringFlag{
		Name:  fDataFormat,
		Value: string(printer.UTF8String),
		Usage: "Payload output format: " + strings.Join(printer.DataFormats, ", "),
	},
	cli.DurationFlag{
		Name:  fPollTime,
		Value: kiter.DefaultOptions.PollTime,
		Usage: "Minimum time between two GetRecords calls on a shard",
	},
	cli.Uint64Flag{
		Name:  fMaxRetries,
		Value: kiter.DefaultOptions.MaxRetries,
		Usage: "Retries of a throttled or failed call before a shard gives up, 0 to disable",
	},
	cli.IntFlag{
		Name:  fMaxShards,
		Usage: "Poll at most this many shards, picked at random. 0 polls them all",
	},
	cli.BoolFlag{
		Name:  fStopOnError,
		Usage: "Stop every shard when one of them fails",
	},
}

var cmdTail = cli.Command{
	Name:    "tail",
	Aliases: []string{"t"},
	Usage:   "Pipes a Kinesis stream to standard out",
	Action:  runTail,
	Flags:   tailFlags(),
}

func tailFlags() []cli.Flag {
	flags := append([]cli.Flag{}, flagsStream...)
	flags = append(flags, flagsTail...)
	flags = append(flags, flagsAws...)
	flags = append(flags, flagsRedis...)
	flags = append(flags, flagsMetrics...)
	return append(flags, flagsLog...)
}

func getOptions(ctx *cli.Context, logger *zap.Logger) (*kiter.Options, error) {
	policy, err := k.ParseStartPolicy(ctx.String(fIteratorType), ctx.String(fSequenceNumber), ctx.String(fTimestamp))
	if err != nil {
		return nil, err
	}
	prov, err := getProvisioner(ctx)
	if err != nil {
		return nil, err
	}

	opt := kiter.DefaultOptions
	opt.ShardIDs = ctx.StringSlice(fShardID)
	opt.StartPolicy = policy
	opt.PollTime = ctx.Duration(fPollTime)
	opt.MaxRetries = ctx.Uint64(fMaxRetries)
	opt.StopOnError = ctx.Bool(fStopOnError)
	opt.MaxShards = ctx.Int(fMaxShards)
	opt.Provisioner = prov
	opt.Logger = logger
	return &opt, nil
}

func runTail(ctx *cli.Context) error {
	logger, err := getLogger(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	stream, err := getStream(ctx)
	if err != nil {
		return err
	}
	format, err := printer.ParseDataFormat(ctx.String(fDataFormat))
	if err != nil {
		return err
	}
	p, err := printer.New(ctx.Bool(fVerbose), format)
	if err != nil {
		return err
	}
	opt, err := getOptions(ctx, logger)
	if err != nil {
		return err
	}

	ki, err := kiter.NewDefaultKiter(getAWSOptions(ctx), stream, opt)
	if err != nil {
		return err
	}

	shutdown := kiter.NewShutdown(context.Background(), logger, os.Interrupt, syscall.SIGTERM)
	defer shutdown.Close()

	stopMetrics, err := serveMetrics(ctx.String(fMetricsAddr), logger)
	if err != nil {
		return err
	}
	defer stopMetrics()

	return tail(shutdown.Context(), ki, p, os.Stdout)
}

// tail prints batches from ki until ctx is done or every shard is closed.
func tail(ctx context.Context, ki kiter.Kiter, p printer.Printer, w io.Writer) error {
	if _, err := ki.Begin(ctx); err != nil {
		return err
	}

	kiter.Consume(ctx, ki.Batches(), func(b *k.Batch) {
		if out := p(b.Records); out != "" {
			fmt.Fprintln(w, out)
		}
	})
	ki.End()
	return ki.Err()
}
