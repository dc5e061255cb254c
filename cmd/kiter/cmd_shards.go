package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/remind101/kiter"
	"github.com/urfave/cli"
)

var cmdShards = cli.Command{
	Name:    "shards",
	Aliases: []string{"sh"},
	Usage:   "Lists the shards of a stream",
	Action:  runShards,
	Flags:   append(append(append([]cli.Flag{}, flagsStream...), flagsAws...), flagsLog...),
}

func runShards(ctx *cli.Context) error {
	stream, err := getStream(ctx)
	if err != nil {
		return err
	}
	logger, err := getLogger(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opt := kiter.DefaultOptions
	opt.Logger = logger
	ki, err := kiter.NewDefaultKiter(getAWSOptions(ctx), stream, &opt)
	if err != nil {
		return err
	}

	shards, err := ki.GetShards(context.Background())
	if err != nil {
		return err
	}
	return printShards(os.Stdout, stream, shards)
}

func printShards(w io.Writer, stream string, shards []*kinesis.Shard) error {
	if len(shards) == 0 {
		_, err := fmt.Fprintf(w, "No shards found on stream %s\n", stream)
		return err
	}

	t := NewTable()
	t.AddRowWith("shard id", "state", "parent", "adjacent parent",
		"starting hash key", "ending hash key", "starting sequence", "ending sequence").Header()
	for _, shard := range shards {
		state := "open"
		var startSeq, endSeq string
		if r := shard.SequenceNumberRange; r != nil {
			startSeq = aws.StringValue(r.StartingSequenceNumber)
			endSeq = aws.StringValue(r.EndingSequenceNumber)
			if r.EndingSequenceNumber != nil {
				state = "closed"
			}
		}
		var startHash, endHash string
		if r := shard.HashKeyRange; r != nil {
			startHash = aws.StringValue(r.StartingHashKey)
			endHash = aws.StringValue(r.EndingHashKey)
		}
		t.AddRowWith(
			aws.StringValue(shard.ShardId),
			state,
			aws.StringValue(shard.ParentShardId),
			aws.StringValue(shard.AdjacentParentShardId),
			startHash, endHash, startSeq, endSeq,
		)
	}
	_, err := t.WriteTo(w)
	return err
}
