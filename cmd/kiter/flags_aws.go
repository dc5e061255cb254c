package main

import (
	"github.com/remind101/kiter"
	"github.com/urfave/cli"
)

var (
	fStreamName = "stream-name"
	fAWSRegion  = "region"
	fAWSEndpt   = "endpoint"
	fAWSAccess  = "aws.accesskey"
	fAWSSecret  = "aws.secretkey"
)

var flagsStream = []cli.Flag{
	cli.StringFlag{
		Name:   fStreamName + ", n",
		Usage:  "The Kinesis stream to read",
		EnvVar: "KINESIS_STREAM",
	},
}

var flagsAws = []cli.Flag{
	cli.StringFlag{
		Name:   fAWSRegion + ", r",
		Usage:  "The AWS Kinesis region",
		EnvVar: "AWS_REGION",
	},
	cli.StringFlag{
		Name:   fAWSEndpt,
		Usage:  "Override the Kinesis endpoint",
		EnvVar: "AWS_ENDPOINT",
	},
	cli.StringFlag{
		Name:   fAWSAccess,
		Usage:  "The AWS access key, the default credential chain is used when empty",
		EnvVar: "AWS_ACCESS_KEY_ID",
	},
	cli.StringFlag{
		Name:   fAWSSecret,
		Usage:  "The AWS secret key",
		EnvVar: "AWS_SECRET_ACCESS_KEY",
	},
}

func getAWSOptions(ctx *cli.Context) kiter.AWSOptions {
	return kiter.AWSOptions{
		Region:    ctx.String(fAWSRegion),
		Endpoint:  ctx.String(fAWSEndpt),
		AccessKey: ctx.String(fAWSAccess),
		SecretKey: ctx.String(fAWSSecret),
	}
}

func getStream(ctx *cli.Context) (string, error) {
	stream := ctx.String(fStreamName)
	if stream == "" {
		return "", cli.NewExitError("--"+fStreamName+" is required", 1)
	}
	return stream, nil
}
