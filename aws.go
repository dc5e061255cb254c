package kiter

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/kinesis"
	k "github.com/remind101/kiter/interface"
)

type AWSOptions struct {
	Region string
	// Endpoint overrides the Kinesis endpoint, e.g. a local kinesalite.
	Endpoint string
	// Static credentials. When empty the default credential chain is used.
	AccessKey string
	SecretKey string
}

func NewKinesis(opt AWSOptions) (*kinesis.Kinesis, error) {
	cfg := aws.NewConfig()
	if opt.Region != "" {
		cfg = cfg.WithRegion(opt.Region)
	}
	if opt.Endpoint != "" {
		cfg = cfg.WithEndpoint(opt.Endpoint)
	}
	if opt.AccessKey != "" && opt.SecretKey != "" {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(opt.AccessKey, opt.SecretKey, ""))
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *cfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, k.NewError(k.KindConfig, k.ECrit, "could not create AWS session", err)
	}
	return kinesis.New(sess), nil
}
