package printer

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(data []byte) *kinesis.Record {
	return &kinesis.Record{
		Data:           data,
		PartitionKey:   aws.String("KEY"),
		SequenceNumber: aws.String("1"),
	}
}

func render(t *testing.T, verbose bool, format DataFormat, records ...*kinesis.Record) string {
	p, err := New(verbose, format)
	require.NoError(t, err)
	return p(records)
}

func TestRawBytes(t *testing.T) {
	assert.Equal(t, "[0, 255]", render(t, false, RawBytes, record([]byte{0, 255})))
	assert.Equal(t, "[]", render(t, false, RawBytes, record(nil)))
}

func TestRawString(t *testing.T) {
	assert.Equal(t, "00ff", render(t, false, RawString, record([]byte{0, 255})))
}

func TestUTF8String(t *testing.T) {
	assert.Equal(t, "test-data", render(t, false, UTF8String, record([]byte("test-data"))))
	assert.Equal(t, "ab", render(t, false, UTF8String, record([]byte{'a', 0xff, 0xfe, 'b'})))
}

func TestMultipleRecords(t *testing.T) {
	out := render(t, false, UTF8String, record([]byte("one")), nil, record([]byte("two")))
	assert.Equal(t, "one\ntwo", out)
	assert.Equal(t, "", render(t, false, UTF8String))
}

func TestVerboseUTF8String(t *testing.T) {
	assert.Equal(t,
		`{"Data":"test-data","PartitionKey":"KEY","SequenceNumber":"1"}`,
		render(t, true, UTF8String, record([]byte("test-data"))))
	assert.Equal(t,
		`{"Data":"<a&b>","PartitionKey":"KEY","SequenceNumber":"1"}`,
		render(t, true, UTF8String, record([]byte("<a&b>"))))
}

func TestVerboseRawBytesAndString(t *testing.T) {
	assert.Equal(t,
		`{"Data":[0,255],"PartitionKey":"KEY","SequenceNumber":"1"}`,
		render(t, true, RawBytes, record([]byte{0, 255})))
	assert.Equal(t,
		`{"Data":"00ff","PartitionKey":"KEY","SequenceNumber":"1"}`,
		render(t, true, RawString, record([]byte{0, 255})))
}

func TestVerboseOptionalFields(t *testing.T) {
	r := record([]byte("x"))
	r.ApproximateArrivalTimestamp = aws.Time(time.UnixMilli(1600000000250))
	r.EncryptionType = aws.String("KMS")
	assert.Equal(t,
		`{"ApproximateArrivalTimestamp":1600000000.25,"Data":"x","EncryptionType":"KMS","PartitionKey":"KEY","SequenceNumber":"1"}`,
		render(t, true, UTF8String, r))
}

func TestParseDataFormat(t *testing.T) {
	f, err := ParseDataFormat("raw_bytes")
	assert.NoError(t, err)
	assert.Equal(t, RawBytes, f)

	_, err = ParseDataFormat("BASE64")
	assert.Error(t, err)

	_, err = New(false, DataFormat("BASE64"))
	assert.Error(t, err)
}
