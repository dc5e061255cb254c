// Package printer renders Kinesis records as text lines.
package printer

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
)

type DataFormat string

const (
	// RawBytes prints the payload as a decimal byte array.
	RawBytes DataFormat = "RAW_BYTES"
	// RawString prints the payload as lowercase hex.
	RawString DataFormat = "RAW_STRING"
	// UTF8String prints the payload as text, dropping invalid UTF-8 sequences.
	UTF8String DataFormat = "UTF8_STRING"
)

var DataFormats = []string{string(RawBytes), string(RawString), string(UTF8String)}

func ParseDataFormat(s string) (DataFormat, error) {
	f := DataFormat(strings.ToUpper(strings.TrimSpace(s)))
	switch f {
	case RawBytes, RawString, UTF8String:
		return f, nil
	}
	return "", fmt.Errorf("unknown data format %q", s)
}

// Printer renders records, one line per record.
type Printer func(records []*kinesis.Record) string

// New picks the render function for format once, so nothing is re-decided per record.
func New(verbose bool, format DataFormat) (Printer, error) {
	var data func([]byte) interface{}
	var plain func([]byte) string
	switch format {
	case RawBytes:
		data = func(b []byte) interface{} { return byteArray(b) }
		plain = rawBytes
	case RawString:
		data = func(b []byte) interface{} { return hex.EncodeToString(b) }
		plain = hex.EncodeToString
	case UTF8String:
		data = func(b []byte) interface{} { return utf8String(b) }
		plain = utf8String
	default:
		return nil, fmt.Errorf("unknown data format %q", format)
	}

	if verbose {
		return lines(func(r *kinesis.Record) (string, bool) {
			return verboseRecord(r, data)
		}), nil
	}
	return lines(func(r *kinesis.Record) (string, bool) {
		return plain(r.Data), true
	}), nil
}

func lines(render func(*kinesis.Record) (string, bool)) Printer {
	return func(records []*kinesis.Record) string {
		out := make([]string, 0, len(records))
		for _, r := range records {
			if r == nil {
				continue
			}
			if line, ok := render(r); ok {
				out = append(out, line)
			}
		}
		return strings.Join(out, "\n")
	}
}

func rawBytes(b []byte) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range b {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(int(c)))
	}
	sb.WriteByte(']')
	return sb.String()
}

func utf8String(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}

// byteArray marshals as a JSON array of numbers instead of base64.
type byteArray []byte

func (b byteArray) MarshalJSON() ([]byte, error) {
	return []byte(strings.ReplaceAll(rawBytes(b), " ", "")), nil
}

type recordRef struct {
	ApproximateArrivalTimestamp *float64    `json:"ApproximateArrivalTimestamp,omitempty"`
	Data                        interface{} `json:"Data"`
	EncryptionType              *string     `json:"EncryptionType,omitempty"`
	PartitionKey                string      `json:"PartitionKey"`
	SequenceNumber              string      `json:"SequenceNumber"`
}

func verboseRecord(r *kinesis.Record, data func([]byte) interface{}) (string, bool) {
	ref := recordRef{
		Data:           data(r.Data),
		EncryptionType: r.EncryptionType,
		PartitionKey:   aws.StringValue(r.PartitionKey),
		SequenceNumber: aws.StringValue(r.SequenceNumber),
	}
	if r.ApproximateArrivalTimestamp != nil {
		ts := float64(r.ApproximateArrivalTimestamp.UnixMilli()) / 1000
		ref.ApproximateArrivalTimestamp = &ts
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ref); err != nil {
		return "", false
	}
	return strings.TrimSuffix(buf.String(), "\n"), true
}
