package kiteriface

import (
	"errors"
)

const (
	ECrit  = "crit"
	EError = "error"
	EWarn  = "warn"
	EInfo  = "info"
	EDebug = "debug"
)

// Kind classifies where an error came from.
type Kind string

const (
	// KindTransport is a network, auth or service side failure.
	KindTransport Kind = "transport"
	// KindProtocol is a response that is missing a field it must carry.
	KindProtocol Kind = "protocol"
	// KindConfig is an invalid option combination, detected before polling starts.
	KindConfig Kind = "config"
)

type Error struct {
	Kind Kind
	// One of "crit", "error", "warn", "info", "debug"
	Severity string
	ShardID  string
	message  string
	Origin   error
}

func NewError(kind Kind, severity, message string, origin error) *Error {
	return &Error{
		Kind:     kind,
		Severity: severity,
		message:  message,
		Origin:   origin,
	}
}

func NewTransportError(message string, origin error) *Error {
	return NewError(KindTransport, EError, message, origin)
}

func NewProtocolError(message string) *Error {
	return NewError(KindProtocol, EError, message, nil)
}

func NewConfigError(message string) *Error {
	return NewError(KindConfig, ECrit, message, nil)
}

// WithShard returns a copy of e attributed to shardID.
func (e *Error) WithShard(shardID string) *Error {
	cp := *e
	cp.ShardID = shardID
	return &cp
}

func (e *Error) Error() string {
	msg := e.message
	if e.ShardID != "" {
		msg = "shard " + e.ShardID + ": " + msg
	}
	if e.Origin == nil {
		return msg
	}
	return msg + " from " + e.Origin.Error()
}

func (e *Error) Unwrap() error {
	return e.Origin
}

// IsKind reports whether err wraps an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
