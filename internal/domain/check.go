package domain

import (
	"context"
	"errors"
	"net"
	"time"
)

// Status is the availability classification of one candidate.
type Status string

const (
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
	StatusBlocked   Status = "blocked"
	StatusUnknown   Status = "unknown"
	StatusError     Status = "error"
)

// CheckResult is the outcome of probing one candidate.
type CheckResult struct {
	Candidate  string
	Status     Status
	HTTPStatus int
	Attempts   int
	Latency    time.Duration
	Err        *ProbeError
}

// ProbeErrorKind is a high-level classification of transport errors.
type ProbeErrorKind string

const (
	ProbeErrorUnknown ProbeErrorKind = "unknown"
	ProbeErrorTimeout ProbeErrorKind = "timeout"
	ProbeErrorDNS     ProbeErrorKind = "dns"
	ProbeErrorConn    ProbeErrorKind = "connection"
)

// ProbeError represents a structured transport-level failure.
type ProbeError struct {
	Kind    ProbeErrorKind
	Message string
}

func (e *ProbeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return string(e.Kind) + ": " + e.Message
}

// NewProbeError classifies err and wraps it for the domain.
func NewProbeError(err error) *ProbeError {
	if err == nil {
		return nil
	}
	return &ProbeError{
		Kind:    ClassifyProbeError(err),
		Message: err.Error(),
	}
}

// ClassifyProbeError maps a transport error onto a ProbeErrorKind. url.Error
// and net.OpError wrappers are unwrapped via errors.As/Is.
func ClassifyProbeError(err error) ProbeErrorKind {
	if err == nil {
		return ProbeErrorUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ProbeErrorTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ProbeErrorDNS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ProbeErrorTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ProbeErrorConn
	}

	return ProbeErrorUnknown
}
