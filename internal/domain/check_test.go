package domain

import (
	"context"
	"net"
	"net/url"
	"syscall"
	"testing"
)

func TestClassifyProbeError_Timeout_ContextDeadline(t *testing.T) {
	if got := ClassifyProbeError(context.DeadlineExceeded); got != ProbeErrorTimeout {
		t.Fatalf("expected timeout, got=%s", got)
	}
}

func TestClassifyProbeError_Timeout_NetError(t *testing.T) {
	err := &net.OpError{Op: "read", Net: "tcp", Err: syscall.ETIMEDOUT}
	if got := ClassifyProbeError(err); got != ProbeErrorConn && got != ProbeErrorTimeout {
		// ETIMEDOUT may surface as connection or timeout; both are acceptable.
		t.Fatalf("expected conn/timeout, got=%s", got)
	}
}

func TestClassifyProbeError_DNS(t *testing.T) {
	err := &net.DNSError{Err: "no such host", Name: "example.invalid"}
	if got := ClassifyProbeError(err); got != ProbeErrorDNS {
		t.Fatalf("expected dns, got=%s", got)
	}
}

func TestClassifyProbeError_ConnReset(t *testing.T) {
	err := &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}
	if got := ClassifyProbeError(err); got != ProbeErrorConn {
		t.Fatalf("expected conn, got=%s", got)
	}
}

func TestClassifyProbeError_URLWraps(t *testing.T) {
	inner := &net.DNSError{Err: "no such host", Name: "x.invalid"}
	err := &url.Error{Op: "Get", URL: "http://x.invalid", Err: inner}

	if got := ClassifyProbeError(err); got != ProbeErrorDNS {
		t.Fatalf("expected dns, got=%s", got)
	}
}

func TestNewProbeErrorNil(t *testing.T) {
	if got := NewProbeError(nil); got != nil {
		t.Fatalf("expected nil, got=%v", got)
	}
}
