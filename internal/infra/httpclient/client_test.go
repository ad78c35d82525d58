package httpclient

import (
	"net/http"
	"testing"
	"time"
)

func TestNewAppliesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 3 * time.Second

	client := New(cfg)
	if client.Timeout != 3*time.Second {
		t.Fatalf("timeout = %s, want 3s", client.Timeout)
	}

	tr, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("transport is %T, want *http.Transport", client.Transport)
	}
	if tr.MaxIdleConnsPerHost != cfg.MaxIdleConnsPerHost {
		t.Fatalf("MaxIdleConnsPerHost = %d, want %d", tr.MaxIdleConnsPerHost, cfg.MaxIdleConnsPerHost)
	}
	if !tr.ForceAttemptHTTP2 {
		t.Fatalf("expected HTTP/2 enabled")
	}
}
