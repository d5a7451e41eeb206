package otel

import (
	"context"
	"testing"
	"time"
)

func TestNewProviders_EmptyEndpointIsNoop(t *testing.T) {
	p, err := NewProviders(context.Background(), "", "assetdesk-cli", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}
	if p.Exporting {
		t.Error("Exporting should be false without an endpoint, so callers skip the drain wait")
	}
	if p.TracerProvider == nil || p.MeterProvider == nil || p.LoggerProvider == nil {
		t.Fatal("no-op providers must still be usable")
	}

	start := time.Now()
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("no-op shutdown took %v, should return immediately", elapsed)
	}
}

func TestNewProviders_RejectsHostlessEndpoint(t *testing.T) {
	if _, err := NewProviders(context.Background(), "http://", "assetdesk-cli", false); err == nil {
		t.Error("NewProviders should reject an endpoint without a host")
	}
}
