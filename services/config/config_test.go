// config/config_test.go
package config

import (
	"context"
	"testing"
	"time"

	"clockcode-go/bus"
)

func TestConfig_PublishEmbedded_RetainedPerKey(t *testing.T) {
	// Override lookup for this test.
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		if device != "sim" {
			return nil, false
		}
		return []byte(`{
			"clk": {"clocks": [{"frequency_hz": 1000000}]},
			"heartbeat": {"interval": 2}
		}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	// Arrange bus and service.
	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	// Start publisher with device ID in context.
	ctx := context.WithValue(context.Background(), CtxDeviceKey, "sim")
	if err := svc.Start(ctx, conn); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Subscribe; retained messages should arrive immediately.
	sub := conn.Subscribe(bus.Topic{configPrefix, "#"})

	got := map[string]any{}
	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < 2 && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			if len(m.Topic) < 2 {
				t.Fatalf("unexpected topic length: %#v", m.Topic)
			}
			key, ok := m.Topic[1].(string)
			if !ok {
				t.Fatalf("topic[1] type %T, want string", m.Topic[1])
			}
			got[key] = m.Payload
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 retained messages, got %d (%v)", len(got), got)
	}

	clkVal, ok := got["clk"].(map[string]any)
	if !ok {
		t.Fatalf("clk payload = %#v, want object", got["clk"])
	}
	clocks, ok := clkVal["clocks"].([]any)
	if !ok || len(clocks) != 1 {
		t.Fatalf("clocks payload = %#v", clkVal["clocks"])
	}
	if _, ok := got["heartbeat"]; !ok {
		t.Fatal("missing 'heartbeat' message")
	}
}

func TestConfig_MissingDevice(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	if err := svc.Start(context.Background(), conn); err == nil {
		t.Fatal("expected error without device ID in context")
	}

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "no-such-device")
	if err := svc.Start(ctx, conn); err == nil {
		t.Fatal("expected error for unknown device")
	}
}
