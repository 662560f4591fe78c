package config

import (
	"context"
	"encoding/json"
	"errors"

	"clockcode-go/bus"
)

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxDeviceKey = "device" // context key used for device ID
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

// ConfigService publishes the device's embedded configuration as retained
// messages, one per top-level key: "clk" becomes topic "config/clk" and so
// on. Services pick up their section whenever they subscribe.
type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// Start resolves the device's embedded config and publishes it. It returns
// once everything is on the bus; retained delivery does the rest.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) error {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return errors.New("missing device ID in context")
	}

	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return errors.New("no embedded config for device: " + device)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return errors.New("embedded config for " + device + " is not a JSON object")
	}

	for key, val := range m {
		conn.Publish(conn.NewMessage(bus.Topic{configPrefix, key}, val, true))
	}
	return nil
}
