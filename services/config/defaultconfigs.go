package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Populate embeddedConfigs at build time (e.g. via code generation) or
// manually during development.
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

const cfgSim = `{
  "clk": {
      "clocks": [
          {"name": "core", "frequency_hz": 1000000},
          {"name": "bus", "frequency_hz": 2000000},
          {"name": "audio", "frequency_hz": 1500000}
      ]
  }
}`

var embeddedConfigs = map[string][]byte{
	"sim": []byte(cfgSim),
}
