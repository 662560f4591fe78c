package types

// Clock set configuration supplied on topic "config/clk".

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"clockcode-go/x/hz"
)

type ClockSetConfig struct {
	Clocks []ClockSpec `json:"clocks" yaml:"clocks"`
}

type ClockSpec struct {
	Name      string    `json:"name,omitempty" yaml:"name,omitempty"`
	Frequency Frequency `json:"frequency_hz" yaml:"frequency"`
}

// Frequency is a target rate in Hz. In YAML and JSON it accepts either a
// bare integer or a unit string such as "25 MHz".
type Frequency uint32

func (f Frequency) Hz() uint32     { return uint32(f) }
func (f Frequency) String() string { return hz.Format(uint32(f)) }

func (f *Frequency) UnmarshalYAML(value *yaml.Node) error {
	var n uint32
	if err := value.Decode(&n); err == nil {
		*f = Frequency(n)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("frequency: %w", err)
	}
	v, err := hz.Parse(s)
	if err != nil {
		return fmt.Errorf("frequency %q: %w", s, err)
	}
	*f = Frequency(v)
	return nil
}

func (f *Frequency) UnmarshalJSON(data []byte) error {
	var n uint32
	if err := json.Unmarshal(data, &n); err == nil {
		*f = Frequency(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("frequency: %w", err)
	}
	v, err := hz.Parse(s)
	if err != nil {
		return fmt.Errorf("frequency %q: %w", s, err)
	}
	*f = Frequency(v)
	return nil
}

// Validate rejects specs the controller could never bring up.
func (c ClockSetConfig) Validate() error {
	for i, spec := range c.Clocks {
		if spec.Frequency == 0 {
			return fmt.Errorf("clock %d: frequency must be a positive number of Hz", i)
		}
	}
	return nil
}

// TargetsHz returns the ordered per-ordinal target rates.
func (c ClockSetConfig) TargetsHz() []uint32 {
	out := make([]uint32, len(c.Clocks))
	for i, spec := range c.Clocks {
		out[i] = spec.Frequency.Hz()
	}
	return out
}
