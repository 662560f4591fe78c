// Package sim is a simulated clock provider for host bring-up and tests.
// It stands in for the hardware the controller would drive on a board:
// rates are confirmed exactly as requested, failures are injected per
// ordinal, and every provider call is recorded in order.
package sim

import (
	"errors"
	"strconv"

	"clockcode-go/drivers/clk"
)

// Op names one provider call in the recorded trace.
type Op string

const (
	OpAcquire Op = "acquire"
	OpSetRate Op = "set_rate"
	OpEnable  Op = "enable"
	OpDisable Op = "disable"
	OpRelease Op = "release"
)

// Call is one recorded provider call.
type Call struct {
	Op      Op
	Ordinal int
	Hz      uint32 // set_rate only
}

// Clock is the simulator's view of one clock resource.
type Clock struct {
	Ordinal     int
	RateHz      uint32
	EnableCount int // >1 would mean a stacked enable, which the controller must never cause
	Acquired    bool
}

// Config injects failures. Each field names the single ordinal whose call
// fails; None disables the injection.
type Config struct {
	FailAcquire int
	FailSetRate int
	FailEnable  int
}

// None is the ordinal value that matches no clock.
const None = -1

func DefaultConfig() Config {
	return Config{FailAcquire: None, FailSetRate: None, FailEnable: None}
}

var (
	ErrAcquire = errors.New("sim: clock not present")
	ErrSetRate = errors.New("sim: rate not supported")
	ErrEnable  = errors.New("sim: enable refused")
)

// Provider implements clk.Provider. Not safe for concurrent use, matching
// the controller's single-threaded contract.
type Provider struct {
	cfg    Config
	clocks map[int]*Clock
	calls  []Call
}

func New(cfg Config) *Provider {
	return &Provider{cfg: cfg, clocks: map[int]*Clock{}}
}

// Calls returns the provider calls made so far, in order.
func (p *Provider) Calls() []Call { return p.calls }

// Clock returns the simulator state for an ordinal, nil if never acquired.
func (p *Provider) Clock(ordinal int) *Clock { return p.clocks[ordinal] }

func (p *Provider) record(op Op, ordinal int, hz uint32) {
	p.calls = append(p.calls, Call{Op: op, Ordinal: ordinal, Hz: hz})
}

func (p *Provider) Acquire(ordinal int) (clk.Handle, error) {
	p.record(OpAcquire, ordinal, 0)
	if ordinal == p.cfg.FailAcquire {
		return nil, ErrAcquire
	}
	c, ok := p.clocks[ordinal]
	if !ok {
		c = &Clock{Ordinal: ordinal}
		p.clocks[ordinal] = c
	}
	c.Acquired = true
	return c, nil
}

func (p *Provider) Release(h clk.Handle) {
	c := h.(*Clock)
	p.record(OpRelease, c.Ordinal, 0)
	c.Acquired = false
}

func (p *Provider) SetRate(h clk.Handle, hz uint32) error {
	c := h.(*Clock)
	p.record(OpSetRate, c.Ordinal, hz)
	if c.Ordinal == p.cfg.FailSetRate {
		return ErrSetRate
	}
	c.RateHz = hz
	return nil
}

func (p *Provider) Enable(h clk.Handle) error {
	c := h.(*Clock)
	p.record(OpEnable, c.Ordinal, 0)
	if c.Ordinal == p.cfg.FailEnable {
		return ErrEnable
	}
	c.EnableCount++
	return nil
}

func (p *Provider) Disable(h clk.Handle) {
	c := h.(*Clock)
	p.record(OpDisable, c.Ordinal, 0)
	if c.EnableCount > 0 {
		c.EnableCount--
	}
}

func (p *Provider) CurrentRate(h clk.Handle) uint32 {
	return h.(*Clock).RateHz
}

// Trace renders the call log for debugging, e.g. "acquire 0; set_rate 0 1000000".
func (p *Provider) Trace() string {
	s := ""
	for i, c := range p.calls {
		if i > 0 {
			s += "; "
		}
		s += string(c.Op) + " " + strconv.Itoa(c.Ordinal)
		if c.Op == OpSetRate {
			s += " " + strconv.FormatUint(uint64(c.Hz), 10)
		}
	}
	return s
}
