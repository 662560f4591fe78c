// Package clk drives a fixed set of clocks to their target rates during
// board bring-up and tears them down again on detach.
package clk

import "clockcode-go/errcode"

// Handle is an opaque reference to one provider clock resource. A handle is
// exclusively owned by the descriptor it was acquired for.
type Handle any

// Provider is the capability the controller drives. Implementations perform
// the actual rate-setting and gating; the reference implementation for host
// use lives in drivers/clk/sim.
type Provider interface {
	// Acquire claims the clock at the given ordinal.
	Acquire(ordinal int) (Handle, error)
	// Release returns a handle to the provider. Safe to call on a disabled
	// clock only; the controller never releases an enabled one.
	Release(h Handle)
	// SetRate requests the clock run at hz.
	SetRate(h Handle, hz uint32) error
	// Enable prepares and ungates the clock.
	Enable(h Handle) error
	// Disable gates and unprepares the clock. It has no error surface:
	// teardown must always complete.
	Disable(h Handle)
	// CurrentRate reads back the running rate. Diagnostics only, never used
	// for control decisions.
	CurrentRate(h Handle) uint32
}

// Descriptor is the controller's record of one managed clock: immutable
// identity and target rate, plus the enabled flag.
//
// A descriptor is either idle or enabled. Enabled implies the provider
// confirmed the target rate at enable time and holds exactly one enable for
// the handle, never a stacked count.
type Descriptor struct {
	id       int
	targetHz uint32
	enabled  bool
	actualHz uint32 // provider-confirmed at enable time
	handle   Handle
	prov     Provider
}

func newDescriptor(id int, targetHz uint32, h Handle, prov Provider) *Descriptor {
	return &Descriptor{id: id, targetHz: targetHz, handle: h, prov: prov}
}

func (d *Descriptor) ID() int          { return d.id }
func (d *Descriptor) TargetHz() uint32 { return d.targetHz }
func (d *Descriptor) Enabled() bool    { return d.enabled }

// ActualHz is the rate the provider confirmed at enable time, 0 while idle.
func (d *Descriptor) ActualHz() uint32 { return d.actualHz }

// Enable sets the clock's rate and ungates it. Calling it on an already
// enabled descriptor makes no provider calls and returns the confirmed rate.
//
// The rate is set before the clock is ungated; a rate failure leaves the
// clock untouched, an enable failure leaves the rate set but the descriptor
// idle.
func (d *Descriptor) Enable() (uint32, error) {
	if d.enabled {
		return d.actualHz, nil
	}

	if err := d.prov.SetRate(d.handle, d.targetHz); err != nil {
		return 0, &errcode.E{
			C:     errcode.RateSetFailed,
			Clock: d.id,
			Hz:    d.targetHz,
			Op:    "clk.enable",
			Err:   err,
		}
	}

	if err := d.prov.Enable(d.handle); err != nil {
		return 0, &errcode.E{
			C:     errcode.EnableFailed,
			Clock: d.id,
			Op:    "clk.enable",
			Err:   err,
		}
	}

	d.enabled = true
	d.actualHz = d.prov.CurrentRate(d.handle)
	return d.actualHz, nil
}

// Disable gates the clock. Idempotent, and never fails: any provider-level
// trouble stays below this line.
func (d *Descriptor) Disable() {
	if !d.enabled {
		return
	}
	d.prov.Disable(d.handle)
	d.enabled = false
	d.actualHz = 0
}
