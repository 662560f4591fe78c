package clk

import "clockcode-go/errcode"

// Config mirrors what the device's configuration source hands the probe
// path: how many clocks are attached, and their target rates in ordinal
// order. Count and TargetsHz come from distinct config properties, so the
// lengths can disagree; Initialize reports that as a config error.
type Config struct {
	Count     int
	TargetsHz []uint32
}

// Validate rejects rates the provider could never confirm.
func (c Config) Validate() error {
	if c.Count < 0 {
		return &errcode.E{C: errcode.InvalidConfig, Clock: errcode.NoClock, Op: "clk.validate"}
	}
	for i, hz := range c.TargetsHz {
		if hz == 0 {
			return &errcode.E{C: errcode.InvalidConfig, Clock: i, Op: "clk.validate"}
		}
	}
	return nil
}

// Controller owns the ordered descriptor set for one device attachment.
// Initialize is the probe path, Shutdown the remove path. Neither is safe
// for concurrent use; the owning lifecycle calls each at most once.
type Controller struct {
	prov   Provider
	cfg    Config
	clocks []*Descriptor
}

func NewController(prov Provider, cfg Config) *Controller {
	return &Controller{prov: prov, cfg: cfg}
}

// Clocks returns the descriptor set in ordinal order. Empty until
// Initialize has acquired the set.
func (c *Controller) Clocks() []*Descriptor { return c.clocks }

// Initialize acquires every configured clock and enables them in ascending
// ordinal order. The first failure aborts the whole pass with that clock's
// error. Clocks enabled before the failure stay running: partially up
// hardware beats fully down hardware in a bring-up tool, and the caller's
// Shutdown still reaches them.
//
// Acquisition is all-or-nothing: on an early abort every handle acquired so
// far is released before returning, so a failed probe holds no resources
// beyond the enabled clocks.
func (c *Controller) Initialize() error {
	n := c.cfg.Count
	if n == 0 {
		return &errcode.E{C: errcode.NoClocksConfigured, Clock: errcode.NoClock, Op: "clk.initialize"}
	}

	handles := make([]Handle, 0, n)
	for i := 0; i < n; i++ {
		h, err := c.prov.Acquire(i)
		if err != nil {
			c.releaseAll(handles)
			return &errcode.E{C: errcode.ClockAcquisitionFailed, Clock: i, Op: "clk.initialize", Err: err}
		}
		handles = append(handles, h)
	}

	if len(c.cfg.TargetsHz) != n {
		c.releaseAll(handles)
		return &errcode.E{C: errcode.FrequencyConfigMissing, Clock: errcode.NoClock, Op: "clk.initialize"}
	}

	clocks := make([]*Descriptor, n)
	for i := range clocks {
		clocks[i] = newDescriptor(i, c.cfg.TargetsHz[i], handles[i], c.prov)
	}
	c.clocks = clocks

	for _, d := range clocks {
		if _, err := d.Enable(); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown disables every descriptor in ascending ordinal order and returns
// the handles to the provider. Safe on a controller whose Initialize never
// ran or aborted partway: it acts on whatever descriptors exist. It cannot
// fail.
func (c *Controller) Shutdown() {
	for _, d := range c.clocks {
		d.Disable()
		c.prov.Release(d.handle)
	}
	c.clocks = nil
}

func (c *Controller) releaseAll(handles []Handle) {
	for _, h := range handles {
		c.prov.Release(h)
	}
}
