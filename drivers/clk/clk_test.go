package clk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clockcode-go/drivers/clk"
	"clockcode-go/drivers/clk/sim"
)

// Descriptor-level behaviour, reached through an initialized controller.

func TestEnableIsIdempotent(t *testing.T) {
	prov := sim.New(sim.DefaultConfig())
	ctrl := newSet(t, prov, 1_000_000)
	require.NoError(t, ctrl.Initialize())

	d := ctrl.Clocks()[0]
	before := len(prov.Calls())

	hz, err := d.Enable()
	require.NoError(t, err)
	assert.Equal(t, uint32(1_000_000), hz)
	assert.Len(t, prov.Calls(), before, "redundant Enable must make no provider calls")
	assert.Equal(t, 1, prov.Clock(0).EnableCount)
}

func TestDisableIsIdempotent(t *testing.T) {
	prov := sim.New(sim.DefaultConfig())
	ctrl := newSet(t, prov, 1_000_000)
	require.NoError(t, ctrl.Initialize())

	d := ctrl.Clocks()[0]
	d.Disable()
	d.Disable()

	var disables int
	for _, c := range prov.Calls() {
		if c.Op == sim.OpDisable {
			disables++
		}
	}
	assert.Equal(t, 1, disables, "second Disable must be a no-op")
	assert.False(t, d.Enabled())
	assert.Zero(t, d.ActualHz())
}

func TestEnableAfterDisable(t *testing.T) {
	prov := sim.New(sim.DefaultConfig())
	ctrl := newSet(t, prov, 1_000_000)
	require.NoError(t, ctrl.Initialize())

	d := ctrl.Clocks()[0]
	d.Disable()

	hz, err := d.Enable()
	require.NoError(t, err)
	assert.Equal(t, uint32(1_000_000), hz)
	assert.True(t, d.Enabled())
	assert.Equal(t, 1, prov.Clock(0).EnableCount, "re-enable must not stack")
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, clk.Config{Count: 2, TargetsHz: []uint32{1, 2}}.Validate())
	assert.Error(t, clk.Config{Count: 1, TargetsHz: []uint32{0}}.Validate())
	assert.Error(t, clk.Config{Count: -1}.Validate())
}
