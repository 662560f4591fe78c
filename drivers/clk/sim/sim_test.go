package sim

import "testing"

func TestFailureInjection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FailSetRate = 1
	p := New(cfg)

	h0, err := p.Acquire(0)
	if err != nil {
		t.Fatalf("acquire 0: %v", err)
	}
	h1, err := p.Acquire(1)
	if err != nil {
		t.Fatalf("acquire 1: %v", err)
	}

	if err := p.SetRate(h0, 1000); err != nil {
		t.Fatalf("set_rate 0: %v", err)
	}
	if err := p.SetRate(h1, 2000); err == nil {
		t.Fatal("set_rate 1 should fail")
	}
	if got := p.CurrentRate(h1); got != 0 {
		t.Fatalf("failed set_rate must not change the rate, got %d", got)
	}
}

func TestCallRecording(t *testing.T) {
	p := New(DefaultConfig())

	h, _ := p.Acquire(0)
	_ = p.SetRate(h, 1000)
	_ = p.Enable(h)
	p.Disable(h)
	p.Release(h)

	want := "acquire 0; set_rate 0 1000; enable 0; disable 0; release 0"
	if got := p.Trace(); got != want {
		t.Fatalf("Trace() = %q, want %q", got, want)
	}
	if p.Clock(0).EnableCount != 0 || p.Clock(0).Acquired {
		t.Fatalf("clock state after teardown: %+v", p.Clock(0))
	}
}
