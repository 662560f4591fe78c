// Command clksim runs the clock bring-up controller on the host against
// the simulated provider. It is the bench tool: point it at a clock set
// YAML (or use the embedded demo set), optionally inject a failure, and
// watch the probe and teardown on stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clockcode-go/bus"
	"clockcode-go/drivers/clk/sim"
	"clockcode-go/services/clkhal"
	"clockcode-go/services/config"
	"clockcode-go/types"
	"clockcode-go/x/hz"
)

func main() {
	var (
		cfgPath     = flag.String("config", "", "clock set YAML file (default: embedded demo set)")
		failAcquire = flag.Int("fail-acquire", sim.None, "ordinal whose acquire fails")
		failRate    = flag.Int("fail-rate", sim.None, "ordinal whose set_rate fails")
		failEnable  = flag.Int("fail-enable", sim.None, "ordinal whose enable fails")
		hold        = flag.Duration("hold", 2*time.Second, "how long to hold the clocks up before teardown")
	)
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b := bus.NewBus(16)
	halConn := b.NewConnection("clkhal")
	uiConn := b.NewConnection("ui")

	mon := uiConn.Subscribe(bus.T("clkhal", "#"))
	go monitor(mon)

	simCfg := sim.DefaultConfig()
	simCfg.FailAcquire = *failAcquire
	simCfg.FailSetRate = *failRate
	simCfg.FailEnable = *failEnable
	prov := sim.New(simCfg)

	done := make(chan struct{})
	go func() {
		clkhal.Run(ctx, halConn, prov)
		close(done)
	}()

	if err := publishConfig(ctx, b, *cfgPath); err != nil {
		fmt.Fprintln(os.Stderr, "clksim:", err)
		os.Exit(1)
	}

	select {
	case <-time.After(*hold):
		cancel()
	case <-ctx.Done():
	}
	<-done

	// Let the monitor drain the teardown traffic.
	time.Sleep(50 * time.Millisecond)
	fmt.Println("[clksim] provider trace:", prov.Trace())
}

// publishConfig puts the clock set on "config/clk": either a YAML file, or
// the embedded demo config via the config service.
func publishConfig(ctx context.Context, b *bus.Bus, path string) error {
	if path == "" {
		svc := config.NewConfigService()
		ctx = context.WithValue(ctx, config.CtxDeviceKey, "sim")
		return svc.Start(ctx, b.NewConnection("config"))
	}

	cfg, err := config.LoadClockSetFile(path)
	if err != nil {
		return err
	}
	conn := b.NewConnection("config")
	conn.Publish(conn.NewMessage(bus.Topic{"config", "clk"}, *cfg, true))
	return nil
}

func monitor(sub *bus.Subscription) {
	for m := range sub.Channel() {
		switch p := m.Payload.(type) {
		case types.ClkHALState:
			if p.Error != "" {
				fmt.Printf("[monitor] %s level=%s status=%s error=%q\n", m.Topic, p.Level, p.Status, p.Error)
			} else {
				fmt.Printf("[monitor] %s level=%s status=%s\n", m.Topic, p.Level, p.Status)
			}
		case types.ClockState:
			fmt.Printf("[monitor] %s enabled=%v target=%s\n", m.Topic, p.Enabled, hz.Format(p.TargetHz))
		case types.ClockEvent:
			if p.Event == "enabled" {
				fmt.Printf("[monitor] %s %s actual=%s\n", m.Topic, p.Event, hz.Format(p.ActualHz))
			} else {
				fmt.Printf("[monitor] %s %s\n", m.Topic, p.Event)
			}
		default:
			fmt.Printf("[monitor] %s %v\n", m.Topic, m.Payload)
		}
	}
}
