// services/clkhal/clkhal.go
package clkhal

import (
	"context"
	"encoding/json"
	"time"

	"clockcode-go/bus"
	"clockcode-go/drivers/clk"
	"clockcode-go/errcode"
	"clockcode-go/types"
)

// -----------------------------------------------------------------------------
// Entry point
// -----------------------------------------------------------------------------

// Run owns one clock set controller for this device attachment. It waits
// for "config/clk", runs the probe path, and tears the set down when ctx
// ends. Dynamic reconfiguration is out of scope: a second config while a
// set is up is acknowledged and ignored.
func Run(ctx context.Context, conn *bus.Connection, prov clk.Provider) {
	s := &service{
		conn: conn,
		prov: prov,
	}
	s.loop(ctx)
}

type service struct {
	conn *bus.Connection
	prov clk.Provider

	ctrl  *clk.Controller
	names []string // per-ordinal clock names from config, diagnostics only
	level string
}

// -----------------------------------------------------------------------------
// Main loop
// -----------------------------------------------------------------------------

func (s *service) loop(ctx context.Context) {
	cfgSub := s.conn.Subscribe(bus.Topic{"config", "clk"})
	ctrlSub := s.conn.Subscribe(bus.Topic{"clkhal", "control", "+"})
	defer s.conn.Unsubscribe(cfgSub)
	defer s.conn.Unsubscribe(ctrlSub)

	s.publishState("idle", "awaiting_config", nil)

	for {
		select {
		case <-ctx.Done():
			s.teardown()
			s.publishState("stopped", "context_cancelled", nil)
			return

		case msg := <-cfgSub.Channel():
			if s.ctrl != nil {
				s.publishState(s.level, "already_configured", nil)
				continue
			}
			var cfg types.ClockSetConfig
			if err := decodeJSON(msg.Payload, &cfg); err != nil {
				s.publishState("error", "config_decode_failed", err)
				continue
			}
			if err := cfg.Validate(); err != nil {
				s.publishState("error", "config_invalid", err)
				continue
			}
			s.apply(cfg)

		case msg := <-ctrlSub.Channel():
			// clkhal/control/<verb>
			if len(msg.Topic) < 3 {
				continue
			}
			verb, _ := msg.Topic[2].(string)
			s.handleControl(verb, msg)
		}
	}
}

// -----------------------------------------------------------------------------
// Probe / remove
// -----------------------------------------------------------------------------

func (s *service) apply(cfg types.ClockSetConfig) {
	s.names = make([]string, len(cfg.Clocks))
	for i, spec := range cfg.Clocks {
		s.names[i] = spec.Name
	}

	ctrl := clk.NewController(s.prov, clk.Config{
		Count:     len(cfg.Clocks),
		TargetsHz: cfg.TargetsHz(),
	})
	// Keep the controller even when the probe fails partway: teardown must
	// still reach whatever got enabled.
	s.ctrl = ctrl

	err := ctrl.Initialize()

	now := time.Now().UnixMilli()
	for _, d := range ctrl.Clocks() {
		s.pubRet(clockTopic(d.ID(), "state"), s.clockState(d, now))
		if d.Enabled() {
			s.conn.Publish(s.conn.NewMessage(
				clockTopic(d.ID(), "event"),
				types.ClockEvent{Event: "enabled", ActualHz: d.ActualHz(), TS: now},
				false,
			))
		}
	}

	if err != nil {
		s.publishState("error", string(errcode.Of(err)), err)
		return
	}
	s.publishState("ready", "clocks_enabled", nil)
}

// teardown disables and releases the whole set. Always succeeds.
func (s *service) teardown() {
	if s.ctrl == nil {
		return
	}
	clocks := s.ctrl.Clocks()
	wasEnabled := make([]bool, len(clocks))
	for i, d := range clocks {
		wasEnabled[i] = d.Enabled()
	}

	s.ctrl.Shutdown()

	now := time.Now().UnixMilli()
	for i, d := range clocks {
		s.pubRet(clockTopic(d.ID(), "state"), s.clockState(d, now))
		if wasEnabled[i] {
			s.conn.Publish(s.conn.NewMessage(
				clockTopic(d.ID(), "event"),
				types.ClockEvent{Event: "disabled", TS: now},
				false,
			))
		}
	}
	s.ctrl = nil
	s.names = nil
}

// -----------------------------------------------------------------------------
// Control verbs
// -----------------------------------------------------------------------------

func (s *service) handleControl(verb string, msg *bus.Message) {
	switch verb {
	case "status":
		now := time.Now().UnixMilli()
		reply := types.StatusReply{OK: true, Level: s.level}
		if s.ctrl != nil {
			for _, d := range s.ctrl.Clocks() {
				reply.Clocks = append(reply.Clocks, s.clockState(d, now))
			}
		}
		s.conn.Reply(msg, reply, false)

	case "shutdown":
		s.teardown()
		s.publishState("idle", "shut_down", nil)
		s.replyOK(msg, nil)

	default:
		s.replyErr(msg, string(errcode.Unsupported))
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func (s *service) clockState(d *clk.Descriptor, ts int64) types.ClockState {
	name := ""
	if d.ID() < len(s.names) {
		name = s.names[d.ID()]
	}
	return types.ClockState{
		ID:       d.ID(),
		Name:     name,
		Enabled:  d.Enabled(),
		TargetHz: d.TargetHz(),
		ActualHz: d.ActualHz(),
		TS:       ts,
	}
}

func (s *service) publishState(level, status string, err error) {
	s.level = level
	st := types.ClkHALState{Level: level, Status: status, TS: time.Now().UnixMilli()}
	if err != nil {
		st.Error = err.Error()
	}
	s.conn.Publish(s.conn.NewMessage(bus.Topic{"clkhal", "state"}, st, true))
}

func (s *service) pubRet(topic bus.Topic, payload any) {
	s.conn.Publish(s.conn.NewMessage(topic, payload, true))
}

func (s *service) replyOK(req *bus.Message, extra map[string]any) {
	if len(req.ReplyTo) == 0 {
		return
	}
	m := map[string]any{"ok": true}
	for k, v := range extra {
		m[k] = v
	}
	s.conn.Reply(req, m, false)
}

func (s *service) replyErr(req *bus.Message, e string) {
	if len(req.ReplyTo) == 0 {
		return
	}
	s.conn.Reply(req, map[string]any{"ok": false, "error": e}, false)
}

func clockTopic(id int, rest ...bus.Token) bus.Topic {
	base := bus.Topic{"clkhal", "clock", id}
	return append(base, rest...)
}

// decodeJSON round-trips an in-process payload (typed struct or generic
// map) into the target type.
func decodeJSON(payload any, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
