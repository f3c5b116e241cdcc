package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/reelgate/ledger/plan"
	"github.com/reelgate/ledger/types"
)

type namedPlugin struct{ name string }

func (p *namedPlugin) Name() string { return p.name }

type subscribedRecorder struct {
	namedPlugin
	events []SubscribedEvent
	err    error
}

func (p *subscribedRecorder) OnSubscribed(_ context.Context, ev SubscribedEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&namedPlugin{name: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&namedPlugin{name: "a"}); err == nil {
		t.Fatal("expected error for duplicate name")
	}
	if r.Count() != 1 {
		t.Errorf("count: got %d, want 1", r.Count())
	}
}

func TestGetAndList(t *testing.T) {
	r := NewRegistry()
	p := &namedPlugin{name: "a"}
	if err := r.Register(p); err != nil {
		t.Fatal(err)
	}

	if got := r.Get("a"); got != p {
		t.Errorf("Get: got %v, want %v", got, p)
	}
	if got := r.Get("missing"); got != nil {
		t.Errorf("Get missing: got %v, want nil", got)
	}
	if got := r.List(); len(got) != 1 {
		t.Errorf("List: got %d plugins, want 1", len(got))
	}
}

func TestDispatchReachesOnlyImplementors(t *testing.T) {
	r := NewRegistry()

	rec := &subscribedRecorder{namedPlugin: namedPlugin{name: "recorder"}}
	if err := r.Register(rec); err != nil {
		t.Fatal(err)
	}
	// A plugin without the hook is skipped, not an error.
	if err := r.Register(&namedPlugin{name: "inert"}); err != nil {
		t.Fatal(err)
	}

	ev := SubscribedEvent{Identity: "alice", Plan: plan.Basic, Amount: plan.BasicPrice}
	r.EmitSubscribed(context.Background(), ev)

	if len(rec.events) != 1 {
		t.Fatalf("events: got %d, want 1", len(rec.events))
	}
	if rec.events[0].Identity != "alice" {
		t.Errorf("event identity: got %q", rec.events[0].Identity)
	}
}

func TestDispatchSurvivesPluginErrors(t *testing.T) {
	r := NewRegistry()

	failing := &subscribedRecorder{namedPlugin: namedPlugin{name: "failing"}, err: errors.New("boom")}
	healthy := &subscribedRecorder{namedPlugin: namedPlugin{name: "healthy"}}
	if err := r.Register(failing); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(healthy); err != nil {
		t.Fatal(err)
	}

	r.EmitSubscribed(context.Background(), SubscribedEvent{
		Identity: "alice",
		Plan:     plan.Premium,
		Amount:   types.Wei(5_000_000_000_000_000),
	})

	// The failing plugin must not block delivery to the healthy one.
	if len(healthy.events) != 1 {
		t.Errorf("healthy events: got %d, want 1", len(healthy.events))
	}
}
