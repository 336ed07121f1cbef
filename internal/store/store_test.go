package store

import (
	"context"
	"testing"

	"github.com/mark3labs/promptdiff/internal/selection"
)

// openTestStore starts an embedded NATS server in a temp dir and opens a
// store against it.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	srv, err := StartEmbedded(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to start NATS: %v", err)
	}
	t.Cleanup(srv.Shutdown)

	nc, err := ConnectInProcess(srv)
	if err != nil {
		t.Fatalf("Failed to connect to NATS: %v", err)
	}
	t.Cleanup(nc.Close)

	s, err := Open(context.Background(), nc)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	return s
}

func TestSelectionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Nothing saved yet.
	_, found, err := s.LoadSelection(ctx, "example.com")
	if err != nil {
		t.Fatalf("LoadSelection failed: %v", err)
	}
	if found {
		t.Error("expected no saved selection for fresh store")
	}

	sel := selection.Selection{From: "1.0.0", To: "1.1.0"}
	if err := s.SaveSelection(ctx, "example.com", sel); err != nil {
		t.Fatalf("SaveSelection failed: %v", err)
	}

	loaded, found, err := s.LoadSelection(ctx, "example.com")
	if err != nil {
		t.Fatalf("LoadSelection failed: %v", err)
	}
	if !found {
		t.Fatal("expected saved selection to be found")
	}
	if loaded != sel {
		t.Errorf("loaded %+v, want %+v", loaded, sel)
	}
}

func TestSelectionReplacedOnEveryChange(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, sel := range []selection.Selection{
		{From: "1.0.0", To: "2.0.0"},
		{From: "1.1.0", To: "2.0.0"},
		{From: "1.1.0", To: "1.1.0"},
	} {
		if err := s.SaveSelection(ctx, "example.com", sel); err != nil {
			t.Fatalf("SaveSelection failed: %v", err)
		}
	}

	loaded, found, err := s.LoadSelection(ctx, "example.com")
	if err != nil || !found {
		t.Fatalf("LoadSelection failed: found=%v err=%v", found, err)
	}
	want := selection.Selection{From: "1.1.0", To: "1.1.0"}
	if loaded != want {
		t.Errorf("loaded %+v, want latest write %+v", loaded, want)
	}
}

func TestSelectionPerHost(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := selection.Selection{From: "1.0.0", To: "1.1.0"}
	b := selection.Selection{From: "2.0.0", To: "2.0.0"}
	if err := s.SaveSelection(ctx, "a.example.com:8080", a); err != nil {
		t.Fatalf("SaveSelection failed: %v", err)
	}
	if err := s.SaveSelection(ctx, "b.example.com", b); err != nil {
		t.Fatalf("SaveSelection failed: %v", err)
	}

	loaded, _, err := s.LoadSelection(ctx, "a.example.com:8080")
	if err != nil {
		t.Fatalf("LoadSelection failed: %v", err)
	}
	if loaded != a {
		t.Errorf("host a: loaded %+v, want %+v", loaded, a)
	}
}

func TestEventLog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	events := []Event{
		{Host: "example.com", Kind: EventSelect, From: "1.0.0", To: "2.0.0"},
		{Host: "example.com", Kind: EventCompare, From: "1.0.0", To: "2.0.0"},
		{Host: "example.com", Kind: EventLoadError, Detail: "Failed to load diff"},
	}
	for _, e := range events {
		if err := s.RecordEvent(ctx, e); err != nil {
			t.Fatalf("RecordEvent failed: %v", err)
		}
	}

	got, err := s.RecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("RecentEvents failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if got[0].Kind != EventSelect || got[2].Kind != EventLoadError {
		t.Errorf("events out of order: %+v", got)
	}
	if got[0].Time.IsZero() {
		t.Error("expected RecordEvent to stamp missing times")
	}

	// A smaller window returns the most recent entries.
	tail, err := s.RecentEvents(ctx, 2)
	if err != nil {
		t.Fatalf("RecentEvents failed: %v", err)
	}
	if len(tail) != 2 || tail[0].Kind != EventCompare {
		t.Errorf("tail window wrong: %+v", tail)
	}
}

func TestHostKey(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"example.com", "example.com"},
		{"example.com:8080", "example.com_8080"},
		{"", "default"},
	}
	for _, tt := range tests {
		if got := hostKey(tt.host); got != tt.want {
			t.Errorf("hostKey(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}
