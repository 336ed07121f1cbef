package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/mark3labs/promptdiff/internal/errors"
	"github.com/mark3labs/promptdiff/internal/logger"
	"github.com/mark3labs/promptdiff/internal/selection"
)

const (
	selectionBucket = "promptdiff_selection"
	eventStream     = "PROMPTDIFF"
	eventSubjects   = "promptdiff.events.>"

	// maxEvents caps the event log; older entries are dropped by JetStream.
	maxEvents = 1000
)

// Event kinds recorded in the compare log.
const (
	EventSelect    = "select"
	EventCompare   = "compare"
	EventLoadError = "load_error"
)

// Event is one entry in the compare log.
type Event struct {
	Time   time.Time `json:"time"`
	Host   string    `json:"host"`
	Kind   string    `json:"kind"`
	From   string    `json:"from,omitempty"`
	To     string    `json:"to,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// Store provides access to persisted selections and the event log.
type Store struct {
	js     jetstream.JetStream
	kv     jetstream.KeyValue
	stream jetstream.Stream
}

// Open creates the JetStream resources the store needs. Bucket and stream
// creation are retried briefly because JetStream may still be electing
// its meta leader right after an embedded server starts.
func Open(ctx context.Context, nc *nats.Conn) (*Store, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	cfg := errors.DefaultRetryConfig()

	kv, err := errors.RetryWithResult(ctx, cfg, func() (jetstream.KeyValue, error) {
		return js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:      selectionBucket,
			Description: "last selection per data host",
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create selection bucket: %w", err)
	}

	stream, err := errors.RetryWithResult(ctx, cfg, func() (jetstream.Stream, error) {
		return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:        eventStream,
			Description: "compare event log",
			Subjects:    []string{eventSubjects},
			MaxMsgs:     maxEvents,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event stream: %w", err)
	}

	return &Store{js: js, kv: kv, stream: stream}, nil
}

// LoadSelection returns the saved selection for a data host. The second
// return is false when nothing has been saved yet.
func (s *Store) LoadSelection(ctx context.Context, host string) (selection.Selection, bool, error) {
	entry, err := s.kv.Get(ctx, hostKey(host))
	if err != nil {
		if err == jetstream.ErrKeyNotFound {
			return selection.Selection{}, false, nil
		}
		return selection.Selection{}, false, fmt.Errorf("failed to load selection: %w", err)
	}

	var sel selection.Selection
	if err := json.Unmarshal(entry.Value(), &sel); err != nil {
		// Unreadable state is treated the same as no state.
		logger.Warn("discarding unreadable saved selection for %s: %v", host, err)
		return selection.Selection{}, false, nil
	}
	return sel, true, nil
}

// SaveSelection persists the selection for a data host. Called on every
// selection change; the write replaces the previous value, mirroring a
// non-navigating history replace.
func (s *Store) SaveSelection(ctx context.Context, host string, sel selection.Selection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}
	if _, err := s.kv.Put(ctx, hostKey(host), data); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

// RecordEvent appends an entry to the compare log.
func (s *Store) RecordEvent(ctx context.Context, event Event) error {
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	subject := "promptdiff.events." + event.Kind
	if _, err := s.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// RecentEvents returns up to n most recent events, oldest first.
func (s *Store) RecentEvents(ctx context.Context, n int) ([]Event, error) {
	cons, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		AckPolicy:     jetstream.AckNonePolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	batch, err := cons.FetchNoWait(maxEvents)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	var events []Event
	for msg := range batch.Messages() {
		var event Event
		if err := json.Unmarshal(msg.Data(), &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	if err := batch.Error(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events, nil
}

// hostKey maps a data host to a KV key. JetStream keys cannot contain
// every character a host may, so anything outside the allowed set is
// folded to "_".
func hostKey(host string) string {
	if host == "" {
		return "default"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, host)
}
