package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event is a notification about analyzer activity.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`

	AnalysisID string                 `json:"analysis_id,omitempty"`
	URN        string                 `json:"urn,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

const (
	EventTypeAnalysisCompleted = "analysis.completed"
	EventTypePolicyViolation   = "policy.violation"
	EventTypePackLoaded        = "pack.loaded"
	EventTypePackReloadFailed  = "pack.reload_failed"
)

const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

var (
	errPublisherStopped = errors.New("event publisher stopped")
	errBufferFull       = errors.New("event buffer full, event dropped")
)

// EventSubscriber handles a delivered event.
type EventSubscriber func(event Event)

// EventFilter reports whether an event should be delivered.
type EventFilter func(event Event) bool

type subscription struct {
	fn     EventSubscriber
	filter EventFilter
}

// EventPublisher fans events out to subscribers, in subscription order.
// A nil *EventPublisher, or one created disabled, drops every event.
type EventPublisher struct {
	config EventsConfig

	mu      sync.RWMutex
	subs    []subscription
	filters []EventFilter

	queue   chan Event
	stopped chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewEventPublisher creates a publisher. With EnableAsync, events are queued
// and delivered in batches from one background goroutine.
func NewEventPublisher(cfg EventsConfig) (*EventPublisher, error) {
	ep := &EventPublisher{config: cfg}
	if !cfg.Enabled || !cfg.EnableAsync {
		return ep, nil
	}

	if cfg.BufferSize <= 0 {
		return nil, fmt.Errorf("event buffer size must be positive, got %d", cfg.BufferSize)
	}
	if ep.config.MaxBatchSize <= 0 {
		ep.config.MaxBatchSize = 1
	}
	if ep.config.FlushInterval <= 0 {
		ep.config.FlushInterval = time.Second
	}

	ep.queue = make(chan Event, cfg.BufferSize)
	ep.stopped = make(chan struct{})
	ep.done = make(chan struct{})
	go ep.run()

	return ep, nil
}

func (ep *EventPublisher) active() bool {
	return ep != nil && ep.config.Enabled
}

// Publish fills in ID and Timestamp, applies the global filters and
// delivers or queues the event.
func (ep *EventPublisher) Publish(event Event) error {
	if !ep.active() {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	ep.mu.RLock()
	for _, keep := range ep.filters {
		if !keep(event) {
			ep.mu.RUnlock()
			return nil
		}
	}
	ep.mu.RUnlock()

	if ep.queue == nil {
		ep.deliver(event)
		return nil
	}

	select {
	case <-ep.stopped:
		return errPublisherStopped
	default:
	}
	select {
	case ep.queue <- event:
		return nil
	default:
		return errBufferFull
	}
}

// PublishPolicyViolation publishes one diagnostic. Mandatory violations are
// error level, advisory ones warnings.
func (ep *EventPublisher) PublishPolicyViolation(analysisID, urn, policy, enforcementLevel, message string) error {
	level := EventLevelWarning
	if enforcementLevel == "mandatory" {
		level = EventLevelError
	}
	return ep.Publish(Event{
		Type:       EventTypePolicyViolation,
		Source:     "policy_engine",
		Level:      level,
		Message:    fmt.Sprintf("Policy %s violated: %s", policy, message),
		AnalysisID: analysisID,
		URN:        urn,
		Data:       map[string]interface{}{"policy": policy, "enforcement_level": enforcementLevel},
	})
}

// PublishAnalysisCompleted publishes the summary of one analysis call.
func (ep *EventPublisher) PublishAnalysisCompleted(analysisID, method string, resources, diagnostics int, duration time.Duration) error {
	return ep.Publish(Event{
		Type:       EventTypeAnalysisCompleted,
		Source:     "analyzer",
		Level:      EventLevelInfo,
		Message:    fmt.Sprintf("%s completed with %d diagnostics for %d resources", method, diagnostics, resources),
		AnalysisID: analysisID,
		Data: map[string]interface{}{
			"method":      method,
			"resources":   resources,
			"diagnostics": diagnostics,
			"duration":    duration.Seconds(),
		},
	})
}

// PublishPackLoaded publishes a successful pack (re)load.
func (ep *EventPublisher) PublishPackLoaded(pack, version string, policies int) error {
	return ep.Publish(Event{
		Type:    EventTypePackLoaded,
		Source:  "policy_loader",
		Level:   EventLevelInfo,
		Message: fmt.Sprintf("Policy pack %s@%s loaded with %d policies", pack, version, policies),
		Data:    map[string]interface{}{"pack": pack, "version": version, "policies": policies},
	})
}

// PublishPackReloadFailed publishes a failed reload; the previous pack stays active.
func (ep *EventPublisher) PublishPackReloadFailed(dir, reason string) error {
	return ep.Publish(Event{
		Type:    EventTypePackReloadFailed,
		Source:  "policy_loader",
		Level:   EventLevelError,
		Message: fmt.Sprintf("Reload of %s failed: %s", dir, reason),
		Data:    map[string]interface{}{"dir": dir, "reason": reason},
	})
}

// Subscribe adds a subscriber. filter may be nil.
func (ep *EventPublisher) Subscribe(fn EventSubscriber, filter EventFilter) {
	if ep == nil {
		return
	}
	ep.mu.Lock()
	ep.subs = append(ep.subs, subscription{fn: fn, filter: filter})
	ep.mu.Unlock()
}

// AddFilter adds a filter every published event must pass.
func (ep *EventPublisher) AddFilter(filter EventFilter) {
	if ep == nil {
		return
	}
	ep.mu.Lock()
	ep.filters = append(ep.filters, filter)
	ep.mu.Unlock()
}

// deliver calls subscribers outside the lock so a subscriber may subscribe.
func (ep *EventPublisher) deliver(event Event) {
	ep.mu.RLock()
	subs := ep.subs
	ep.mu.RUnlock()

	for _, s := range subs {
		if s.filter == nil || s.filter(event) {
			s.fn(event)
		}
	}
}

func (ep *EventPublisher) run() {
	defer close(ep.done)

	ticker := time.NewTicker(ep.config.FlushInterval)
	defer ticker.Stop()

	batch := make([]Event, 0, ep.config.MaxBatchSize)
	flush := func() {
		for _, e := range batch {
			ep.deliver(e)
		}
		batch = batch[:0]
	}

	for {
		select {
		case e := <-ep.queue:
			if batch = append(batch, e); len(batch) >= ep.config.MaxBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-ep.stopped:
			for {
				select {
				case e := <-ep.queue:
					batch = append(batch, e)
				default:
					flush()
					return
				}
			}
		}
	}
}

// Shutdown stops accepting events and waits until queued ones are delivered.
func (ep *EventPublisher) Shutdown(ctx context.Context) error {
	if !ep.active() || ep.queue == nil {
		return nil
	}

	ep.once.Do(func() { close(ep.stopped) })
	select {
	case <-ep.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event publisher shutdown: %w", ctx.Err())
	}
}

func levelRank(level string) int {
	switch level {
	case EventLevelError:
		return 2
	case EventLevelWarning:
		return 1
	default:
		return 0
	}
}

// FilterByLevel allows events of minLevel or higher.
func FilterByLevel(minLevel string) EventFilter {
	floor := levelRank(minLevel)
	return func(e Event) bool { return levelRank(e.Level) >= floor }
}

// FilterByType allows events of the given types.
func FilterByType(types ...string) EventFilter {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}
	return func(e Event) bool {
		_, ok := allowed[e.Type]
		return ok
	}
}

// FilterByURN allows events about one resource.
func FilterByURN(urn string) EventFilter {
	return func(e Event) bool { return e.URN == urn }
}

// LogSubscriber writes events to logger: info events at debug level,
// warnings at warn and errors at error.
func LogSubscriber(logger zerolog.Logger) EventSubscriber {
	return func(e Event) {
		var entry *zerolog.Event
		switch e.Level {
		case EventLevelError:
			entry = logger.Error()
		case EventLevelWarning:
			entry = logger.Warn()
		default:
			entry = logger.Debug()
		}
		entry = entry.Str("event", e.Type).Str("event_id", e.ID)
		if e.AnalysisID != "" {
			entry = entry.Str("analysis_id", e.AnalysisID)
		}
		if e.URN != "" {
			entry = entry.Str("urn", e.URN)
		}
		entry.Fields(e.Data).Msg(e.Message)
	}
}
