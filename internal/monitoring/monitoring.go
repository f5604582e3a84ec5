package monitoring

import (
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// Config holds monitoring configuration
type Config struct {
	LogLevel string
}

// Service provides monitoring functionality
type Service struct {
	config Config

	mu     sync.Mutex
	events map[string][]time.Time
	now    func() time.Time
}

// EventSource is anything that publishes labelled events
type EventSource interface {
	OnEvent(event string, handler func(labels map[string]string))
}

// NewService creates a new monitoring service
func NewService(config Config) *Service {
	return &Service{
		config: config,
		events: make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Subscribe records every named event published by source.
func (s *Service) Subscribe(source EventSource, events ...string) {
	for _, event := range events {
		name := event
		source.OnEvent(name, func(labels map[string]string) {
			s.RecordEvent(name, labels)
		})
	}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	ts := s.now()

	s.mu.Lock()
	s.events[eventName] = append(s.events[eventName], ts)
	s.mu.Unlock()

	if s.config.LogLevel == "debug" {
		nuts.L.Debugf("[Monitoring] Event %s recorded at %v with labels: %v", eventName, ts, labels)
	}
}

// GetEventMetrics returns how often eventType was recorded within the last duration.
// Older entries are pruned.
func (s *Service) GetEventMetrics(eventType string, duration time.Duration) (map[string]int64, error) {
	cutoff := s.now().Add(-duration)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[eventType][:0]
	for _, ts := range s.events[eventType] {
		if !ts.Before(cutoff) {
			kept = append(kept, ts)
		}
	}
	s.events[eventType] = kept

	return map[string]int64{eventType: int64(len(kept))}, nil
}
