package service

import (
	"time"

	"github.com/itsatony/airsense/internal/errors"
	"github.com/itsatony/airsense/internal/repository"
	"github.com/itsatony/airsense/internal/telemetry"
	nuts "github.com/vaudience/go-nuts"
)

const (
	// EventReadingRecorded is emitted with the stored reading's labels
	EventReadingRecorded = "reading.recorded"
	// EventQueryFailed is emitted when an aggregation query hits a store error
	EventQueryFailed = "query.failed"
)

// Service is the aggregation façade over the Reading Store and Device Directory
type Service struct {
	readings repository.ReadingRepository
	devices  repository.DeviceRepository
	window   time.Duration
	now      func() time.Time
	events   *nuts.EventEmitter
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces the wall clock used for the rollup window.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithWindow sets the trailing window of the hourly rollup.
func WithWindow(window time.Duration) Option {
	return func(s *Service) {
		if window > 0 {
			s.window = window
		}
	}
}

// New creates a new service instance
func New(readings repository.ReadingRepository, devices repository.DeviceRepository, opts ...Option) *Service {
	s := &Service{
		readings: readings,
		devices:  devices,
		window:   telemetry.DefaultWindow,
		now:      time.Now,
		events:   nuts.NewEventEmitter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks if all required repositories are initialized
func (s *Service) Validate() error {
	if s.readings == nil {
		return ErrMissingRepository("readings")
	}
	if s.devices == nil {
		return ErrMissingRepository("devices")
	}
	return nil
}

// OnEvent registers a handler for service events
func (s *Service) OnEvent(event string, handler func(labels map[string]string)) {
	s.events.On(event, nuts.NID("lsn", 8), func(args ...interface{}) {
		if len(args) > 0 {
			if labels, ok := args[0].(map[string]string); ok {
				handler(labels)
			}
		}
	})
}

func (s *Service) emit(event string, labels map[string]string) {
	s.events.Emit(event, labels)
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}
