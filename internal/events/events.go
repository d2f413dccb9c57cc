// Package events provides an event system for harness lifecycle notifications.
package events

import "time"

// EventType represents the type of event
type EventType string

const (
	// EventRunStarted is emitted when the harness starts its components
	EventRunStarted EventType = "run_started"
	// EventRunFinished is emitted after all components have been joined
	EventRunFinished EventType = "run_finished"
	// EventGeneratorDone is emitted when the task generator finishes
	EventGeneratorDone EventType = "generator_done"
	// EventShutdown is emitted when the shutdown token is triggered
	EventShutdown EventType = "shutdown"
)

// Event represents a harness lifecycle event
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      EventData `json:"data,omitempty"`
}

// EventData contains event-specific data
type EventData struct {
	Reason    string `json:"reason,omitempty"`
	Generated int64  `json:"generated,omitempty"`
	Completed int64  `json:"completed,omitempty"`
	Failed    int64  `json:"failed,omitempty"`
}

// NewRunStartedEvent creates a run started event
func NewRunStartedEvent() Event {
	return Event{
		Type:      EventRunStarted,
		Timestamp: time.Now(),
	}
}

// NewRunFinishedEvent creates a run finished event with final counters
func NewRunFinishedEvent(completed, failed int64) Event {
	return Event{
		Type:      EventRunFinished,
		Timestamp: time.Now(),
		Data: EventData{
			Completed: completed,
			Failed:    failed,
		},
	}
}

// NewGeneratorDoneEvent creates a generator completion event
func NewGeneratorDoneEvent(generated int64) Event {
	return Event{
		Type:      EventGeneratorDone,
		Timestamp: time.Now(),
		Data: EventData{
			Generated: generated,
		},
	}
}

// NewShutdownEvent creates a shutdown event with the trigger reason
func NewShutdownEvent(reason string) Event {
	return Event{
		Type:      EventShutdown,
		Timestamp: time.Now(),
		Data: EventData{
			Reason: reason,
		},
	}
}
