package pubsub

import (
	"context"
	"encoding/json"
)

// Event represents a pub/sub event
type Event struct {
	Topic   string          `json:"topic"`   // Subscription topic (e.g., "scan_status", "scan_result")
	Type    string          `json:"type"`    // Event type (e.g., "scanning", "ready", "rescan")
	Data    json.RawMessage `json:"data"`    // Event payload
	Version int             `json:"version"` // Version number for ordering
}

// Subscription represents a client subscription to a topic
type Subscription interface {
	// Topic returns the subscription topic
	Topic() string

	// Events returns a channel for receiving events
	Events() <-chan Event

	// Close closes the subscription
	Close() error
}

// Publisher manages pub/sub subscriptions and event publishing
type Publisher interface {
	// Subscribe creates a new subscription to a topic
	// Context cancellation will close the subscription
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions
	Close() error
}

// ScanStatus represents the state of the current discovery run
type ScanStatus struct {
	State       string `json:"state"`       // idle, scanning, ready, error
	Message     string `json:"message"`     // Human-readable status message
	Solutions   int    `json:"solutions"`   // Solutions found so far
	Diagnostics int    `json:"diagnostics"` // Diagnostics recorded so far
}

// ScanResultData summarizes a completed scan for subscribers
type ScanResultData struct {
	Solutions   int  `json:"solutions"`
	Projects    int  `json:"projects"`
	CodeFiles   int  `json:"code_files"`
	Diagnostics int  `json:"diagnostics"`
	Complete    bool `json:"complete"`
}
