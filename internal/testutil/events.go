package testutil

import "council/internal/council"

// Drain collects every event from a stream until it closes.
func Drain(events <-chan council.Event) []council.Event {
	var collected []council.Event
	for event := range events {
		collected = append(collected, event)
	}
	return collected
}

// OfType filters events by type, preserving order.
func OfType(events []council.Event, eventType council.EventType) []council.Event {
	var matched []council.Event
	for _, event := range events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

// Last returns the final event, or a zero event for empty streams.
func Last(events []council.Event) council.Event {
	if len(events) == 0 {
		return council.Event{}
	}
	return events[len(events)-1]
}
