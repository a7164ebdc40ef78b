package item

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType identifies the kind of activity event.
type EventType string

const (
	EventCreated          EventType = "CREATED"
	EventEdited           EventType = "EDITED"
	EventStatusChanged    EventType = "STATUS_CHANGED"
	EventFlagToggled      EventType = "FLAG_TOGGLED"
	EventIssueReported    EventType = "ISSUE_REPORTED"
	EventIssueUpdateAdded EventType = "ISSUE_UPDATE_ADDED"
	EventIssueResolved    EventType = "ISSUE_RESOLVED"
	EventNoteAdded        EventType = "NOTE_ADDED"
)

// ActivityEvent is one immutable entry in an item's audit trail. Events are
// only ever appended; within one item's log, timestamps are non-decreasing.
type ActivityEvent struct {
	Timestamp time.Time
	Type      EventType
	Details   EventDetails
}

// EventDetails is the variant payload of an ActivityEvent. Each event type
// carries only the fields relevant to it; CREATED carries nothing (nil).
type EventDetails interface {
	isEventDetails()
}

// StatusChanged records a status transition.
type StatusChanged struct {
	Previous Status `json:"previous_status"`
	New      Status `json:"new_status"`
}

// FlagToggled records the flag value after a toggle.
type FlagToggled struct {
	Flagged bool `json:"flagged"`
}

// IssueReported records the description entered when an issue was raised.
type IssueReported struct {
	Description string `json:"issue_description"`
}

// IssueResolved records the resolution outcome and an optional note.
type IssueResolved struct {
	Outcome string `json:"resolution_outcome"`
	Note    string `json:"note,omitempty"`
}

// Note carries the text of an issue update or a general note.
type Note struct {
	Note string `json:"note"`
}

// Edited lists the fields changed by an edit. Nil when the submitted
// payload matched the item's existing values.
type Edited struct {
	ChangedFields []string `json:"changed_fields,omitempty"`
}

func (StatusChanged) isEventDetails() {}
func (FlagToggled) isEventDetails()   {}
func (IssueReported) isEventDetails() {}
func (IssueResolved) isEventDetails() {}
func (Note) isEventDetails()          {}
func (Edited) isEventDetails()        {}

type eventJSON struct {
	Timestamp time.Time       `json:"timestamp"`
	Type      EventType       `json:"type"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// MarshalJSON encodes the event with its details keyed by the event type.
func (e ActivityEvent) MarshalJSON() ([]byte, error) {
	out := eventJSON{Timestamp: e.Timestamp, Type: e.Type}
	if e.Details != nil {
		raw, err := json.Marshal(e.Details)
		if err != nil {
			return nil, fmt.Errorf("encoding %s details: %w", e.Type, err)
		}
		out.Details = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the details variant matching the event type.
func (e *ActivityEvent) UnmarshalJSON(data []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Timestamp = raw.Timestamp
	e.Type = raw.Type
	e.Details = nil
	if len(raw.Details) == 0 {
		return nil
	}

	decode := func(v EventDetails) error {
		if err := json.Unmarshal(raw.Details, v); err != nil {
			return fmt.Errorf("decoding %s details: %w", raw.Type, err)
		}
		return nil
	}

	switch raw.Type {
	case EventCreated:
		// No payload.
	case EventStatusChanged:
		var d StatusChanged
		if err := decode(&d); err != nil {
			return err
		}
		e.Details = d
	case EventFlagToggled:
		var d FlagToggled
		if err := decode(&d); err != nil {
			return err
		}
		e.Details = d
	case EventIssueReported:
		var d IssueReported
		if err := decode(&d); err != nil {
			return err
		}
		e.Details = d
	case EventIssueResolved:
		var d IssueResolved
		if err := decode(&d); err != nil {
			return err
		}
		e.Details = d
	case EventIssueUpdateAdded, EventNoteAdded:
		var d Note
		if err := decode(&d); err != nil {
			return err
		}
		e.Details = d
	case EventEdited:
		var d Edited
		if err := decode(&d); err != nil {
			return err
		}
		e.Details = d
	default:
		return fmt.Errorf("unknown activity event type %q", raw.Type)
	}
	return nil
}
