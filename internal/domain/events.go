package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFetchRequested EventType = "FetchRequested"
	EventFetchCompleted EventType = "FetchCompleted"
	EventQuitRequested  EventType = "QuitRequested"
	EventBell           EventType = "Bell"
	EventProfileShown   EventType = "ProfileShown"
	EventHelpShown      EventType = "HelpShown"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FetchRequestedEvent asks the data source to load a query
type FetchRequestedEvent struct {
	Query   Query
	Refresh bool // periodic refresh of an unchanged query
}

func (e FetchRequestedEvent) Type() EventType { return EventFetchRequested }

// FetchCompletedEvent carries the data source's answer back into the graph
type FetchCompletedEvent struct {
	Query Query
	Stock *Stock
	Err   error // non-nil if the fetch failed; Stock is then nil
}

func (e FetchCompletedEvent) Type() EventType { return EventFetchCompleted }

// QuitRequestedEvent is emitted when the user asks to leave
type QuitRequestedEvent struct{}

func (e QuitRequestedEvent) Type() EventType { return EventQuitRequested }

// BellEvent is emitted when an edit was rejected at an edge
type BellEvent struct {
	Reason string
}

func (e BellEvent) Type() EventType { return EventBell }

// ProfileShownEvent asks the shell to page the company profile
type ProfileShownEvent struct{}

func (e ProfileShownEvent) Type() EventType { return EventProfileShown }

// HelpShownEvent asks the shell to page the key help
type HelpShownEvent struct{}

func (e HelpShownEvent) Type() EventType { return EventHelpShown }
