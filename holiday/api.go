package holiday

import (
	"context"
)

// API defines the operations of the Holiday and Event API
type API interface {
	// GetEvents gets the events for a date
	GetEvents(ctx context.Context, req GetEventsRequest) (*GetEventsResponse, error)

	// GetEventInfo gets the full description of one event
	GetEventInfo(ctx context.Context, req GetEventInfoRequest) (*GetEventInfoResponse, error)

	// Search finds events by free text
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

var _ API = (*Client)(nil)
