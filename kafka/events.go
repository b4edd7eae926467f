package kafka

import "github.com/tair/cocktail-catalog/internal/catalog/domain"

// CatalogMessage is the JSON value of every catalog topic message
type CatalogMessage struct {
	EventID string `json:"event_id"`
	domain.CatalogEvent
}

// Kafka topics
const (
	TopicCatalogEvents = "catalog-events"
)

// Message headers
const (
	HeaderEventType = "event_type"
	HeaderEventID   = "event_id"
)
