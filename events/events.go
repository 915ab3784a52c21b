package events

// Exchange topology shared by the publisher and the stats consumer.
const (
	ExchangeName = "events"
	ExchangeType = "topic"
)

// Routing keys published by the collection service. The stats consumer binds
// with "collection.*", so new keys under the prefix are picked up without a
// consumer change.
const (
	ItemAdded   = "collection.item_added"
	ItemUpdated = "collection.item_updated"
	ItemDeleted = "collection.item_deleted"
)
