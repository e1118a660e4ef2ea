package pipeline

// Relation names as written to the sink.
const (
	RelationChannel = "channel"
	RelationProduct = "product"
	RelationContact = "contact"
)

// Log field constants.
const (
	LogFieldRunID    = "run_id"
	LogFieldCount    = "count"
	LogFieldRelation = "relation"
	LogFieldReason   = "reason"
)
