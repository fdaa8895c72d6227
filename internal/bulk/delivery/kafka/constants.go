package kafka

// ============================================
// Kafka Topics
// ============================================

const (
	// TopicBulkRequests carries validated ticket chunks.
	TopicBulkRequests = "ticket.bulk.requests"
	// TopicBulkRequestsDLT receives chunks that exhausted retries.
	TopicBulkRequestsDLT = "ticket.bulk.requests.DLT"
)

// ============================================
// Consumer Group IDs
// ============================================

const (
	ConsumerGroupBulkRequests = "ticket-bulk-consumers"
)
