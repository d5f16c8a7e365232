package domain

import "github.com/google/uuid"

// Notification is an ephemeral instruction to inform one recipient about a
// ticket change. It is produced by the ticket service, consumed exactly once
// by the dispatcher, and never persisted.
type Notification struct {
	RecipientID    uuid.UUID
	RecipientEmail string
	Message        string
}
