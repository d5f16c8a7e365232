package utils

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ToNullUUID converts a domain's *uuid.UUID to a pgtype.UUID.
// A nil pointer is considered invalid (NULL).
func ToNullUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

// FromNullUUID converts a pgtype.UUID to a domain's *uuid.UUID.
// A NULL value is converted to nil.
func FromNullUUID(u pgtype.UUID) *uuid.UUID {
	if !u.Valid {
		return nil
	}
	id := uuid.UUID(u.Bytes)
	return &id
}

// ToNullTime converts a domain's *time.Time to a pgtype.Timestamptz.
// A nil pointer is considered invalid (NULL).
func ToNullTime(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

// FromNullTime converts a pgtype.Timestamptz to a domain's *time.Time.
// A NULL value is converted to nil.
func FromNullTime(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

// FromString converts a pgtype.Text to a domain's primitive string.
// A NULL value is converted to an empty string ("").
func FromString(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
