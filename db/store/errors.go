package store

import "github.com/lib/pq"

const (
	DuplicateEntry pq.ErrorCode = "23505"
	EntryTooLong   pq.ErrorCode = "22001"
)

// IsDuplicateEntry reports whether err is a postgres unique violation.
func IsDuplicateEntry(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == DuplicateEntry
	}
	return false
}

// IsEntryTooLong reports whether err is a postgres string truncation error.
func IsEntryTooLong(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == EntryTooLong
	}
	return false
}
