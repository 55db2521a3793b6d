package store

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateEntry(t *testing.T) {
	assert.True(t, IsDuplicateEntry(&pq.Error{Code: "23505"}))
	assert.False(t, IsDuplicateEntry(&pq.Error{Code: "22001"}))
	assert.False(t, IsDuplicateEntry(fmt.Errorf("not a pq error")))
	assert.False(t, IsDuplicateEntry(nil))
}

func TestIsEntryTooLong(t *testing.T) {
	assert.True(t, IsEntryTooLong(&pq.Error{Code: "22001"}))
	assert.False(t, IsEntryTooLong(&pq.Error{Code: "23505"}))
	assert.False(t, IsEntryTooLong(fmt.Errorf("not a pq error")))
	assert.False(t, IsEntryTooLong(nil))
}
