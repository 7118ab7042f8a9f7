package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Invalidations issued inside a transaction are queued and flushed only after
// commit; evicting earlier would let a concurrent read re-cache the
// pre-commit row for the full cache TTL.
func TestCardRepository_InvalidateDefersInsideTransaction(t *testing.T) {
	var touched []uint
	r := &cardRepository{pending: &touched}

	r.invalidate(4)
	r.invalidate(9)

	assert.Equal(t, []uint{4, 9}, touched)
}
