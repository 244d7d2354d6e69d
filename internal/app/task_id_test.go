package app

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskID(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	id := newTaskIDAt(now)

	prefix := strconv.FormatInt(now.UnixMilli(), 36)
	require.Len(t, id, len(prefix)+taskIDSuffixLen)
	assert.Equal(t, prefix, id[:len(prefix)])

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewTaskID()
		_, dup := seen[id]
		assert.False(t, dup, "duplicate task id %s", id)
		seen[id] = struct{}{}
	}
}
