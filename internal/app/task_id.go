package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const taskIDSuffixLen = 9

// NewTaskID returns an opaque identifier: a base-36 millisecond timestamp
// followed by a random suffix. Uniqueness is best-effort and never checked.
func NewTaskID() string {
	return newTaskIDAt(time.Now())
}

func newTaskIDAt(now time.Time) string {
	prefix := strconv.FormatInt(now.UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + suffix[:taskIDSuffixLen]
}
