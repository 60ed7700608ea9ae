package leads

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a process-unique lead identifier made of the current
// timestamp, the record index and a random suffix. IDs are never stable
// across calls.
func NewID(index int) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), index, suffix)
}
