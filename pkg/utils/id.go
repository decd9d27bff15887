package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateID returns a time-prefixed identifier. The prefix keeps ids roughly
// sortable by creation time, the uuid fragment makes collisions astronomically
// unlikely without being a cryptographic guarantee.
func GenerateID() string {
	prefix := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return prefix + "-" + suffix
}
