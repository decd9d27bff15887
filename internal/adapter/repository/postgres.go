package repository

import (
	"encoding/json"
	"errors"

	"github.com/lib/pq"

	"armabazar/pkg/logger"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// parseImageList decodes a JSON-encoded image column. Malformed or non-array
// values degrade to an empty list instead of failing the read.
func parseImageList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		logger.Warn("Malformed image list column, returning empty list: %v", err)
		return []string{}
	}
	if images == nil {
		return []string{}
	}
	return images
}

func encodeImageList(images []string) string {
	if images == nil {
		images = []string{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(data)
}
