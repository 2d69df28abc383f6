package http

import (
	"strings"

	"github.com/google/uuid"

	commonerrors "github.com/seo-pirate/backend/internal/common/errors"
)

func ValidateUUID(s string) error {
	if s == "" {
		return commonerrors.ErrEmptyUUID
	}
	_, err := uuid.Parse(s)
	return err
}

// ExtractIDFromPath returns the first path segment after the given prefix,
// e.g. /api/websites/<id> with prefix /api/websites/ yields <id>.
func ExtractIDFromPath(path, prefix string) (string, bool) {
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}

	remaining := strings.TrimPrefix(path, prefix)
	parts := strings.Split(remaining, "/")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0], true
	}

	return "", false
}
