package utils

import (
	"github.com/google/uuid"
)

// GenerateID mints a random UUID string, used for user and auction IDs.
func GenerateID() string {
	return uuid.New().String()
}
