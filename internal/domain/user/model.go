// Package user provides registered user models and behaviors.
package user

import (
	"time"

	"github.com/google/uuid"
)

// MaxUsernameLength bounds usernames in runes.
const MaxUsernameLength = 100

// User is a registered participant of threads. Users are immutable once created.
type User struct {
	ID        uuid.UUID
	Username  string
	CreatedAt time.Time
}
