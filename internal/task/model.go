package task

import (
	"time"

	"github.com/google/uuid"
)

// Task is a single to-do item owned by one user
type Task struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Patch describes a partial update; nil fields are left unchanged.
// OwnerID is deliberately absent - ownership is never reassigned.
type Patch struct {
	Text      *string
	Completed *bool
	Deleted   *bool
}
