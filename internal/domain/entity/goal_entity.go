package entity

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a fitness target owned by a user. UserID references an existing
// user and never changes after creation.
type Goal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Target      float64   `json:"target"`
	Deadline    time.Time `json:"deadline"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GoalPatch is a partial update. Nil fields mean "no change", mirroring the
// nullish-coalescing merge the API has always used.
type GoalPatch struct {
	Title       *string    `json:"title" binding:"omitempty,min=1"`
	Description *string    `json:"description"`
	Target      *float64   `json:"target" binding:"omitempty,gt=0"`
	Deadline    *time.Time `json:"deadline"`
}

// Stamp fixes identity and ownership at creation time.
func (g *Goal) Stamp(ownerID string) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.UserID = ownerID
}

func (g *Goal) RecordID() string { return g.ID }

func (g *Goal) Owner() string { return g.UserID }

// Merge overwrites exactly the fields present in the patch.
func (g *Goal) Merge(p GoalPatch) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Target != nil {
		g.Target = *p.Target
	}
	if p.Deadline != nil {
		g.Deadline = *p.Deadline
	}
}
