package entity

import (
	"time"

	"github.com/google/uuid"
)

// Workout is a single logged training session owned by a user.
type Workout struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Duration       int       `json:"duration"` // minutes
	Intensity      string    `json:"intensity"`
	CaloriesBurned int       `json:"caloriesBurned"`
	Date           time.Time `json:"date"`
	UserID         string    `json:"userId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// WorkoutPatch is a partial update. Nil fields mean "no change".
type WorkoutPatch struct {
	Type           *string    `json:"type" binding:"omitempty,min=1"`
	Duration       *int       `json:"duration" binding:"omitempty,gt=0"`
	Intensity      *string    `json:"intensity" binding:"omitempty,intensity"`
	CaloriesBurned *int       `json:"caloriesBurned" binding:"omitempty,gte=0"`
	Date           *time.Time `json:"date"`
}

// Stamp fixes identity and ownership at creation time.
func (w *Workout) Stamp(ownerID string) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	w.UserID = ownerID
}

func (w *Workout) RecordID() string { return w.ID }

func (w *Workout) Owner() string { return w.UserID }

// Merge overwrites exactly the fields present in the patch.
func (w *Workout) Merge(p WorkoutPatch) {
	if p.Type != nil {
		w.Type = *p.Type
	}
	if p.Duration != nil {
		w.Duration = *p.Duration
	}
	if p.Intensity != nil {
		w.Intensity = *p.Intensity
	}
	if p.CaloriesBurned != nil {
		w.CaloriesBurned = *p.CaloriesBurned
	}
	if p.Date != nil {
		w.Date = *p.Date
	}
}
