package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the aggregate root for user accounts.
// Password holds a bcrypt hash; the plaintext is never stored and the field
// is excluded from JSON output.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPatch is a partial update. Nil fields mean "no change".
// Password carries plaintext; the service hashes it before merging.
type UserPatch struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,pwd"`
	Name     *string `json:"name" binding:"omitempty,min=1"`
}

// EnsureID assigns a fresh identity if none was supplied. Identity is set
// once at creation and never changes afterwards.
func (u *User) EnsureID() {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
}

// Merge overwrites exactly the fields present in the patch. The password
// pointer is expected to already contain a hash by the time Merge runs.
func (u *User) Merge(p UserPatch) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
}
