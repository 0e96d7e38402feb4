package models

import (
	"time"

	"reviewhub/internal/validators"
)

type User struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string  `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string  `gorm:"size:254;uniqueIndex;not null" json:"email"`
	FirstName string  `gorm:"size:150" json:"first_name"`
	LastName  string  `gorm:"size:150" json:"last_name"`
	Bio       *string `gorm:"type:text" json:"bio,omitempty"`
	Role      string  `gorm:"size:50;default:'user';not null;check:chk_users_role,role IN ('user','moderator','admin')" json:"role"`

	// bcrypt hash of the last issued confirmation code, never serialized
	ConfirmationCode string    `gorm:"column:confirmation_code" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == validators.RoleAdmin
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == validators.RoleModerator
}
