package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a known contributor. Nickname is the handle used in
// "paired with @handle" annotations and by the code host.
type User struct {
	UserID    string    `gorm:"primaryKey;column:user_id;type:varchar(255)"             json:"user_id"`
	Nickname  string    `gorm:"column:nickname;type:varchar(255);not null;uniqueIndex:uq_users_nickname" json:"nickname"`
	AvatarURL string    `gorm:"column:avatar_url;not null;default:''"                   json:"avatar_url"`
	CreatedAt time.Time `gorm:"column:created_at;not null"                              json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"                              json:"-"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
