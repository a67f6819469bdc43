package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"column:name" json:"name,omitempty"`
	Username string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Email    string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	// Password holds the bcrypt hash once persisted.
	Password string `gorm:"not null;column:password" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
