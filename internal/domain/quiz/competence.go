package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Competence is a skill tag questions can be linked to.
type Competence struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null;index" json:"title"`
	Description string    `gorm:"column:description;not null" json:"description"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Competence) TableName() string { return "competence" }

func (c *Competence) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
