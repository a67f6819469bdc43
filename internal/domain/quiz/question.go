package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question fonts accepted by validation.
const (
	FontEnem       = "enem"
	FontPisa       = "pisa"
	FontOlimpiadas = "olimpiadas"
	FontSchool     = "school"
	FontOther      = "other"
)

var Fonts = []string{FontEnem, FontPisa, FontOlimpiadas, FontSchool, FontOther}

type Question struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string                      `gorm:"column:title;not null;uniqueIndex" json:"title"`
	Statement    string                      `gorm:"column:statement;not null;uniqueIndex" json:"statement"`
	Image        *string                     `gorm:"column:image" json:"image,omitempty"`
	Type         string                      `gorm:"column:type;not null" json:"type"`
	Font         string                      `gorm:"column:font;not null;index" json:"font"`
	Year         *int                        `gorm:"column:year" json:"year,omitempty"`
	Alternatives datatypes.JSONSlice[string] `gorm:"column:alternatives" json:"alternatives,omitempty"`
	Response     string                      `gorm:"column:response;not null" json:"response"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Question) TableName() string { return "question" }

func (q *Question) BeforeCreate(*gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
