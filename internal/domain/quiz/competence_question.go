package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompetenceQuestion links one competence to one question. The pair is unique.
type CompetenceQuestion struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CompetenceID uuid.UUID   `gorm:"type:uuid;not null;index:idx_competence_question,unique,priority:1" json:"competence_id"`
	Competence   *Competence `gorm:"constraint:OnDelete:CASCADE;foreignKey:CompetenceID;references:ID" json:"competence,omitempty"`

	QuestionID uuid.UUID `gorm:"type:uuid;not null;index:idx_competence_question,unique,priority:2" json:"question_id"`
	Question   *Question `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (CompetenceQuestion) TableName() string { return "competence_question" }

func (cq *CompetenceQuestion) BeforeCreate(*gorm.DB) error {
	if cq.ID == uuid.Nil {
		cq.ID = uuid.New()
	}
	return nil
}
