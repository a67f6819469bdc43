package quiz

import "github.com/google/uuid"

// QuestionWithCompetences is a question merged with the competences linked to it.
type QuestionWithCompetences struct {
	*Question
	Competences []*Competence `json:"competences"`
}

// QuestionCompetences is the {id, title, competences} projection of a question.
type QuestionCompetences struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Competences []*Competence `json:"competences"`
}

// CompetenceQuestions is the {id, title, questions} projection of a competence.
type CompetenceQuestions struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Questions []*Question `json:"questions"`
}
