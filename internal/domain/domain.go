package domain

import (
	"github.com/yungbote/quizbank-backend/internal/domain/auth"
	"github.com/yungbote/quizbank-backend/internal/domain/quiz"
	"github.com/yungbote/quizbank-backend/internal/domain/user"
)

type User = user.User

type RevokedToken = auth.RevokedToken

type Competence = quiz.Competence
type Question = quiz.Question
type CompetenceQuestion = quiz.CompetenceQuestion

type QuestionWithCompetences = quiz.QuestionWithCompetences
type QuestionCompetences = quiz.QuestionCompetences
type CompetenceQuestions = quiz.CompetenceQuestions

var QuestionFonts = quiz.Fonts

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&User{},
		&RevokedToken{},
		&Competence{},
		&Question{},
		&CompetenceQuestion{},
	}
}
