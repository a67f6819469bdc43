package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/quizbank-backend/internal/data/repos"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	RevokedToken repos.RevokedTokenRepo

	Competence         repos.CompetenceRepo
	Question           repos.QuestionRepo
	CompetenceQuestion repos.CompetenceQuestionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:               repos.NewUserRepo(db, log),
		RevokedToken:       repos.NewRevokedTokenRepo(db, log),
		Competence:         repos.NewCompetenceRepo(db, log),
		Question:           repos.NewQuestionRepo(db, log),
		CompetenceQuestion: repos.NewCompetenceQuestionRepo(db, log),
	}
}
