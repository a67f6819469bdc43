package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/quizbank-backend/internal/data/repos/auth"
	"github.com/yungbote/quizbank-backend/internal/data/repos/quiz"
	"github.com/yungbote/quizbank-backend/internal/data/repos/user"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type RevokedTokenRepo = auth.RevokedTokenRepo

type CompetenceRepo = quiz.CompetenceRepo
type QuestionRepo = quiz.QuestionRepo
type CompetenceQuestionRepo = quiz.CompetenceQuestionRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewRevokedTokenRepo(db *gorm.DB, baseLog *logger.Logger) RevokedTokenRepo {
	return auth.NewRevokedTokenRepo(db, baseLog)
}

func NewCompetenceRepo(db *gorm.DB, baseLog *logger.Logger) CompetenceRepo {
	return quiz.NewCompetenceRepo(db, baseLog)
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return quiz.NewQuestionRepo(db, baseLog)
}

func NewCompetenceQuestionRepo(db *gorm.DB, baseLog *logger.Logger) CompetenceQuestionRepo {
	return quiz.NewCompetenceQuestionRepo(db, baseLog)
}
