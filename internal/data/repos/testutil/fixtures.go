package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/quizbank-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCompetence(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Competence {
	tb.Helper()
	c := &types.Competence{
		ID:          uuid.New(),
		Title:       title,
		Description: "Description of " + title,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed competence: %v", err)
	}
	return c
}

func SeedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Question {
	tb.Helper()
	year := 2020
	q := &types.Question{
		ID:           uuid.New(),
		Title:        title,
		Statement:    "Statement of " + title,
		Type:         "multiple",
		Font:         "enem",
		Year:         &year,
		Alternatives: datatypes.JSONSlice[string]{"first", "second"},
		Response:     "first",
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return q
}

func SeedLink(tb testing.TB, ctx context.Context, tx *gorm.DB, competenceID, questionID uuid.UUID) *types.CompetenceQuestion {
	tb.Helper()
	l := &types.CompetenceQuestion{
		ID:           uuid.New(),
		CompetenceID: competenceID,
		QuestionID:   questionID,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed link: %v", err)
	}
	return l
}
