package services

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/quizbank-backend/internal/quizpdf"
)

func TestQuizExport(t *testing.T) {
	h := newHarness(t)
	svc := NewQuizExportService(h.log, quizpdf.NewRenderer(quizpdf.Options{}))
	ctx := context.Background()

	_, err := svc.Export(ctx, quizpdf.Quiz{Title: "   "})
	requireStatus(t, err, http.StatusBadRequest, "Title isn`t empty")

	year := 2019
	out, err := svc.Export(ctx, quizpdf.Quiz{
		Title: "Revisão",
		Questions: []quizpdf.Question{{
			Title:        "Frações",
			Statement:    "Quanto é 1/2 + 1/2?",
			Type:         "multiple",
			Font:         "enem",
			Year:         &year,
			Alternatives: []string{"1", "2"},
			Response:     "1",
		}},
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
