package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/quizbank-backend/internal/data/repos/testutil"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
)

func TestCompetenceLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	c, err := h.competences.Create(ctx, CompetenceInput{Title: "  Reading  ", Description: "Reads <texts>"})
	require.NoError(t, err)
	assert.Equal(t, "Reading", c.Title)
	assert.Equal(t, "Reads &lt;texts&gt;", c.Description)

	got, err := h.competences.Get(ctx, c.ID.String())
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	updated, err := h.competences.Update(ctx, c.ID.String(), CompetenceInput{Title: "Writing", Description: "Writes texts"})
	require.NoError(t, err)
	assert.Equal(t, "Writing", updated.Title)

	list, err := h.competences.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Writing", list[0].Title)
}

func TestCompetenceCreateReportsEveryMissingField(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.competences.Create(ctx, CompetenceInput{Title: " ", Description: ""})
	requireStatus(t, err, http.StatusUnprocessableEntity,
		"Title isn`t empty,Title need minimum 3 characters and maximum 100 characters,"+
			"Description isn`t empty,Description need minimum 3 characters and maximum 255 characters")

	list, err := h.competences.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCompetenceValidationPrecedesLookup(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.competences.Update(ctx, uuid.NewString(), CompetenceInput{Title: "ok title", Description: "x"})
	requireStatus(t, err, http.StatusUnprocessableEntity, "Description need minimum 3 characters and maximum 255 characters")

	_, err = h.competences.Update(ctx, uuid.NewString(), CompetenceInput{Title: "ok title", Description: "long enough"})
	requireStatus(t, err, http.StatusNotFound, "Competence not found")

	_, err = h.competences.Get(ctx, "nope")
	requireStatus(t, err, http.StatusNotFound, "Competence not found")
}

func TestCompetenceDeletePurgesLinks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := testutil.SeedCompetence(t, ctx, h.db, "Reading")
	q := testutil.SeedQuestion(t, ctx, h.db, "Essay")
	testutil.SeedLink(t, ctx, h.db, c.ID, q.ID)

	deleted, err := h.competences.Delete(ctx, c.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Reading", deleted.Title)

	links, err := h.linkRepo.GetByCompetenceIDs(dbctx.New(ctx), []uuid.UUID{c.ID})
	require.NoError(t, err)
	assert.Empty(t, links)

	got, err := h.questions.Get(ctx, q.ID.String())
	require.NoError(t, err)
	assert.Empty(t, got.Competences)
}
