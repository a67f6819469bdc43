package quizpdf

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuiz() Quiz {
	year := 2019
	return Quiz{
		Title: "Simulado de Matemática",
		Questions: []Question{
			{
				Title:        "Frações",
				Statement:    "Quanto é 1/2 + 1/4?",
				Type:         "multipla escolha",
				Font:         "enem",
				Year:         &year,
				Alternatives: []string{"3/4", "1/3", "2/6"},
				Response:     "3/4",
			},
			{
				Title:     "Aberta",
				Statement: "Explique o teorema de Pitágoras.",
				Type:      "dissertativa",
				Font:      "school",
				Response:  "a² + b² = c²",
			},
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(Options{}).Render(&buf, sampleQuiz()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestRenderWithBanner(t *testing.T) {
	var plain, withBanner bytes.Buffer
	require.NoError(t, NewRenderer(Options{}).Render(&plain, sampleQuiz()))
	require.NoError(t, NewRenderer(Options{Banner: true}).Render(&withBanner, sampleQuiz()))
	assert.Greater(t, withBanner.Len(), plain.Len())
}

func TestRenderBannerIsPNG(t *testing.T) {
	raw, err := RenderBanner("Quiz")
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, bannerWidth, img.Bounds().Dx())
	assert.Equal(t, bannerHeight, img.Bounds().Dy())
}

func TestAlternativeLabel(t *testing.T) {
	assert.Equal(t, "a) ", alternativeLabel(0))
	assert.Equal(t, "l) ", alternativeLabel(11))
	assert.Equal(t, "z) ", alternativeLabel(25))
	assert.Equal(t, "aa) ", alternativeLabel(26))
}

func TestSourceLine(t *testing.T) {
	q := sampleQuiz().Questions
	assert.Equal(t, "Fonte: enem 2019 [multipla escolha]", q[0].sourceLine())
	assert.Equal(t, "Fonte: school [dissertativa]", q[1].sourceLine())
}
