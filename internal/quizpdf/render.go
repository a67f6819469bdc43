package quizpdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/goregular"
)

const fontFamily = "goregular"

type Options struct {
	// Banner prints a rendered title strip above the first page title.
	Banner bool
}

type Renderer struct {
	opts Options
}

func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render writes quiz as an A4 PDF to w.
//
// Layout per question: title (18pt), source line (10pt), "Problema" heading
// and statement, "Alternativas" heading with lettered alternatives, then
// "Resposta" heading and response. Headings are 14pt, body text 12pt.
func (r *Renderer) Render(w io.Writer, quiz Quiz) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(quiz.Title, true)
	pdf.SetCreator("quizbank", true)
	pdf.AddUTF8FontFromBytes(fontFamily, "", goregular.TTF)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	if r.opts.Banner {
		if err := r.drawBanner(pdf, quiz.Title); err != nil {
			return err
		}
	}

	p := &printer{pdf: pdf}
	p.text(20, quiz.Title, "C")
	p.moveDown(1)

	for _, q := range quiz.Questions {
		p.text(18, q.Title, "L")
		p.moveDown(0.1)
		p.text(10, q.sourceLine(), "L")
		p.moveDown(0.8)
		p.text(14, "Problema", "L")
		p.moveDown(0.6)
		p.text(12, q.Statement, "L")
		p.moveDown(0.8)
		p.text(14, "Alternativas", "L")
		p.moveDown(0.6)
		for i, alt := range q.Alternatives {
			p.text(12, alternativeLabel(i)+alt, "L")
			p.moveDown(0.2)
		}
		p.moveDown(0.6)
		p.text(14, "Resposta", "L")
		p.moveDown(0.6)
		p.text(12, q.Response, "L")
		p.moveDown(1)
	}

	if pdf.Err() {
		return fmt.Errorf("render pdf: %w", pdf.Error())
	}
	return pdf.Output(w)
}

func (r *Renderer) drawBanner(pdf *fpdf.Fpdf, title string) error {
	png, err := RenderBanner(title)
	if err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("banner", opts, bytes.NewReader(png))
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	pdf.ImageOptions("banner", left, pdf.GetY(), pageW-left-right, 0, true, opts, 0, "")
	pdf.Ln(4)
	return nil
}

// printer tracks the current font size so moveDown can advance by lines.
type printer struct {
	pdf  *fpdf.Fpdf
	size float64
}

func (p *printer) lineHeight() float64 {
	_, unit := p.pdf.GetFontSize()
	return unit * 1.2
}

func (p *printer) text(size float64, s, align string) {
	p.size = size
	p.pdf.SetFont(fontFamily, "", size)
	p.pdf.MultiCell(0, p.lineHeight(), s, "", align, false)
}

func (p *printer) moveDown(lines float64) {
	if p.size == 0 {
		return
	}
	p.pdf.Ln(p.lineHeight() * lines)
}
