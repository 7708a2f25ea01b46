package backdrop

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

// Code sheet layout, in sheet pixels.
const (
	codeSheetSize       = 256
	codeSheetFirstLine  = 10
	codeSheetLineStep   = 20
	codeSheetIndentStep = 20
	codeSheetMaxIndent  = 4 // in indent steps
	codeSheetTokenWidth = 10
	codeSheetFontSize   = 14
	codeSheetSymbolOdds = 0.3
)

var codeSymbols = []string{"0", "1", "{", "}", "()", "=>", "[]", "&&", "||", "==", "!=", "++"}

// CodeLine is one row of generated pseudo-code on a sheet. Y is the
// baseline.
type CodeLine struct {
	Indent float64
	Y      float64
	Text   string
}

// CodeSheet is the procedurally generated texture shown on a code plane:
// rows of binary digits and operators in a single ink color over a faint
// dark background. The image is rasterized on first use.
type CodeSheet struct {
	Size       int
	Background Color
	Ink        Color
	Lines      []CodeLine

	img *ebiten.Image
}

// newCodeSheet generates the content of a sheet.
func newCodeSheet(rng *rand.Rand, ink Color) *CodeSheet {
	sheet := &CodeSheet{
		Size:       codeSheetSize,
		Background: Color{0, 0, 0, 0.1},
		Ink:        ink,
	}
	var b strings.Builder
	for y := codeSheetFirstLine; y < codeSheetSize; y += codeSheetLineStep {
		indent := rng.IntN(codeSheetMaxIndent+1) * codeSheetIndentStep
		tokens := (codeSheetSize - indent) / codeSheetTokenWidth
		b.Reset()
		for range tokens {
			if rng.Float64() < codeSheetSymbolOdds {
				b.WriteString(codeSymbols[rng.IntN(len(codeSymbols))])
			} else if rng.Float64() > 0.5 {
				b.WriteByte('0')
			} else {
				b.WriteByte('1')
			}
			b.WriteByte(' ')
		}
		sheet.Lines = append(sheet.Lines, CodeLine{
			Indent: float64(indent),
			Y:      float64(y),
			Text:   b.String(),
		})
	}
	return sheet
}

// codeFace is the shared monospace face for sheet rasterization.
var codeFace *text.GoTextFace

// loadCodeFace parses Go Mono once.
func loadCodeFace() (*text.GoTextFace, error) {
	if codeFace != nil {
		return codeFace, nil
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("backdrop: parse code sheet font: %w", err)
	}
	codeFace = &text.GoTextFace{Source: source, Size: codeSheetFontSize}
	return codeFace, nil
}

// Image returns the rasterized sheet, drawing it on the first call.
func (s *CodeSheet) Image() (*ebiten.Image, error) {
	if s.img != nil {
		return s.img, nil
	}
	face, err := loadCodeFace()
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImage(s.Size, s.Size)
	img.Fill(s.Background.toRGBA())

	ascent := face.Metrics().HAscent
	for _, line := range s.Lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(line.Indent, line.Y-ascent)
		op.ColorScale.Scale(
			float32(s.Ink.R*s.Ink.A),
			float32(s.Ink.G*s.Ink.A),
			float32(s.Ink.B*s.Ink.A),
			float32(s.Ink.A),
		)
		text.Draw(img, line.Text, face, op)
	}
	s.img = img
	return img, nil
}

// release frees the rasterized image, if any.
func (s *CodeSheet) release() {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}
