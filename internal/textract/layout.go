// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textract

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Layout tolerances, in multiples of the font size.
const (
	gapEm     = 1.0 // horizontal gap that ends a segment
	alignEm   = 0.5 // left-edge drift allowed between stacked segments
	leadingEm = 2.5 // largest baseline drop between stacked segments
	glyphEm   = 0.5 // advance assumed for glyphs without width metrics

	defaultFontSize = 10.0
)

// segment is a run of text on one baseline with no wide gap inside it.
type segment struct {
	text string
	x, y float64
	size float64
}

// layoutText renders a page as one line per segment. Segments stacked on a
// shared left edge form a block (a label and the value under it), and
// blocks are written in reading order of their first segment. Labels that
// sit side by side on the card therefore each stay next to their own value.
func layoutText(rows pdf.Rows) string {
	var b strings.Builder
	for _, block := range stack(segments(rows)) {
		for _, s := range block {
			b.WriteString(s.text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// segments splits every row at horizontal gaps, top to bottom and left to
// right.
func segments(rows pdf.Rows) []segment {
	ordered := make(pdf.Rows, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position > ordered[j].Position
	})

	var segs []segment
	for _, row := range ordered {
		texts := append(pdf.TextHorizontal(nil), row.Content...)
		sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

		var (
			cur *segment
			b   strings.Builder
			end float64
		)
		flush := func() {
			if cur == nil {
				return
			}
			if s := strings.TrimSpace(b.String()); s != "" {
				cur.text = s
				segs = append(segs, *cur)
			}
			cur = nil
			b.Reset()
		}
		for _, t := range texts {
			size := t.FontSize
			if size <= 0 {
				size = defaultFontSize
			}
			if cur != nil && t.X-end > gapEm*size {
				flush()
			}
			if cur == nil {
				if strings.TrimSpace(t.S) == "" {
					continue
				}
				cur = &segment{x: t.X, y: float64(row.Position), size: size}
				end = t.X
			}
			b.WriteString(t.S)
			end = math.Max(end, t.X+advance(t, size))
		}
		flush()
	}
	return segs
}

func advance(t pdf.Text, size float64) float64 {
	if t.W > 0 {
		return t.W
	}
	return glyphEm * size * float64(utf8.RuneCountInString(t.S))
}

// stack groups segments into blocks. A segment joins the block whose last
// segment sits just above it on the same left edge.
func stack(segs []segment) [][]segment {
	var blocks [][]segment
	for _, s := range segs {
		placed := false
		for i, block := range blocks {
			last := block[len(block)-1]
			drop := last.y - s.y
			if drop > 0 && drop <= leadingEm*last.size && math.Abs(last.x-s.x) <= alignEm*last.size {
				blocks[i] = append(block, s)
				placed = true
				break
			}
		}
		if !placed {
			blocks = append(blocks, []segment{s})
		}
	}
	return blocks
}
