package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Surface is an RGB framebuffer with a depth buffer. Two pixel rows share one
// terminal cell: the upper half block takes the top pixel as foreground and
// the bottom pixel as background.
type Surface struct {
	w, h  int
	color []colorful.Color
	depth []float32
}

func NewSurface(w, h int) *Surface {
	s := &Surface{}
	s.Resize(w, h)
	return s
}

// Size is the surface size in pixels.
func (s *Surface) Size() (int, int) { return s.w, s.h }

// Resize reallocates the buffers; contents are lost.
func (s *Surface) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	s.w, s.h = w, h
	s.color = make([]colorful.Color, w*h)
	s.depth = make([]float32, w*h)
	s.clearDepth()
}

func (s *Surface) Clear(bg colorful.Color) {
	for i := range s.color {
		s.color[i] = bg
	}
	s.clearDepth()
}

func (s *Surface) clearDepth() {
	for i := range s.depth {
		s.depth[i] = float32(math.Inf(1))
	}
}

func (s *Surface) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return colorful.Color{}
	}
	return s.color[y*s.w+x]
}

// plot writes an opaque pixel if z passes the depth test.
func (s *Surface) plot(x, y int, z float32, c colorful.Color) bool {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return false
	}
	i := y*s.w + x
	if z >= s.depth[i] {
		return false
	}
	s.depth[i] = z
	s.color[i] = c
	return true
}

// blend composites c over the pixel with alpha a after a depth test.
func (s *Surface) blend(x, y int, z float32, c colorful.Color, a float32, write bool) bool {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return false
	}
	i := y*s.w + x
	if z >= s.depth[i] {
		return false
	}
	if write {
		s.depth[i] = z
	}
	s.color[i] = s.color[i].BlendRgb(c, float64(a))
	return true
}

// Lines renders the surface as terminal rows of half-block cells. Runs of
// identical cells share one style.
func (s *Surface) Lines() []string {
	rows := (s.h + 1) / 2
	out := make([]string, rows)
	for r := 0; r < rows; r++ {
		var b strings.Builder
		runFg, runBg := "", ""
		n := 0
		flush := func() {
			if n == 0 {
				return
			}
			st := lipgloss.NewStyle().Foreground(lipgloss.Color(runFg)).Background(lipgloss.Color(runBg))
			b.WriteString(st.Render(strings.Repeat("▀", n)))
			n = 0
		}
		for x := 0; x < s.w; x++ {
			fg := s.At(x, 2*r).Clamped().Hex()
			bg := s.At(x, 2*r+1).Clamped().Hex()
			if fg != runFg || bg != runBg {
				flush()
				runFg, runBg = fg, bg
			}
			n++
		}
		flush()
		out[r] = b.String()
	}
	return out
}
