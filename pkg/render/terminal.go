package render

import (
	"fmt"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Every terminal row shows two framebuffer rows with ▀: the
// foreground is the top pixel and the background the bottom one.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(col, topY)),
					Bg: cellColor(fb.GetPixel(col, botY)),
				},
			})
		}
	}
}

// cellColor maps transparent pixels to the terminal default color.
func cellColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// PixelSize returns the framebuffer size that fills a terminal of the given
// cell size.
func PixelSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// TerminalSurface presents framebuffers on an ultraviolet terminal.
type TerminalSurface struct {
	term       *uv.Terminal
	cols, rows int
}

// NewTerminalSurface wraps a started terminal.
func NewTerminalSurface(term *uv.Terminal) *TerminalSurface {
	return &TerminalSurface{term: term}
}

// Attach sizes the terminal screen for a framebuffer of width x height
// pixels and wipes what was displayed before.
func (s *TerminalSurface) Attach(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("attach surface: invalid size %dx%d", width, height)
	}
	s.cols, s.rows = width, (height+1)/2
	s.term.Erase()
	s.term.Resize(s.cols, s.rows)
	return nil
}

// Present draws fb and flushes the changes to the terminal.
func (s *TerminalSurface) Present(fb *Framebuffer) error {
	fb.Draw(s.term, uv.Rect(0, 0, s.cols, s.rows))
	if err := s.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}
