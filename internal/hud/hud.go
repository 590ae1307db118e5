// Package hud draws the status overlay on the top and bottom terminal rows.
package hud

import (
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
)

// Status is what the overlay shows.
type Status struct {
	Width, Height int // Terminal size in cells

	ViewportW, ViewportH int // Framebuffer size in pixels
	Bucket               int
	InputX, InputY       float64
	Mode                 string
	Phase                string
	ScrollStarted        bool
	Triangles            int
}

// HUD renders an overlay with frame statistics and controller state.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time

	fpsStyle   lipgloss.Style
	titleStyle lipgloss.Style
	infoStyle  lipgloss.Style
	modeStyle  lipgloss.Style
	hintStyle  lipgloss.Style
}

// New creates a HUD.
func New() *HUD {
	base := lipgloss.NewStyle().Background(lipgloss.Color("#000000"))
	return &HUD{
		fpsTime:    time.Now(),
		fpsStyle:   base.Foreground(lipgloss.Color("#5fff5f")),
		titleStyle: base.Foreground(lipgloss.Color("#ffffff")).Bold(true),
		infoStyle:  base.Foreground(lipgloss.Color("#5fffff")).Bold(true),
		modeStyle:  base.Foreground(lipgloss.Color("#ffffff")),
		hintStyle:  base.Foreground(lipgloss.Color("#ffff5f")).Faint(true),
	}
}

// UpdateFPS counts a frame presented at now.
func (h *HUD) UpdateFPS(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() float64 { return h.fps }

func moveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

const clearLine = "\x1b[2K"

// Render writes the overlay to w. With show false it only clears the HUD
// rows, so toggling the overlay off leaves nothing behind until the next
// frame redraws them.
func (h *HUD) Render(w io.Writer, s Status, show bool) error {
	var b strings.Builder
	b.WriteString(moveTo(1, 1) + clearLine)
	b.WriteString(moveTo(s.Height, 1) + clearLine)

	if show {
		h.top(&b, s)
		h.bottom(&b, s)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (h *HUD) top(b *strings.Builder, s Status) {
	// Top left: FPS
	b.WriteString(moveTo(1, 1) + h.fpsStyle.Render(fmt.Sprintf(" %.0f FPS ", h.fps)))

	// Top middle: viewport and bucket
	title := fmt.Sprintf(" %dx%d  bucket %d ", s.ViewportW, s.ViewportH, s.Bucket)
	b.WriteString(moveTo(1, max((s.Width-len(title))/2, 1)) + h.titleStyle.Render(title))

	// Top right: triangles
	tris := fmt.Sprintf(" %d tris ", s.Triangles)
	b.WriteString(moveTo(1, max(s.Width-len(tris)+1, 1)) + h.infoStyle.Render(tris))
}

func (h *HUD) bottom(b *strings.Builder, s Status) {
	check := "[ ]"
	if s.ScrollStarted {
		check = "[✓]"
	}
	mode := fmt.Sprintf(" input %.2f,%.2f  %s (%s)  %s scroll ", s.InputX, s.InputY, s.Mode, s.Phase, check)
	b.WriteString(moveTo(s.Height, 1) + h.modeStyle.Render(mode))

	hint := " ?: hud  p: png  q: quit "
	b.WriteString(moveTo(s.Height, max(s.Width-len(hint)+1, 1)) + h.hintStyle.Render(hint))
}
