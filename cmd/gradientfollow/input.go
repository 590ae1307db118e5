package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/additionsdigital/gradientfollow/pkg/follow"
	"github.com/additionsdigital/gradientfollow/pkg/render"
	"github.com/additionsdigital/gradientfollow/pkg/scene"
	uv "github.com/charmbracelet/ultraviolet"
)

// Simulated tilt: arrow keys step the device angles from a level start.
const (
	tiltStep     = 2.5
	initialGamma = 0.0
	initialBeta  = 47.5
)

// hudToggler is the part of the surface the keyboard controls.
type hudToggler interface {
	toggleHUD()
}

func (s *hudSurface) toggleHUD() { s.show = !s.show }

// translator turns terminal events into controller events. It runs on the
// terminal event goroutine and only keeps its own state; everything that
// touches the controller happens inside the returned closures.
type translator struct {
	hud     hudToggler
	log     *slog.Logger
	quit    context.CancelFunc
	entered bool
	gamma   float64
	beta    float64
	now     func() time.Time
}

func newTranslator(h hudToggler, log *slog.Logger, quit context.CancelFunc) *translator {
	return &translator{
		hud:   h,
		log:   log,
		quit:  quit,
		gamma: initialGamma,
		beta:  initialBeta,
		now:   time.Now,
	}
}

// translate returns the controller event for ev, or nil when ev is not
// handled.
func (t *translator) translate(ev any) follow.Event {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		w, h := render.PixelSize(ev.Width, ev.Height)
		vp := scene.Viewport{Width: float64(w), Height: float64(h)}
		return func(c *follow.Controller) { c.RequestResize(vp) }

	case uv.MouseMotionEvent:
		x, y := float64(ev.X), float64(ev.Y*2)
		if !t.entered {
			t.entered = true
			return func(c *follow.Controller) { c.OnPointerEnter(x, y) }
		}
		return func(c *follow.Controller) { c.OnPointerMove(x, y) }

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			return func(c *follow.Controller) { c.OnWheel(-1) }
		case uv.MouseWheelDown:
			return func(c *follow.Controller) { c.OnWheel(1) }
		}

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("q", "escape", "ctrl+c"):
			t.quit()
		case ev.MatchString("left"):
			return t.tilt(-tiltStep, 0)
		case ev.MatchString("right"):
			return t.tilt(tiltStep, 0)
		case ev.MatchString("up"):
			return t.tilt(0, -tiltStep)
		case ev.MatchString("down"):
			return t.tilt(0, tiltStep)
		case ev.MatchString("?"), ev.MatchString("shift+/"):
			return func(*follow.Controller) { t.hud.toggleHUD() }
		case ev.MatchString("p"):
			return t.snapshot()
		}
	}
	return nil
}

// tilt steps the simulated device angles and reports them to the
// controller.
func (t *translator) tilt(dGamma, dBeta float64) follow.Event {
	t.gamma += dGamma
	t.beta += dBeta
	gamma, beta := t.gamma, t.beta
	return func(c *follow.Controller) { c.OnOrientation(&gamma, &beta) }
}

func (t *translator) snapshot() follow.Event {
	name := fmt.Sprintf("gradientfollow-%s.png", t.now().Format("20060102-150405"))
	return func(c *follow.Controller) {
		if err := c.Framebuffer().SavePNG(name); err != nil {
			t.log.Error("snapshot failed", "err", err)
			return
		}
		t.log.Info("snapshot saved", "path", name)
	}
}
