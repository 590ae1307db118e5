package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/additionsdigital/gradientfollow/pkg/follow"
	"github.com/additionsdigital/gradientfollow/pkg/render"
	"github.com/additionsdigital/gradientfollow/pkg/scene"
	uv "github.com/charmbracelet/ultraviolet"
)

type fakeHUD struct{ toggles int }

func (f *fakeHUD) toggleHUD() { f.toggles++ }

func newTestTranslator() (*translator, *fakeHUD, *bool) {
	h := &fakeHUD{}
	quit := false
	t := newTranslator(h, slog.New(slog.DiscardHandler), func() { quit = true })
	t.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return t, h, &quit
}

func newTestController(t *testing.T) *follow.Controller {
	t.Helper()
	c, err := follow.New(scene.Viewport{Width: 80, Height: 48}, discardSurface{}, follow.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestTranslateMouse(t *testing.T) {
	tr, _, _ := newTestTranslator()
	c := newTestController(t)

	// The first motion is the pointer entering.
	ev := tr.translate(uv.MouseMotionEvent{X: 40, Y: 12})
	if ev == nil {
		t.Fatal("motion not translated")
	}
	ev(c)
	if c.Phase() != follow.FirstPass {
		t.Errorf("phase = %v, want first pass", c.Phase())
	}
	if c.Input() != (follow.InputVector{X: 0.5, Y: 0.5}) {
		t.Errorf("input = %+v; rows should count as two pixels", c.Input())
	}

	tr.translate(uv.MouseMotionEvent{X: 20, Y: 6})(c)
	if c.Input() != (follow.InputVector{X: 0.25, Y: 0.25}) {
		t.Errorf("input = %+v", c.Input())
	}
}

func TestTranslateWheel(t *testing.T) {
	tr, _, _ := newTestTranslator()
	c := newTestController(t)

	tr.translate(uv.MouseWheelEvent{Button: uv.MouseWheelDown})(c)
	if want := 48 / 0.95; c.Orbit().Target()-want > 1e-9 || want-c.Orbit().Target() > 1e-9 {
		t.Errorf("target = %v, want %v", c.Orbit().Target(), want)
	}
	tr.translate(uv.MouseWheelEvent{Button: uv.MouseWheelUp})(c)
	if got := c.Orbit().Target(); got-48 > 1e-9 || 48-got > 1e-9 {
		t.Errorf("target after zooming back = %v", got)
	}
}

func TestTranslateResize(t *testing.T) {
	tr, _, _ := newTestTranslator()
	c := newTestController(t)

	tr.translate(uv.WindowSizeEvent{Width: 100, Height: 30})(c)
	if err := c.Tick(time.Second / 60); err != nil {
		t.Fatal(err)
	}
	if got := c.Viewport(); got != (scene.Viewport{Width: 100, Height: 60}) {
		t.Errorf("viewport = %v", got)
	}
}

func TestTilt(t *testing.T) {
	tr, _, _ := newTestTranslator()
	c := newTestController(t)

	// Level start maps to the centre.
	tr.tilt(0, 0)(c)
	if c.Input() != (follow.InputVector{X: 0.5, Y: 0.5}) {
		t.Errorf("level input = %+v", c.Input())
	}

	for range 10 {
		tr.tilt(tiltStep, 0)(c)
	}
	if c.Input().X != 1 {
		t.Errorf("after 25 degrees right x = %v, want 1", c.Input().X)
	}
}

func TestTranslateIgnoresOther(t *testing.T) {
	tr, h, quit := newTestTranslator()
	if ev := tr.translate("not an event"); ev != nil {
		t.Error("unknown event translated")
	}
	if h.toggles != 0 || *quit {
		t.Error("side effects on an unknown event")
	}
}

func TestSnapshotCommand(t *testing.T) {
	opts := follow.DefaultOptions()
	opts.Scene.RadialSegments = 8

	fb, err := snapshot(scene.Viewport{Width: 64, Height: 32}, follow.InputVector{X: 0.2, Y: 0.8}, true, 30, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fb.Width != 64 || fb.Height != 32 {
		t.Errorf("frame %dx%d", fb.Width, fb.Height)
	}
	if fb.GetPixel(32, 16) == render.ColorWhite {
		t.Error("snapshot shows only background")
	}
}
