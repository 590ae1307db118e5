// Package follow drives the gradient-follow scene from pointer and tilt
// input: direct mapping every frame, a one-off entry transition, and
// viewport-dependent rebuilds.
package follow

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/additionsdigital/gradientfollow/pkg/render"
	"github.com/additionsdigital/gradientfollow/pkg/scene"
)

// Surface is where finished frames go.
type Surface interface {
	// Attach prepares the surface for frames of width x height pixels. It
	// is called on every build and every resize.
	Attach(width, height int) error
	Present(fb *render.Framebuffer) error
}

// Options configure a Controller.
type Options struct {
	FPS        int
	Transition time.Duration
	Scene      scene.Options
	Logger     *slog.Logger
}

// DefaultOptions returns 60 FPS, the default transition and scene.
func DefaultOptions() Options {
	return Options{
		FPS:        60,
		Transition: DefaultTransition,
		Scene:      scene.DefaultOptions(),
	}
}

// stage is everything a rebuild throws away.
type stage struct {
	scene  *scene.Scene
	fb     *render.Framebuffer
	raster *render.Rasterizer
	orbit  *OrbitRestriction
}

// Controller owns the scene and all interaction state. It is not safe for
// concurrent use; Run serializes access on one goroutine.
type Controller struct {
	opts    Options
	log     *slog.Logger
	surface Surface

	viewport scene.Viewport
	stage    *stage

	input      InputVector
	transition *Transition
	entered    bool
	scroll     ScrollLatch

	pendingResize *scene.Viewport
	builds        int
	frames        int
}

// New builds the scene for vp and attaches surface.
func New(vp scene.Viewport, surface Surface, opts Options) (*Controller, error) {
	if !validViewport(vp) {
		return nil, fmt.Errorf("new controller: invalid viewport %vx%v", vp.Width, vp.Height)
	}
	if surface == nil {
		return nil, errors.New("new controller: nil surface")
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	c := &Controller{
		opts:       opts,
		log:        opts.Logger,
		surface:    surface,
		viewport:   vp,
		transition: NewTransition(opts.Transition),
	}
	if err := c.build(); err != nil {
		return nil, err
	}
	return c, nil
}

func validViewport(vp scene.Viewport) bool {
	return vp.Width >= 1 && vp.Height >= 1
}

// build replaces the stage with a fresh one sized for the viewport.
func (c *Controller) build() error {
	vp := c.viewport
	sc := scene.Build(vp, c.opts.Scene)
	fb := render.NewFramebuffer(int(vp.Width), int(vp.Height))
	raster := render.NewRasterizer(sc.Camera, fb)
	raster.CullBackFaces = true

	orbit := NewOrbitRestriction(sc.Camera, c.opts.FPS)
	if c.scroll.Started() {
		orbit.Dispose()
	}

	if err := c.surface.Attach(fb.Width, fb.Height); err != nil {
		return fmt.Errorf("attach surface: %w", err)
	}

	c.stage = &stage{scene: sc, fb: fb, raster: raster, orbit: orbit}
	c.builds++
	c.log.Info("scene built",
		"width", vp.Width, "height", vp.Height,
		"bucket", sc.Bucket, "builds", c.builds)
	return nil
}

// Input returns the current input vector.
func (c *Controller) Input() InputVector { return c.input }

// Viewport returns the current viewport.
func (c *Controller) Viewport() scene.Viewport { return c.viewport }

// Scene returns the live scene. It is replaced on rebuild.
func (c *Controller) Scene() *scene.Scene { return c.stage.scene }

// Framebuffer returns the frame being drawn into. It is replaced on rebuild.
func (c *Controller) Framebuffer() *render.Framebuffer { return c.stage.fb }

// Orbit returns the live orbit helper.
func (c *Controller) Orbit() *OrbitRestriction { return c.stage.orbit }

// Phase returns the transition phase.
func (c *Controller) Phase() Phase { return c.transition.Phase() }

// ScrollStarted reports whether the scroll latch has fired.
func (c *Controller) ScrollStarted() bool { return c.scroll.Started() }

// Builds returns how many times the scene has been built.
func (c *Controller) Builds() int { return c.builds }

// Frames returns the number of frames presented.
func (c *Controller) Frames() int { return c.frames }

// Triangles returns the number of triangles drawn in the last frame.
func (c *Controller) Triangles() int { return c.stage.raster.TrianglesDrawn }

// Mode names what drives the scene this frame.
func (c *Controller) Mode() string {
	if c.transition.Active() {
		return "transition"
	}
	return "direct"
}

// OnPointerMove sets the input from a pointer position in pixels.
func (c *Controller) OnPointerMove(x, y float64) {
	c.input = PointerVector(x, y, c.viewport)
}

// OnOrientation sets the input from a device tilt in degrees. Missing
// angles leave the input unchanged.
func (c *Controller) OnOrientation(gamma, beta *float64) {
	if in, ok := OrientationVector(gamma, beta); ok {
		c.input = in
	}
}

// OnPointerEnter records the pointer and, the first time only, starts the
// entry transition toward it.
func (c *Controller) OnPointerEnter(x, y float64) {
	if c.entered {
		return
	}
	c.entered = true
	c.OnPointerMove(x, y)

	from := Capture(c.stage.scene)
	if c.transition.Begin(from, c.target(), c.input) {
		c.log.Info("transition started", "phase", c.transition.Phase(), "x", c.input.X, "y", c.input.Y)
	}
}

// OnWheel forwards wheel notches to the orbit helper. Positive steps zoom
// out.
func (c *Controller) OnWheel(steps int) {
	c.stage.orbit.Zoom(steps)
}

// RequestResize schedules a resize for the next tick. Only the latest
// request before a tick is applied.
func (c *Controller) RequestResize(vp scene.Viewport) {
	c.pendingResize = &vp
}

// OnResize applies vp now and renders a frame.
func (c *Controller) OnResize(vp scene.Viewport) error {
	if err := c.resize(vp); err != nil {
		return err
	}
	return c.Render()
}

// resize rebuilds when the aspect bucket changes and otherwise adjusts the
// current stage in place.
func (c *Controller) resize(vp scene.Viewport) error {
	if !validViewport(vp) {
		c.log.Debug("resize ignored", "width", vp.Width, "height", vp.Height)
		return nil
	}
	c.viewport = vp

	if vp.Bucket() != c.stage.scene.Bucket {
		c.log.Info("aspect bucket changed, rebuilding",
			"from", c.stage.scene.Bucket, "to", vp.Bucket())
		return c.build()
	}

	st := c.stage
	st.scene.Resize(vp)
	st.fb.Resize(int(vp.Width), int(vp.Height))
	st.raster.Resize()
	if err := c.surface.Attach(st.fb.Width, st.fb.Height); err != nil {
		return fmt.Errorf("attach surface: %w", err)
	}
	c.log.Debug("resized", "width", vp.Width, "height", vp.Height)
	return nil
}

// target returns the direct-mapping values for the current input.
func (c *Controller) target() Params {
	return Direct(c.input, c.viewport.Aspect())
}

// Tick runs one frame: pending resize, transition or direct mapping, mouse
// lights, orbit helper, scroll latch, then render and present.
func (c *Controller) Tick(dt time.Duration) error {
	if vp := c.pendingResize; vp != nil {
		c.pendingResize = nil
		if err := c.resize(*vp); err != nil {
			return err
		}
	}

	sc := c.stage.scene
	if c.transition.Active() {
		before := c.transition.Phase()
		c.transition.Advance(dt, c.input, c.target).Apply(sc)
		if after := c.transition.Phase(); after != before {
			c.log.Info("transition phase changed", "from", before, "to", after)
		}
	} else {
		c.target().Apply(sc)
	}

	MouseLights(c.input, c.viewport).Apply(sc)

	c.stage.orbit.Update()
	if c.scroll.Check(sc.Camera, c.stage.orbit) {
		c.log.Info("scroll started", "distance", sc.Camera.Position.Z)
	}

	return c.Render()
}

// Render draws the scene as it is and presents it.
func (c *Controller) Render() error {
	st := c.stage
	st.scene.Render(st.raster, st.fb)
	if err := c.surface.Present(st.fb); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	c.frames++
	return nil
}
