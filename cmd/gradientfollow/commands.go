package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/additionsdigital/gradientfollow/internal/config"
	"github.com/additionsdigital/gradientfollow/internal/logging"
	"github.com/additionsdigital/gradientfollow/pkg/follow"
	"github.com/additionsdigital/gradientfollow/pkg/math3d"
	"github.com/additionsdigital/gradientfollow/pkg/models"
	"github.com/additionsdigital/gradientfollow/pkg/render"
	"github.com/additionsdigital/gradientfollow/pkg/scene"
	"github.com/spf13/cobra"
)

// settings is the flag layer on top of the config file.
type settings struct {
	configPath string
	fps        int
	background string
	transition int
	segments   int
	logFile    string
	hud        bool
}

func (s *settings) bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&s.configPath, "config", config.DefaultPath, "Path to the YAML settings file")
	f.IntVar(&s.fps, "fps", 0, "Target FPS")
	f.StringVar(&s.background, "bg", "", "Background color (R,G,B)")
	f.IntVar(&s.transition, "transition", 0, "Entry transition length in milliseconds")
	f.IntVar(&s.segments, "segments", 0, "Cylinder radial segments")
	f.StringVar(&s.logFile, "log", "", "Log file (empty string disables logging)")
	f.BoolVar(&s.hud, "hud", false, "Show the HUD overlay at start")
}

// load reads the config file and applies the flags the user set.
func (s *settings) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = s.fps
	}
	if flags.Changed("bg") {
		cfg.Background = s.background
	}
	if flags.Changed("transition") {
		cfg.TransitionMillis = s.transition
	}
	if flags.Changed("segments") {
		cfg.RadialSegments = s.segments
	}
	if flags.Changed("log") {
		cfg.LogFile = s.logFile
	}
	if flags.Changed("hud") {
		cfg.ShowHUD = s.hud
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// controllerOptions turns the settings into controller options.
func controllerOptions(cfg config.Config, log *slog.Logger) (follow.Options, error) {
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return follow.Options{}, err
	}
	return follow.Options{
		FPS:        cfg.FPS,
		Transition: cfg.Transition(),
		Scene:      scene.Options{Background: bg, RadialSegments: cfg.RadialSegments},
		Logger:     log,
	}, nil
}

func newRootCmd() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:   "gradientfollow",
		Short: "A pointer-following gradient in your terminal",
		Long: `Renders a lit cylinder that fills the terminal. Its roll, stretch and
light colors follow the mouse; arrow keys simulate a device tilt.

Controls: mouse to steer, scroll down to pull back, ? for the HUD,
p for a PNG snapshot, q or Esc to quit.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			return runInteractive(cmd.Context(), cfg)
		},
	}
	s.bind(root)
	root.AddCommand(newSnapshotCmd(s), newExportCmd(s))
	return root
}

func newSnapshotCmd(s *settings) *cobra.Command {
	var (
		width, height int
		x, y          float64
		frames        int
		enter         bool
		out           string
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame headless and save it as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			log, closer, err := logging.Open(cfg.LogFile, slog.LevelInfo)
			if err != nil {
				return err
			}
			defer closer.Close()

			opts, err := controllerOptions(cfg, log)
			if err != nil {
				return err
			}
			in := follow.InputVector{X: x, Y: y}
			fb, err := snapshot(scene.Viewport{Width: float64(width), Height: float64(height)}, in, enter, frames, opts)
			if err != nil {
				return err
			}
			if err := fb.SavePNG(out); err != nil {
				return err
			}
			log.Info("snapshot saved", "path", out, "width", width, "height", height)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%dx%d)\n", out, width, height)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&width, "width", 320, "Image width in pixels")
	f.IntVar(&height, "height", 160, "Image height in pixels")
	f.Float64Var(&x, "x", 0.5, "Pointer X as a fraction of the width")
	f.Float64Var(&y, "y", 0.5, "Pointer Y as a fraction of the height")
	f.IntVar(&frames, "frames", 1, "Frames to run before saving")
	f.BoolVar(&enter, "enter", false, "Start the entry transition at the pointer")
	f.StringVarP(&out, "out", "o", "gradientfollow.png", "Output PNG path")
	return cmd
}

// snapshot runs frames ticks headless with the pointer at in and returns the
// last framebuffer.
func snapshot(vp scene.Viewport, in follow.InputVector, enter bool, frames int, opts follow.Options) (*render.Framebuffer, error) {
	ctrl, err := follow.New(vp, discardSurface{}, opts)
	if err != nil {
		return nil, err
	}

	px, py := in.X*vp.Width, in.Y*vp.Height
	if enter {
		ctrl.OnPointerEnter(px, py)
	} else {
		ctrl.OnPointerMove(px, py)
	}

	dt := time.Second / time.Duration(opts.FPS)
	for range max(frames, 1) {
		if err := ctrl.Tick(dt); err != nil {
			return nil, err
		}
	}
	return ctrl.Framebuffer(), nil
}

// discardSurface is the headless surface.
type discardSurface struct{}

func (discardSurface) Attach(int, int) error            { return nil }
func (discardSurface) Present(*render.Framebuffer) error { return nil }

func newExportCmd(s *settings) *cobra.Command {
	var (
		width, height float64
		out           string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the scene's cylinder as binary glTF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			if width < 1 || height < 1 {
				return fmt.Errorf("invalid viewport %vx%v", width, height)
			}
			sc := scene.Build(scene.Viewport{Width: width, Height: height}, scene.Options{RadialSegments: cfg.RadialSegments})
			t := models.NodeTransform{
				RotationZ: sc.MeshRotationZ,
				Scale:     math3d.V3(sc.MeshScaleX, 1, 1),
			}
			if err := models.NewGLTFExporter().SaveGLB(out, sc.Mesh, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d vertices, %d triangles)\n",
				out, sc.Mesh.VertexCount(), sc.Mesh.TriangleCount())
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&width, "width", 1000, "Viewport width; the cylinder length")
	f.Float64Var(&height, "height", 500, "Viewport height; the cylinder diameter")
	f.StringVarP(&out, "out", "o", "gradientfollow.glb", "Output GLB path")
	return cmd
}
