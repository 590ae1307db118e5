package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/additionsdigital/gradientfollow/internal/config"
	"github.com/additionsdigital/gradientfollow/internal/hud"
	"github.com/additionsdigital/gradientfollow/internal/logging"
	"github.com/additionsdigital/gradientfollow/pkg/follow"
	"github.com/additionsdigital/gradientfollow/pkg/render"
	"github.com/additionsdigital/gradientfollow/pkg/scene"
	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/sync/errgroup"
)

// hudSurface presents frames on the terminal and draws the HUD on top.
// Present runs on the driver goroutine, so reading the controller is safe.
type hudSurface struct {
	*render.TerminalSurface
	hud        *hud.HUD
	ctrl       *follow.Controller
	show       bool
	cols, rows int
}

func (s *hudSurface) Attach(width, height int) error {
	s.cols, s.rows = width, (height+1)/2
	return s.TerminalSurface.Attach(width, height)
}

func (s *hudSurface) Present(fb *render.Framebuffer) error {
	if err := s.TerminalSurface.Present(fb); err != nil {
		return err
	}
	s.hud.UpdateFPS(time.Now())
	if s.ctrl == nil {
		return nil
	}

	c := s.ctrl
	in := c.Input()
	st := hud.Status{
		Width:         s.cols,
		Height:        s.rows,
		ViewportW:     fb.Width,
		ViewportH:     fb.Height,
		Bucket:        c.Scene().Bucket,
		InputX:        in.X,
		InputY:        in.Y,
		Mode:          c.Mode(),
		Phase:         c.Phase().String(),
		ScrollStarted: c.ScrollStarted(),
		Triangles:     c.Triangles(),
	}
	return s.hud.Render(os.Stdout, st, s.show)
}

func runInteractive(ctx context.Context, cfg config.Config) error {
	log, closer, err := logging.Open(cfg.LogFile, slog.LevelInfo)
	if err != nil {
		return err
	}
	defer closer.Close()

	opts, err := controllerOptions(cfg, log)
	if err != nil {
		return err
	}

	// Create terminal
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	surface := &hudSurface{
		TerminalSurface: render.NewTerminalSurface(term),
		hud:             hud.New(),
		show:            cfg.ShowHUD,
	}

	w, h := render.PixelSize(cols, rows)
	ctrl, err := follow.New(scene.Viewport{Width: float64(w), Height: float64(h)}, surface, opts)
	if err != nil {
		return err
	}
	surface.ctrl = ctrl

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	events := make(chan follow.Event, 64)
	in := newTranslator(surface, log, cancel)
	g, ctx := errgroup.WithContext(ctx)

	// Event pump: terminal events become controller events.
	g.Go(func() error {
		termEvents := term.Events()
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-termEvents:
				if !ok {
					return nil
				}
				fe := in.translate(ev)
				if fe == nil {
					continue
				}
				select {
				case events <- fe:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})

	// Driver: the only goroutine touching the controller.
	g.Go(func() error {
		defer cancel()
		return ctrl.Run(ctx, events)
	})

	log.Info("session started", "cols", cols, "rows", rows, "fps", cfg.FPS)
	err = g.Wait()
	log.Info("session ended", "frames", ctrl.Frames(), "scroll_started", ctrl.ScrollStarted())
	return err
}
