package follow

import (
	"context"
	"time"
)

// maxFrameDelta caps the frame delta after stalls so a transition cannot
// jump to its end in one frame.
const maxFrameDelta = 100 * time.Millisecond

// Event is an input applied on the driver goroutine.
type Event func(*Controller)

// Run ticks the controller at its frame rate until ctx is cancelled or
// events is closed. Events are applied between frames in arrival order. A
// frame error stops the loop and is returned.
func (c *Controller) Run(ctx context.Context, events <-chan Event) error {
	ticker := time.NewTicker(time.Second / time.Duration(c.opts.FPS))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			ev(c)

		case now := <-ticker.C:
			dt := min(now.Sub(last), maxFrameDelta)
			last = now
			if err := c.Tick(dt); err != nil {
				return err
			}
		}
	}
}
