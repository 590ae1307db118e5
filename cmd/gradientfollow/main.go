// gradientfollow - a pointer-following gradient in your terminal.
// A lit cylinder fills the screen and its colors, roll and stretch follow
// the mouse.
//
// Controls:
//
//	Mouse move  - Steer the gradient
//	Scroll down - Pull the camera back (starts the scroll)
//	Arrow keys  - Simulate a device tilt
//	P           - Save a PNG snapshot
//	?           - Toggle HUD overlay
//	Q/Esc       - Quit
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}
