// glitchcube - an interactive 3x3 cube you turn by dragging across its
// stickers, in the terminal or a desktop window.
package main

import (
	"github.com/SeamusWaldron/glitchcube/internal/cli"
)

func main() {
	cli.Execute()
}
