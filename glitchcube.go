// Package glitchcube is an interactive 3x3x3 twisty puzzle. It owns the
// piece model, animates quarter turns tick by tick, and turns pointer
// drags on the projected cube into layer turns.
//
// # Quick Start
//
// Drive a game from any host loop:
//
//	g := glitchcube.New(glitchcube.WithViewport(800, 600))
//
//	g.OnMoveStart(func(m cube.Move) {
//	    fmt.Println("turning", m)
//	})
//	g.OnSolved(func(moves int) {
//	    fmt.Println("solved in", moves)
//	    g.Reset()
//	})
//
//	for {
//	    g.Tick(16 * time.Millisecond)
//	    draw(g.Scene())
//	}
//
// # Input
//
// Hosts forward pointer events in pixels with PointerDown, PointerMove,
// PointerUp and PointerOut. A press on the cube followed by a drag across
// cells of the same face turns the layer holding both cells; a press off
// the cube orbits the camera. Arrow keys orbit, and TurnKey applies the
// keyboard bindings:
//
//	z x c v   X0+ X0- X2+ X2-
//	a s d f   Y0+ Y0- Y2+ Y2-
//	q w e r   Z0+ Z0- Z2+ Z2-
//
// # Notation
//
// Moves are written per frame (axis, layer, direction), e.g. "X0+". Standard
// face notation is accepted too:
//
//	moves, err := glitchcube.ParseNotation("R U R' U' X0+")
//
// # Standalone Replays
//
// Tracker applies recorded moves without animation and reports when the
// cube was first solved:
//
//	t, err := glitchcube.NewTracker(scramble)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	t.ApplyAll(moves)
//	fmt.Println("solved:", t.IsSolved())
package glitchcube
