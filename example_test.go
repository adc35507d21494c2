package archon_test

import (
	"fmt"

	"github.com/archonecs/archon"
)

// Position is a simple 2D-coordinate component.
type Position struct {
	X, Y float64
}

// Velocity is a simple 2D-movement component.
type Velocity struct {
	X, Y float64
}

// Example_basic shows entity creation, component access, and a two-type
// query over a freshly built World.
func Example_basic() {
	w := archon.NewWorld()

	e := archon.AddEntity2(w, Position{X: 10, Y: 20}, Velocity{X: 1, Y: 2})
	archon.AddEntity1(w, Position{X: 0, Y: 0}) // no velocity, excluded below

	archon.ForEach2(w, func(pos *Position, vel *Velocity) {
		pos.X += vel.X
		pos.Y += vel.Y
	})

	pos := archon.Get[Position](w, e)
	fmt.Printf("%.0f %.0f\n", pos.X, pos.Y)
	// Output: 11 22
}
