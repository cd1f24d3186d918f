package openair

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Enclosing returns the airspaces whose outline contains point, ignoring
// altitude.
func (c *Collection) Enclosing(point orb.Point) []Airspace {
	enclosing := make([]Airspace, 0)
	for i := range c.Airspaces {
		if c.Airspaces[i].Contains(point) {
			enclosing = append(enclosing, c.Airspaces[i])
		}
	}
	return enclosing
}

// Contains reports whether point lies inside the airspace's outline.
func (a *Airspace) Contains(point orb.Point) bool {
	if len(a.Shapes) == 1 && a.Shapes[0].Type == ShapeCircle {
		circle := a.Shapes[0].Circle
		return HaversineDistance(point, circle.Center.Point()).Metres() <= circle.Radius.Metres()
	}

	ring := a.Ring()
	if len(ring) < 4 {
		return false
	}
	return planar.RingContains(ring, point)
}
