package openair

import (
	"fmt"
	"math"
)

// Unit is a length unit. Its value is the number of metres in one unit.
type Unit float64

const (
	Metres        Unit = 1
	Kilometres    Unit = 1000
	NauticalMiles Unit = 1852
	Feet          Unit = 0.3048
	Inches        Unit = 0.0254
	Miles         Unit = 1609.344
)

func (u Unit) String() string {
	switch u {
	case Metres:
		return "m"
	case Kilometres:
		return "km"
	case NauticalMiles:
		return "nm"
	case Feet:
		return "ft"
	case Inches:
		return "in"
	case Miles:
		return "mi"
	}
	return fmt.Sprintf("unit(%gm)", float64(u))
}

// Distance is a length, held in metres.
type Distance struct {
	metres float64
}

func NewDistance(v float64, u Unit) Distance {
	return Distance{metres: v * float64(u)}
}

func (d Distance) In(u Unit) float64 {
	return d.metres / float64(u)
}

func (d Distance) Metres() float64        { return d.metres }
func (d Distance) Kilometres() float64    { return d.In(Kilometres) }
func (d Distance) NauticalMiles() float64 { return d.In(NauticalMiles) }
func (d Distance) Feet() float64          { return d.In(Feet) }
func (d Distance) Inches() float64        { return d.In(Inches) }
func (d Distance) Miles() float64         { return d.In(Miles) }

func (d Distance) String() string {
	return fmt.Sprintf("%gm", d.metres)
}

// MarshalJSON writes the distance as a number of metres.
func (d Distance) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%g", d.metres)), nil
}

// Angle holds the same angle in both degrees and radians.
type Angle struct {
	Degrees float64 `json:"degrees"`
	Radians float64 `json:"radians"`
}

func AngleFromDegrees(deg float64) Angle {
	return Angle{Degrees: deg, Radians: toRadians(deg)}
}

func AngleFromRadians(rad float64) Angle {
	return Angle{Degrees: toDegrees(rad), Radians: rad}
}

// Normalised returns the angle in the range [0, 360) degrees.
func (a Angle) Normalised() Angle {
	deg := math.Mod(a.Degrees, 360)
	if deg < 0 {
		deg += 360
	}
	return AngleFromDegrees(deg)
}

func (a Angle) String() string {
	return fmt.Sprintf("%g°", a.Degrees)
}
