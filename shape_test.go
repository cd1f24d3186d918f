package openair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArcDelta(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		dir        Direction
		wantDelta  float64
		wantLarge  bool
	}{
		{"Clockwise negative raw delta", 90, 0, Clockwise, 270, true},
		{"Anti-clockwise positive raw delta", 0, 90, AntiClockwise, -270, true},
		{"Clockwise positive raw delta", 0, 90, Clockwise, 90, false},
		{"Anti-clockwise negative raw delta", 90, 0, AntiClockwise, -90, false},
		{"Clockwise through north", 350, 10, Clockwise, 20, false},
		{"Exactly half", 0, 180, Clockwise, 180, false},
		{"Just over half", 0, 181, Clockwise, 181, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := ArcDelta(AngleFromDegrees(tt.start), AngleFromDegrees(tt.end), tt.dir)
			assert.InDelta(t, tt.wantDelta, delta.Degrees, 1e-9)

			arc := NewArcFromAngles(NewCoordinatePair(51, 0), NewDistance(5, NauticalMiles),
				AngleFromDegrees(tt.start), AngleFromDegrees(tt.end), tt.dir)
			assert.InDelta(t, tt.wantDelta, arc.Delta.Degrees, 1e-9)
			assert.Equal(t, tt.wantLarge, arc.LargeArc)
		})
	}
}

func TestNewArcFromAngles(t *testing.T) {
	centre := NewCoordinatePair(51, 0)
	radius := NewDistance(10, NauticalMiles)
	arc := NewArcFromAngles(centre, radius, AngleFromDegrees(45), AngleFromDegrees(135), Clockwise)

	assert.InDelta(t, radius.Metres(), HaversineDistance(centre.Point(), arc.Start.Point()).Metres(), 1e-6)
	assert.InDelta(t, radius.Metres(), HaversineDistance(centre.Point(), arc.End.Point()).Metres(), 1e-6)
	assert.InDelta(t, 45, InitialBearing(centre.Point(), arc.Start.Point()).Degrees, 1e-6)
	assert.InDelta(t, 135, InitialBearing(centre.Point(), arc.End.Point()).Degrees, 1e-6)
	assert.Equal(t, Clockwise, arc.Direction)
}

func TestNewArcFromCoordinates(t *testing.T) {
	centre := NewCoordinatePair(51, 0)
	radius := NewDistance(5, NauticalMiles)
	start := PairFromPoint(DestinationPoint(centre.Point(), AngleFromDegrees(300), radius))
	end := PairFromPoint(DestinationPoint(centre.Point(), AngleFromDegrees(60), radius))

	arc := NewArcFromCoordinates(start, end, centre, Clockwise)
	assert.InDelta(t, radius.Metres(), arc.Radius.Metres(), 1e-6)
	assert.InDelta(t, 300, arc.StartAngle.Degrees, 1e-6)
	assert.InDelta(t, 60, arc.EndAngle.Degrees, 1e-6)
	assert.InDelta(t, 120, arc.Delta.Degrees, 1e-6)
	assert.False(t, arc.LargeArc)

	arc = NewArcFromCoordinates(start, end, centre, AntiClockwise)
	assert.InDelta(t, -240, arc.Delta.Degrees, 1e-6)
	assert.True(t, arc.LargeArc)
}

func TestNewCircle(t *testing.T) {
	centre := NewCoordinatePair(52, -1)
	c := NewCircle(centre, NewDistance(10, NauticalMiles))

	assert.InDelta(t, 18520, c.Radius.Metres(), 1e-9)
	assert.Greater(t, c.North.Lat(), centre.Lat())
	assert.Less(t, c.South.Lat(), centre.Lat())
	assert.InDelta(t, centre.Lon(), c.North.Lon(), 1e-9)
	assert.InDelta(t, 18520, HaversineDistance(centre.Point(), c.North.Point()).Metres(), 1e-6)
	assert.InDelta(t, 18520, HaversineDistance(centre.Point(), c.South.Point()).Metres(), 1e-6)
}

func projected(x, y float64) CoordinatePair {
	return CoordinatePair{Projection: Projection{X: x, Y: y}}
}

func TestShapePath(t *testing.T) {
	poly := Shape{Type: ShapePolygon, Polygon: &Polygon{Vertices: []CoordinatePair{
		projected(0, 0), projected(1, 2), projected(3.5, -1),
	}}}
	assert.Equal(t, "M 0 0 L 1 2 L 3.5 -1", poly.Path(true))
	assert.Equal(t, "L 0 0 L 1 2 L 3.5 -1", poly.Path(false))

	arc := Shape{Type: ShapeArc, Arc: &Arc{
		Start:     projected(0, 1),
		End:       projected(1, 0),
		Radius:    NewDistance(1, Kilometres),
		Direction: Clockwise,
	}}
	assert.Equal(t, "L 0 1 A 1 1 0 0 0 1 0", arc.Path(false))

	arc.Arc.Direction = AntiClockwise
	arc.Arc.LargeArc = true
	assert.Equal(t, "M 0 1 A 1 1 0 1 1 1 0", arc.Path(true))

	circle := Shape{Type: ShapeCircle, Circle: &Circle{
		North:  projected(0, 1),
		South:  projected(0, -1),
		Radius: NewDistance(1, Kilometres),
	}}
	assert.Equal(t, "M 0 1 A 1 1 0 1 0 0 -1 A 1 1 0 1 0 0 1", circle.Path(true))
}

func TestShapeScaledPath(t *testing.T) {
	poly := Shape{Type: ShapePolygon, Polygon: &Polygon{Vertices: []CoordinatePair{
		projected(-1, -1), projected(1, 1),
	}}}
	n := Normalisation{Offset: 1, ScalingFactor: 10}
	assert.Equal(t, "M 0 0 L 20 20", poly.ScaledPath(true, n))

	circle := Shape{Type: ShapeCircle, Circle: &Circle{
		North:  projected(0, 1),
		South:  projected(0, -1),
		Radius: NewDistance(1, Kilometres),
	}}
	assert.Equal(t, "M 10 20 A 10 10 0 1 0 10 0 A 10 10 0 1 0 10 20", circle.ScaledPath(true, n))
}

func TestShapePoints(t *testing.T) {
	centre := NewCoordinatePair(51, 0)
	radius := NewDistance(10, Kilometres)

	t.Run("Clockwise 90-degree arc", func(t *testing.T) {
		arc := NewArcFromAngles(centre, radius, AngleFromDegrees(0), AngleFromDegrees(90), Clockwise)
		result := Shape{Type: ShapeArc, Arc: &arc}.Points(10)

		// Points every 10 degrees: 0, 10, ... 80, plus the end point.
		assert.Len(t, result, 10)
		assert.Equal(t, arc.End.Point(), result[len(result)-1], "Last point should match end point exactly")
		assert.InDelta(t, arc.Start.Lat(), result[0].Lat(), 1e-9)
	})

	t.Run("Counter-clockwise 90-degree arc", func(t *testing.T) {
		arc := NewArcFromAngles(centre, radius, AngleFromDegrees(0), AngleFromDegrees(270), AntiClockwise)
		result := Shape{Type: ShapeArc, Arc: &arc}.Points(10)

		assert.Len(t, result, 10)
		assert.Equal(t, arc.End.Point(), result[len(result)-1])
		// Heading west from north.
		assert.Less(t, result[1].Lon(), centre.Lon())
	})

	t.Run("Clockwise arc crossing 0 degrees", func(t *testing.T) {
		arc := NewArcFromAngles(centre, radius, AngleFromDegrees(350), AngleFromDegrees(10), Clockwise)
		result := Shape{Type: ShapeArc, Arc: &arc}.Points(10)

		assert.Len(t, result, 3)
		assert.Equal(t, arc.End.Point(), result[len(result)-1])
	})

	t.Run("Circle", func(t *testing.T) {
		c := NewCircle(centre, radius)
		result := Shape{Type: ShapeCircle, Circle: &c}.Points(10)

		assert.Len(t, result, 37)
		for _, p := range result {
			assert.InDelta(t, radius.Metres(), HaversineDistance(centre.Point(), p).Metres(), 1e-6)
		}
	})

	t.Run("Polygon", func(t *testing.T) {
		poly := Shape{Type: ShapePolygon, Polygon: &Polygon{Vertices: []CoordinatePair{
			NewCoordinatePair(51, 0), NewCoordinatePair(52, 1),
		}}}
		result := poly.Points(10)
		require.Len(t, result, 2)
		assert.Equal(t, 52.0, result[1].Lat())
	})
}

func TestShapeStartEnd(t *testing.T) {
	centre := NewCoordinatePair(51, 0)
	arc := NewArcFromAngles(centre, NewDistance(5, NauticalMiles), AngleFromDegrees(0), AngleFromDegrees(90), Clockwise)
	s := Shape{Type: ShapeArc, Arc: &arc}
	assert.Equal(t, arc.Start, s.Start())
	assert.Equal(t, arc.End, s.End())

	c := NewCircle(centre, NewDistance(5, NauticalMiles))
	s = Shape{Type: ShapeCircle, Circle: &c}
	assert.Equal(t, c.North, s.Start())
	assert.Equal(t, c.North, s.End())
}
