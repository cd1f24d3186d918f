package openair

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type Direction int

const (
	Clockwise Direction = iota
	AntiClockwise
)

func (d Direction) String() string {
	if d == AntiClockwise {
		return "ccw"
	}
	return "cw"
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// sweep is the path arc sweep flag. Clockwise on the map is the negative
// sweep once the renderer flips Y.
func (d Direction) sweep() int {
	if d == AntiClockwise {
		return 1
	}
	return 0
}

type ShapeType int

const (
	ShapeUnknown ShapeType = iota
	ShapePolygon
	ShapeArc
	ShapeCircle
)

func (t ShapeType) String() string {
	switch t {
	case ShapePolygon:
		return "polygon"
	case ShapeArc:
		return "arc"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

func (t ShapeType) MarshalJSON() ([]byte, error) {
	switch t {
	case ShapePolygon, ShapeArc, ShapeCircle:
		return []byte(strconv.Quote(t.String())), nil
	default:
		return nil, fmt.Errorf("%d: unknown shape type", t)
	}
}

// Shape is one element of an airspace outline. Exactly one of Polygon,
// Arc and Circle is set, as given by Type.
type Shape struct {
	Type    ShapeType `json:"type"`
	Polygon *Polygon  `json:"polygon,omitempty"`
	Arc     *Arc      `json:"arc,omitempty"`
	Circle  *Circle   `json:"circle,omitempty"`
	// Document line the shape was defined on; a polygon's first vertex.
	Line int `json:"line"`
}

// Polygon is a run of consecutive DP vertices, in outline order.
type Polygon struct {
	Vertices []CoordinatePair `json:"vertices"`
}

type Arc struct {
	Start      CoordinatePair `json:"start"`
	End        CoordinatePair `json:"end"`
	Center     CoordinatePair `json:"center"`
	Direction  Direction      `json:"direction"`
	Radius     Distance       `json:"radius"`
	StartAngle Angle          `json:"startAngle"`
	EndAngle   Angle          `json:"endAngle"`
	Delta      Angle          `json:"delta"`
	LargeArc   bool           `json:"largeArc"`
}

// Circle is drawn as two semicircles from North, through South, and back.
type Circle struct {
	Center CoordinatePair `json:"center"`
	North  CoordinatePair `json:"north"`
	South  CoordinatePair `json:"south"`
	Radius Distance       `json:"radius"`
}

// ArcDelta returns end-start, corrected so that it runs in direction dir:
// positive for clockwise and negative for anti-clockwise.
func ArcDelta(start, end Angle, dir Direction) Angle {
	delta := end.Degrees - start.Degrees
	if dir == Clockwise && delta < 0 {
		delta += 360
	} else if dir == AntiClockwise && delta > 0 {
		delta -= 360
	}
	return AngleFromDegrees(delta)
}

func newArc(start, end, center CoordinatePair, radius Distance, startAngle, endAngle Angle, dir Direction) Arc {
	delta := ArcDelta(startAngle, endAngle, dir)
	return Arc{
		Start:      start,
		End:        end,
		Center:     center,
		Direction:  dir,
		Radius:     radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
		Delta:      delta,
		LargeArc:   math.Abs(delta.Degrees) > 180,
	}
}

// NewArcFromCoordinates builds the arc of a DB record. The angles are the
// bearings of start and end from center and the radius is the distance
// from center to start.
func NewArcFromCoordinates(start, end, center CoordinatePair, dir Direction) Arc {
	return newArc(start, end, center,
		HaversineDistance(start.Point(), center.Point()),
		InitialBearing(center.Point(), start.Point()),
		InitialBearing(center.Point(), end.Point()),
		dir)
}

// NewArcFromAngles builds the arc of a DA record, deriving the end points
// from the radius and bearings.
func NewArcFromAngles(center CoordinatePair, radius Distance, startAngle, endAngle Angle, dir Direction) Arc {
	start := PairFromPoint(DestinationPoint(center.Point(), startAngle, radius))
	end := PairFromPoint(DestinationPoint(center.Point(), endAngle, radius))
	return newArc(start, end, center, radius, startAngle, endAngle, dir)
}

func NewCircle(center CoordinatePair, radius Distance) Circle {
	return Circle{
		Center: center,
		North:  PairFromPoint(DestinationPoint(center.Point(), AngleFromDegrees(0), radius)),
		South:  PairFromPoint(DestinationPoint(center.Point(), AngleFromDegrees(180), radius)),
		Radius: radius,
	}
}

func (s Shape) Start() CoordinatePair {
	switch s.Type {
	case ShapePolygon:
		return s.Polygon.Vertices[0]
	case ShapeArc:
		return s.Arc.Start
	case ShapeCircle:
		return s.Circle.North
	default:
		panic("unhandled Shape type")
	}
}

func (s Shape) End() CoordinatePair {
	switch s.Type {
	case ShapePolygon:
		return s.Polygon.Vertices[len(s.Polygon.Vertices)-1]
	case ShapeArc:
		return s.Arc.End
	case ShapeCircle:
		return s.Circle.North
	default:
		panic("unhandled Shape type")
	}
}

// pairs returns every coordinate the shape references, for projection
// and centroid calculation.
func (s *Shape) pairs() []*CoordinatePair {
	switch s.Type {
	case ShapePolygon:
		ps := make([]*CoordinatePair, len(s.Polygon.Vertices))
		for i := range s.Polygon.Vertices {
			ps[i] = &s.Polygon.Vertices[i]
		}
		return ps
	case ShapeArc:
		return []*CoordinatePair{&s.Arc.Start, &s.Arc.End, &s.Arc.Center}
	case ShapeCircle:
		return []*CoordinatePair{&s.Circle.Center, &s.Circle.North, &s.Circle.South}
	default:
		return nil
	}
}

// referenced returns the coordinates written in (or implied by) the
// source: polygon vertices, arc start, end and centre, and circle centre.
func (s *Shape) referenced() []*CoordinatePair {
	if s.Type == ShapeCircle {
		return []*CoordinatePair{&s.Circle.Center}
	}
	return s.pairs()
}

// Path renders the shape as path segments using projected kilometres. A
// shape that starts an outline begins with a move, others join the
// previous shape with a line.
func (s Shape) Path(first bool) string {
	return s.path(first, func(p CoordinatePair) Projection { return p.Projection }, 1)
}

// ScaledPath is Path in canvas coordinates.
func (s Shape) ScaledPath(first bool, n Normalisation) string {
	at := func(p CoordinatePair) Projection {
		if p.Scaled != nil {
			return *p.Scaled
		}
		return n.Apply(p.Projection)
	}
	return s.path(first, at, n.ScalingFactor)
}

func (s Shape) path(first bool, at func(CoordinatePair) Projection, scale float64) string {
	var sb strings.Builder

	moveOrLine := func(p CoordinatePair) {
		cmd := "L"
		if first {
			cmd = "M"
			first = false
		}
		q := at(p)
		fmt.Fprintf(&sb, "%s %s %s ", cmd, num(q.X), num(q.Y))
	}
	arcTo := func(r float64, large bool, sweep int, p CoordinatePair) {
		q := at(p)
		fmt.Fprintf(&sb, "A %s %s 0 %d %d %s %s ", num(r), num(r), flag(large), sweep, num(q.X), num(q.Y))
	}

	switch s.Type {
	case ShapePolygon:
		for _, v := range s.Polygon.Vertices {
			moveOrLine(v)
		}
	case ShapeArc:
		moveOrLine(s.Arc.Start)
		arcTo(s.Arc.Radius.Kilometres()*scale, s.Arc.LargeArc, s.Arc.Direction.sweep(), s.Arc.End)
	case ShapeCircle:
		r := s.Circle.Radius.Kilometres() * scale
		moveOrLine(s.Circle.North)
		arcTo(r, true, 0, s.Circle.South)
		arcTo(r, true, 0, s.Circle.North)
	}

	return strings.TrimSuffix(sb.String(), " ")
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Points approximates the shape on the ground with a point every step
// degrees of arc.
func (s Shape) Points(step float64) orb.LineString {
	switch s.Type {
	case ShapePolygon:
		ls := make(orb.LineString, len(s.Polygon.Vertices))
		for i, v := range s.Polygon.Vertices {
			ls[i] = v.Point()
		}
		return ls
	case ShapeArc:
		return arcPoints(s.Arc.Center.Point(), s.Arc.Radius, s.Arc.StartAngle.Degrees, s.Arc.Delta.Degrees, s.Arc.End.Point(), step)
	case ShapeCircle:
		return arcPoints(s.Circle.Center.Point(), s.Circle.Radius, 0, 360, s.Circle.North.Point(), step)
	default:
		return nil
	}
}

// arcPoints walks delta degrees round centre from the bearing
// initialAngle. The exact end point is always appended so that the
// next shape joins precisely.
func arcPoints(centre orb.Point, radius Distance, initialAngle, delta float64, to orb.Point, step float64) orb.LineString {
	dir := 1.0
	if delta < 0 {
		dir = -1.0
	}
	final := initialAngle + delta

	var ls orb.LineString
	for a := initialAngle; dir*a < dir*final; a += dir * step {
		ls = append(ls, DestinationPoint(centre, AngleFromDegrees(a), radius))
	}

	return append(ls, to)
}
