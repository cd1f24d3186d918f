package openair

import (
	"fmt"
	"math"
)

// Projection is a planar position in kilometres. X is east, Y is north.
type Projection struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Projector maps a latitude/longitude in decimal degrees to the plane.
type Projector interface {
	Project(lat, lon float64) (Projection, error)
}

// Mean Earth radius used by both projections.
const projectionRadiusKm = 6371

// Default origin of the fixed projection.
const (
	DefaultReferenceLat = 50.0
	DefaultReferenceLon = 10.0
)

// ProjectionError reports a position that has no finite projection.
type ProjectionError struct {
	Lat, Lon float64
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("cannot project (%v, %v)", e.Lat, e.Lon)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// TransverseProjector is a spherical transverse Mercator projection about
// a fixed reference point. It does not depend on the data, so it can be
// used before a collection's centroid is known.
type TransverseProjector struct {
	RefLat, RefLon float64
}

func (t TransverseProjector) Project(lat, lon float64) (Projection, error) {
	if !finite(lat, lon) {
		return Projection{}, &ProjectionError{lat, lon}
	}
	phi := toRadians(lat)
	dLambda := toRadians(lon - t.RefLon)

	b := math.Cos(phi) * math.Sin(dLambda)
	x := projectionRadiusKm * math.Atanh(b)
	y := projectionRadiusKm * (math.Atan2(math.Tan(phi), math.Cos(dLambda)) - toRadians(t.RefLat))

	if !finite(x, y) {
		return Projection{}, &ProjectionError{lat, lon}
	}
	return Projection{X: x, Y: y}, nil
}

// LocalProjector is an equirectangular approximation anchored at
// (Lat0, Lon0), normally the centroid of a collection:
//
//	x = (lon-lon0) * cos(lat0) * R
//	y = (lat-lat0) * R
type LocalProjector struct {
	Lat0, Lon0 float64
}

func (l LocalProjector) Project(lat, lon float64) (Projection, error) {
	if !finite(lat, lon) {
		return Projection{}, &ProjectionError{lat, lon}
	}
	x := toRadians(lon-l.Lon0) * math.Cos(toRadians(l.Lat0)) * projectionRadiusKm
	y := toRadians(lat-l.Lat0) * projectionRadiusKm
	return Projection{X: x, Y: y}, nil
}

// projectPair sets pair.Projection, leaving it unchanged on error.
func projectPair(p Projector, pair *CoordinatePair) error {
	proj, err := p.Project(pair.Lat(), pair.Lon())
	if err != nil {
		return err
	}
	pair.Projection = proj
	return nil
}

// Normalisation maps projected kilometres onto a square canvas.
type Normalisation struct {
	Offset        float64 `json:"offset"`
	ScalingFactor float64 `json:"scalingFactor"`
}

func (n Normalisation) Apply(p Projection) Projection {
	return Projection{
		X: (p.X + n.Offset) * n.ScalingFactor,
		Y: (p.Y + n.Offset) * n.ScalingFactor,
	}
}
