package openair

import (
	"math"

	"github.com/paulmach/orb"
)

// Spherical Earth used for all arc and circle geometry. Note this is not
// orb.EarthRadius (6378137m); published OpenAir renderers use 6378km and
// arc endpoints have to agree with them.
const earthRadiusMetres = 6378000

// EarthRadius is the radius of the sphere used for geodesic calculations.
var EarthRadius = NewDistance(earthRadiusMetres, Metres)

func toRadians(angle float64) float64 {
	return math.Pi / 180.0 * angle
}

func toDegrees(angle float64) float64 {
	return 180.0 / math.Pi * angle
}

// HaversineDistance returns the great circle distance between two points.
func HaversineDistance(from, to orb.Point) Distance {
	lat1 := toRadians(from.Lat())
	lat2 := toRadians(to.Lat())
	dLat := lat2 - lat1
	dLon := toRadians(to.Lon() - from.Lon())

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return NewDistance(earthRadiusMetres*c, Metres)
}

// InitialBearing returns the bearing, in [0, 360) degrees, of the great
// circle leaving from towards to.
func InitialBearing(from, to orb.Point) Angle {
	lat1 := toRadians(from.Lat())
	lat2 := toRadians(to.Lat())
	dLon := toRadians(to.Lon() - from.Lon())

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return AngleFromRadians(math.Atan2(y, x)).Normalised()
}

// DestinationPoint calculates a destination point given a start point, bearing, and distance.
// This is the direct geodesic problem on a sphere:
//
//	lat2 = asin(sin(lat1)*cos(d) + cos(lat1)*sin(d)*cos(bearing))
//	lon2 = lon1 + atan2(sin(bearing)*sin(d)*cos(lat1), cos(d) - sin(lat1)*sin(lat2))
//
// where d is the angular distance.
func DestinationPoint(start orb.Point, bearing Angle, distance Distance) orb.Point {
	angularDistance := distance.Metres() / earthRadiusMetres

	lat1 := toRadians(start.Lat())
	lon1 := toRadians(start.Lon())

	sinLat2 := math.Sin(lat1)*math.Cos(angularDistance) +
		math.Cos(lat1)*math.Sin(angularDistance)*math.Cos(bearing.Radians)
	lat2 := math.Asin(sinLat2)

	x := math.Cos(angularDistance) - math.Sin(lat1)*sinLat2
	y := math.Sin(bearing.Radians) * math.Sin(angularDistance) * math.Cos(lat1)
	lon2 := lon1 + math.Atan2(y, x)

	// orb.Point is {lon, lat}.
	return orb.Point{toDegrees(lon2), toDegrees(lat2)}
}

// EuclideanDistance is the straight line distance between two planar points.
func EuclideanDistance(a, b Projection) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
