package openair

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type Axis int

const (
	Latitude Axis = iota
	Longitude
)

func (a Axis) String() string {
	if a == Latitude {
		return "latitude"
	}
	return "longitude"
}

// Coordinate is one axis of a position: degrees, minutes and seconds plus
// a hemisphere letter, together with the equivalent signed decimal degrees
// (negative for S and W) and radians.
type Coordinate struct {
	Degrees    int     `json:"degrees"`
	Minutes    int     `json:"minutes"`
	Seconds    float64 `json:"seconds"`
	Hemisphere string  `json:"hemisphere"`
	Decimal    float64 `json:"decimal"`
	Radians    float64 `json:"radians"`
}

var (
	ErrNoCoordinate = errors.New("no coordinate found")

	// e.g. "51:28:30.5 N", "051:28:30N", "51:28.5 N"
	reCoordinate = regexp.MustCompile(`(\d{1,3})\s*:\s*(\d{1,2}(?:\.\d+)?)(?:\s*:\s*(\d{1,2}(?:\.\d*)?))?\s*([NSEWnsew])\b`)
)

// ParseCoordinate parses a single "DD:MM:SS.ss H" token.
func ParseCoordinate(s string) (Coordinate, error) {
	m := reCoordinate.FindStringSubmatch(s)
	if m == nil {
		return Coordinate{}, fmt.Errorf("%#q: %w", s, ErrNoCoordinate)
	}
	return coordinateFromMatch(m)
}

func coordinateFromMatch(m []string) (Coordinate, error) {
	deg, err := strconv.Atoi(m[1])
	if err != nil {
		return Coordinate{}, fmt.Errorf("bad degrees %#q: %w", m[1], err)
	}
	minutes, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("bad minutes %#q: %w", m[2], err)
	}
	var seconds float64
	if m[3] != "" {
		if seconds, err = strconv.ParseFloat(m[3], 64); err != nil {
			return Coordinate{}, fmt.Errorf("bad seconds %#q: %w", m[3], err)
		}
		if minutes != math.Trunc(minutes) {
			return Coordinate{}, fmt.Errorf("%#q: fractional minutes with seconds", m[0])
		}
	}
	if minutes >= 60 || seconds >= 60 {
		return Coordinate{}, fmt.Errorf("%#q: minutes and seconds must be less than 60", m[0])
	}

	// "DD:MM.mmm" - move the fraction of a minute into the seconds.
	whole := math.Trunc(minutes)
	seconds += (minutes - whole) * 60

	hemisphere := strings.ToUpper(m[4])
	c := Coordinate{
		Degrees:    deg,
		Minutes:    int(whole),
		Seconds:    seconds,
		Hemisphere: hemisphere,
	}
	c.Decimal = float64(deg) + whole/60.0 + seconds/3600.0
	if hemisphere == "S" || hemisphere == "W" {
		c.Decimal = -c.Decimal
	}
	c.Radians = toRadians(c.Decimal)

	limit := 180.0
	if c.Axis() == Latitude {
		limit = 90
	}
	if math.Abs(c.Decimal) > limit {
		return Coordinate{}, fmt.Errorf("%#q: %s out of range", m[0], c.Axis())
	}
	return c, nil
}

// CoordinateFromDecimal builds a coordinate from signed decimal degrees,
// deriving the DMS and hemisphere representation.
func CoordinateFromDecimal(dec float64, axis Axis) Coordinate {
	var hemisphere string
	switch {
	case axis == Latitude && dec < 0:
		hemisphere = "S"
	case axis == Latitude:
		hemisphere = "N"
	case dec < 0:
		hemisphere = "W"
	default:
		hemisphere = "E"
	}

	abs := math.Abs(dec)
	deg := math.Floor(abs)
	minutes := math.Floor((abs - deg) * 60)
	seconds := (abs - deg - minutes/60) * 3600
	if seconds < 0 {
		seconds = 0
	}

	return Coordinate{
		Degrees:    int(deg),
		Minutes:    int(minutes),
		Seconds:    seconds,
		Hemisphere: hemisphere,
		Decimal:    dec,
		Radians:    toRadians(dec),
	}
}

func CoordinateFromRadians(rad float64, axis Axis) Coordinate {
	c := CoordinateFromDecimal(toDegrees(rad), axis)
	c.Radians = rad
	return c
}

func (c Coordinate) Axis() Axis {
	if c.Hemisphere == "N" || c.Hemisphere == "S" {
		return Latitude
	}
	return Longitude
}

// String formats the coordinate as OpenAir DMS, rounded to hundredths of a
// second: "51:28:30.50 N" or "000:27:41.00 W".
func (c Coordinate) String() string {
	hundredths := int64(math.Round(math.Abs(c.Decimal) * 360000))
	deg := hundredths / 360000
	minutes := (hundredths % 360000) / 6000
	seconds := float64(hundredths%6000) / 100

	if c.Axis() == Latitude {
		return fmt.Sprintf("%02d:%02d:%05.2f %s", deg, minutes, seconds, c.Hemisphere)
	}
	return fmt.Sprintf("%03d:%02d:%05.2f %s", deg, minutes, seconds, c.Hemisphere)
}

// CoordinatePair is a geographic position together with its planar
// projection and, once a collection has been normalised, its position in
// canvas space.
type CoordinatePair struct {
	Latitude   Coordinate  `json:"latitude"`
	Longitude  Coordinate  `json:"longitude"`
	Projection Projection  `json:"projection"`
	Scaled     *Projection `json:"scaled,omitempty"`
}

func NewCoordinatePair(lat, lon float64) CoordinatePair {
	return CoordinatePair{
		Latitude:  CoordinateFromDecimal(lat, Latitude),
		Longitude: CoordinateFromDecimal(lon, Longitude),
	}
}

// PairFromPoint converts an orb.Point, which is {lon, lat}.
func PairFromPoint(p orb.Point) CoordinatePair {
	return NewCoordinatePair(p.Lat(), p.Lon())
}

// ParseCoordinatePair finds the first two coordinate tokens in s. The token
// with an N or S hemisphere is the latitude; if the first token is not a
// latitude it is taken as the longitude and the second as the latitude.
func ParseCoordinatePair(s string) (CoordinatePair, error) {
	matches := reCoordinate.FindAllStringSubmatch(s, 2)
	if len(matches) < 2 {
		return CoordinatePair{}, fmt.Errorf("%#q: need two coordinates: %w", s, ErrNoCoordinate)
	}

	first, err := coordinateFromMatch(matches[0])
	if err != nil {
		return CoordinatePair{}, err
	}
	second, err := coordinateFromMatch(matches[1])
	if err != nil {
		return CoordinatePair{}, err
	}

	if first.Axis() == Latitude {
		return CoordinatePair{Latitude: first, Longitude: second}, nil
	}
	return CoordinatePair{Latitude: second, Longitude: first}, nil
}

func (p CoordinatePair) Lat() float64 { return p.Latitude.Decimal }
func (p CoordinatePair) Lon() float64 { return p.Longitude.Decimal }

// Point returns the position as an orb.Point, i.e. {lon, lat}.
func (p CoordinatePair) Point() orb.Point {
	return orb.Point{p.Longitude.Decimal, p.Latitude.Decimal}
}

func (p CoordinatePair) String() string {
	return p.Latitude.String() + " " + p.Longitude.String()
}

// SamePosition reports whether both pairs refer to the same place, to
// within about a centimetre.
func (p CoordinatePair) SamePosition(q CoordinatePair) bool {
	const eps = 1e-7
	return math.Abs(p.Lat()-q.Lat()) < eps && math.Abs(p.Lon()-q.Lon()) < eps
}
