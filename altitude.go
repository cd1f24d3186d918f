package openair

import (
	"regexp"
	"strconv"
	"strings"
)

type AltitudeReference string

const (
	ReferenceMSL       AltitudeReference = "MSL"
	ReferenceAGL       AltitudeReference = "AGL"
	ReferenceSFC       AltitudeReference = "SFC"
	ReferenceUnlimited AltitudeReference = "UNL"
	ReferenceNOTAM     AltitudeReference = "NOTAM"
	ReferenceBCTA      AltitudeReference = "BCTA"
	ReferenceUnknown   AltitudeReference = "UNKNOWN"
)

// PressureISA marks altitudes given as flight levels, i.e. relative to the
// standard 1013.25hPa pressure datum.
const PressureISA = "ISA"

// DefaultMaxAltitudeFeet is the value given to unlimited ceilings.
const DefaultMaxAltitudeFeet = 60000

// Altitude is a floor or ceiling. Value is nil when the text does not
// resolve to a height (NOTAM, BCTA or unrecognised text); callers pick
// their own fallback with FeetOr.
type Altitude struct {
	Raw               string            `json:"raw"`
	Value             *Distance         `json:"value"`
	Reference         AltitudeReference `json:"reference"`
	FlightLevel       int               `json:"flightLevel,omitempty"`
	PressureReference string            `json:"pressureReference,omitempty"`
}

var (
	reFlightLevel = regexp.MustCompile(`^FL(\d+)(?:MSL|AMSL|STD)?$`)
	// 1500FT, 1500FTAMSL, 2000MSL, 300MAGL, 1000FTSFC (whitespace already removed)
	reHeight = regexp.MustCompile(`^(\d+(?:\.\d+)?)(FT|F|M)?(AMSL|MSL|AGL|ASFC|SFC|GND)?$`)
)

// ParseAltitude interprets the text following an AL or AH command. Unlimited
// ceilings are given maxFeet rather than a nil value so that they can still
// be extruded.
func ParseAltitude(raw string, maxFeet float64) Altitude {
	a := Altitude{Raw: strings.TrimSpace(raw), Reference: ReferenceUnknown}
	h := strings.ToUpper(strings.Join(strings.Fields(raw), ""))

	switch {
	case h == "SFC" || h == "GND":
		a.Reference = ReferenceSFC
		a.Value = feet(0)

	case h == "UNL" || h == "UNLIMITED" || h == "UNLTD":
		a.Reference = ReferenceUnlimited
		a.Value = feet(maxFeet)

	case strings.Contains(h, "NOTAM"):
		a.Reference = ReferenceNOTAM

	case strings.Contains(h, "BCTA"):
		a.Reference = ReferenceBCTA

	case reFlightLevel.MatchString(h):
		fl, err := strconv.Atoi(reFlightLevel.FindStringSubmatch(h)[1])
		if err != nil {
			break
		}
		a.Reference = ReferenceMSL
		a.FlightLevel = fl
		a.PressureReference = PressureISA
		a.Value = feet(float64(fl) * 100)

	case reHeight.MatchString(h):
		m := reHeight.FindStringSubmatch(h)
		unit, ref := m[2], m[3]
		if unit == "" && ref == "" {
			// A bare number could be feet or metres.
			break
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			break
		}
		d := NewDistance(v, Feet)
		if unit == "M" {
			d = NewDistance(v, Metres)
		}
		a.Value = &d
		switch ref {
		case "AGL", "ASFC", "SFC", "GND":
			a.Reference = ReferenceAGL
		default:
			a.Reference = ReferenceMSL
		}
	}

	return a
}

func feet(f float64) *Distance {
	d := NewDistance(f, Feet)
	return &d
}

// Resolved reports whether the altitude has a numeric value.
func (a Altitude) Resolved() bool {
	return a.Value != nil
}

// Feet returns the altitude in feet, and false if it is unresolved.
func (a Altitude) Feet() (float64, bool) {
	if a.Value == nil {
		return 0, false
	}
	return a.Value.Feet(), true
}

// FeetOr returns the altitude in feet, or fallback if it is unresolved.
func (a Altitude) FeetOr(fallback float64) float64 {
	if f, ok := a.Feet(); ok {
		return f
	}
	return fallback
}

func (a Altitude) String() string {
	if a.Value == nil {
		return a.Raw + " (" + string(a.Reference) + ")"
	}
	if a.FlightLevel != 0 {
		return "FL" + strconv.Itoa(a.FlightLevel)
	}
	return strconv.FormatFloat(a.Value.Feet(), 'f', 0, 64) + "ft " + string(a.Reference)
}
