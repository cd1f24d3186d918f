package openair

import "strings"

// AirspaceClass is the AC record of an airspace.
type AirspaceClass struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

const ClassUnknown = "UNKNOWN"

var airspaceClasses = map[string]AirspaceClass{
	"R":   {"R", "Restricted", "#d62728"},
	"Q":   {"Q", "Danger", "#ff7f0e"},
	"P":   {"P", "Prohibited", "#8b0000"},
	"A":   {"A", "Class A", "#1f3a93"},
	"B":   {"B", "Class B", "#2c55c9"},
	"C":   {"C", "Class C", "#3b7dd8"},
	"D":   {"D", "Class D", "#4aa3df"},
	"E":   {"E", "Class E", "#2ca02c"},
	"F":   {"F", "Class F", "#98df8a"},
	"G":   {"G", "Class G", "#bcbd22"},
	"GP":  {"GP", "Glider prohibited", "#9467bd"},
	"CTR": {"CTR", "Control zone", "#17becf"},
	"W":   {"W", "Wave window", "#8c564b"},
	"RMZ": {"RMZ", "Radio mandatory zone", "#e377c2"},
	"TMZ": {"TMZ", "Transponder mandatory zone", "#7f7f7f"},

	ClassUnknown: {ClassUnknown, "Unknown", "#c7c7c7"},
}

// LookupClass maps an AC code to its class. Unknown codes map to the
// UNKNOWN class, and false is returned.
func LookupClass(code string) (AirspaceClass, bool) {
	c, ok := airspaceClasses[strings.TrimSpace(code)]
	if !ok {
		return airspaceClasses[ClassUnknown], false
	}
	return c, true
}

var (
	// Classes that need an ATC clearance (or at least a call) to enter.
	clearanceClasses = map[string]bool{
		"A":   true,
		"B":   true,
		"C":   true,
		"D":   true,
		"E":   true, // Technically permissible VFR, but pilots are encouraged to contact ATC.
		"F":   false,
		"G":   false, // Open FIR.
		"CTR": true,
		"P":   true,
		"R":   true,
		"RMZ": true,
		"TMZ": true,
	}

	// AY types. Not all are strictly prohibited, some are "avoid unless ....".
	clearanceTypes = map[string]bool{
		"ATZ":  true,
		"AWY":  true,
		"CTA":  true,
		"CTR":  true,
		"MATZ": true, // Technically permissible.
		"RMZ":  true,
		"TMA":  true,
		"TMZ":  true,
		"TRA":  true,
	}

	dangerClasses = map[string]bool{
		"Q":  true,
		"GP": true,
		"W":  false,
	}

	dangerTypes = map[string]bool{
		"AIAA":   true, // Area of intense aerial activity
		"DANGER": true,
		"DZ":     true, // Drop zone
		"GLIDER": true,
		"HIRTA":  true, // High intensity radio transmission area
		"LASER":  true,
		"UL":     true, // Ultra-light strip
	}
)

// ClearanceRequired reports whether the airspace should not be entered
// without talking to ATC first.
func (a *Airspace) ClearanceRequired() bool {
	return clearanceClasses[a.Class.Code] || clearanceTypes[strings.ToUpper(a.Type)]
}

func (a *Airspace) Danger() bool {
	return dangerClasses[a.Class.Code] || dangerTypes[strings.ToUpper(a.Type)]
}
