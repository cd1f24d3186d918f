package openair

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Degrees of arc between the points used to approximate arcs and circles.
const geoJSONArcStep = 10

// Ring approximates the outline of the airspace on the ground. The ring is
// closed.
func (a *Airspace) Ring() orb.Ring {
	var ring orb.Ring
	for _, s := range a.Shapes {
		for _, p := range s.Points(geoJSONArcStep) {
			if n := len(ring); n > 0 && ring[n-1].Equal(p) {
				continue
			}
			ring = append(ring, p)
		}
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// GeoJSON exports the collection with one polygon feature per airspace.
// Floor and ceiling are in feet, and null when unresolved.
func (c *Collection) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range c.Airspaces {
		a := &c.Airspaces[i]
		ring := a.Ring()
		if len(ring) < 4 {
			continue
		}

		f := geojson.NewFeature(orb.Polygon{ring})
		f.ID = a.ID
		f.Properties["name"] = a.Name
		f.Properties["locale"] = a.Locale
		f.Properties["class"] = a.Class.Code
		f.Properties["color"] = a.Class.Color
		f.Properties["floor"] = altitudeProperty(a.Floor)
		f.Properties["ceiling"] = altitudeProperty(a.Ceiling)
		f.Properties["floorReference"] = string(a.Floor.Reference)
		f.Properties["ceilingReference"] = string(a.Ceiling.Reference)
		f.Properties["clearanceRequired"] = a.ClearanceRequired()
		f.Properties["danger"] = a.Danger()
		if a.Type != "" {
			f.Properties["type"] = a.Type
		}
		fc.Append(f)
	}
	return fc
}

func altitudeProperty(a Altitude) interface{} {
	if f, ok := a.Feet(); ok {
		return f
	}
	return nil
}
