package openair

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

const (
	ProjectionLocal = "local"
	ProjectionFixed = "fixed"
)

// Config controls parsing and projection. The zero value is not useful;
// start from DefaultConfig.
type Config struct {
	// Value given to UNL ceilings.
	MaxAltitudeFeet float64 `yaml:"max_altitude_feet"`
	// Side of the square canvas that the collection is normalised onto.
	CanvasSize float64 `yaml:"canvas_size"`
	// Origin of the fixed projection.
	Reference struct {
		Lat float64 `yaml:"lat"`
		Lon float64 `yaml:"lon"`
	} `yaml:"reference"`
	// "local" re-projects around the collection's centroid; "fixed" keeps
	// the fixed reference projection.
	Projection string `yaml:"projection"`
	// Added to the built in list of words that are not place names.
	LocaleStopWords []string `yaml:"locale_stop_words"`
	// Number of blocks parsed concurrently. 0 or 1 parses sequentially.
	Workers int `yaml:"workers"`
}

func DefaultConfig() Config {
	var c Config
	c.MaxAltitudeFeet = DefaultMaxAltitudeFeet
	c.CanvasSize = 1000
	c.Reference.Lat = DefaultReferenceLat
	c.Reference.Lon = DefaultReferenceLon
	c.Projection = ProjectionLocal
	return c
}

// DecodeConfig reads YAML over the defaults, so that only overridden
// settings need to be present.
func DecodeConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func LoadConfig(fileName string) (Config, error) {
	b, err := ioutil.ReadFile(fileName)
	if err != nil {
		return Config{}, err
	}
	return DecodeConfig(b)
}

func (c Config) validate() error {
	switch c.Projection {
	case ProjectionLocal, ProjectionFixed:
	default:
		return fmt.Errorf("unknown projection %q, must be %q or %q", c.Projection, ProjectionLocal, ProjectionFixed)
	}
	if c.CanvasSize <= 0 {
		return fmt.Errorf("canvas_size must be positive, not %v", c.CanvasSize)
	}
	if c.MaxAltitudeFeet <= 0 {
		return fmt.Errorf("max_altitude_feet must be positive, not %v", c.MaxAltitudeFeet)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, not %d", c.Workers)
	}
	return nil
}

func (c Config) fixedProjector() TransverseProjector {
	return TransverseProjector{RefLat: c.Reference.Lat, RefLon: c.Reference.Lon}
}
