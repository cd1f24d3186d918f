package openair

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Collection is a parsed OpenAir document.
type Collection struct {
	Airspaces []Airspace `json:"airspaces"`
	// Mean position of every coordinate referenced by every shape.
	Centroid      orb.Point     `json:"centroid"`
	MinProjection Projection    `json:"minProjection"`
	MaxProjection Projection    `json:"maxProjection"`
	Normalisation Normalisation `json:"normalisation"`
	Report        Report        `json:"report"`

	projector Projector
}

// Shape joins further apart than this are reported.
var discontinuityTolerance = NewDistance(0.5, Kilometres)

// block is a record's text and the document line it starts on.
type block struct {
	text      string
	firstLine int
}

// Parse parses a whole document with cfg.
func Parse(doc string, cfg Config) (*Collection, error) {
	return NewParser(cfg).ParseCollection(doc)
}

// ParseCollection splits doc into records, parses each of them and then
// projects every airspace into one planar frame. Records that cannot be
// parsed are left out and reported. Only a document with no records at all
// is an error.
func (p *Parser) ParseCollection(doc string) (*Collection, error) {
	blocks := splitBlocks(doc)
	if len(blocks) == 0 {
		return nil, ErrEmptyDocument
	}

	type result struct {
		airspace Airspace
		report   Report
		err      error
	}
	results := make([]result, len(blocks))
	parse := func(i int) {
		a, r, err := p.parseBlock(blocks[i].text, blocks[i].firstLine, nil)
		results[i] = result{a, r, err}
	}

	if p.cfg.Workers > 1 {
		var eg errgroup.Group
		eg.SetLimit(p.cfg.Workers)
		for i := range blocks {
			i := i
			eg.Go(func() error {
				parse(i)
				return nil
			})
		}
		_ = eg.Wait()
	} else {
		for i := range blocks {
			parse(i)
		}
	}

	c := &Collection{}
	for i, res := range results {
		c.Report.merge(res.report)
		if res.err != nil {
			d := Diagnostic{Kind: SkippedAirspace, Line: blocks[i].firstLine, Message: res.err.Error()}
			var le *LineError
			if errors.As(res.err, &le) {
				d.Line, d.Text = le.Line, le.Text
			}
			c.Report.add(d)
			continue
		}
		a := res.airspace
		a.ID = resolveAirspaceID(a.Name, len(c.Airspaces))
		for _, j := range a.Discontinuities(discontinuityTolerance) {
			line := a.Shapes[j].Line
			c.Report.add(Diagnostic{
				Kind:     Discontinuity,
				Line:     line,
				Text:     a.sourceLine(line),
				Airspace: a.Name,
				Message:  "shape does not start where the previous one ended",
			})
		}
		c.Airspaces = append(c.Airspaces, a)
	}

	c.project(p.cfg)
	c.normalise(p.cfg.CanvasSize)

	log.WithFields(log.Fields{
		"airspaces":   len(c.Airspaces),
		"diagnostics": len(c.Report.Diagnostics),
		"centroid":    c.Centroid,
	}).Info("parsed OpenAir document")

	return c, nil
}

// splitBlocks splits a document at blank lines. A record that does not
// end with a blank line is also ended by the AC line of the next record.
func splitBlocks(doc string) []block {
	var (
		blocks  []block
		current []string
		first   int
		content bool
	)
	flush := func() {
		if content {
			blocks = append(blocks, block{text: strings.Join(current, "\n"), firstLine: first})
		}
		current, content = nil, false
	}

	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	for i, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if content && strings.HasPrefix(trimmed, "AC ") {
			flush()
		}
		if len(current) == 0 {
			first = i + 1
		}
		current = append(current, line)
		if !strings.HasPrefix(trimmed, "*") {
			content = true
		}
	}
	flush()

	return blocks
}

// resolveAirspaceID returns an ID based on the airspace name, with a
// numeric suffix to keep IDs unique within a collection.
func resolveAirspaceID(name string, index int) string {
	safeName := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	if safeName == "" {
		safeName = "airspace"
	}
	return safeName + "-" + strconv.FormatInt(int64(index), 10)
}

func (c *Collection) centroid() orb.Point {
	var sumLat, sumLon float64
	n := 0
	for i := range c.Airspaces {
		for j := range c.Airspaces[i].Shapes {
			for _, pair := range c.Airspaces[i].Shapes[j].referenced() {
				sumLat += pair.Lat()
				sumLon += pair.Lon()
				n++
			}
		}
	}
	if n == 0 {
		return orb.Point{}
	}
	return orb.Point{sumLon / float64(n), sumLat / float64(n)}
}

// project places every airspace in the collection's planar frame, dropping
// airspaces that cannot be projected. The centroid only covers the
// airspaces that are kept.
func (c *Collection) project(cfg Config) {
	if cfg.Projection == ProjectionFixed {
		c.projector = cfg.fixedProjector()
		c.reproject()
		c.Centroid = c.centroid()
		return
	}

	// The local projection fails only on non-finite positions, whatever its
	// anchor.
	c.projector = LocalProjector{}
	c.reproject()
	c.Centroid = c.centroid()
	c.projector = LocalProjector{Lat0: c.Centroid.Lat(), Lon0: c.Centroid.Lon()}
	c.reproject()
}

func (c *Collection) reproject() {
	kept := c.Airspaces[:0]
	for i := range c.Airspaces {
		a := c.Airspaces[i]
		if err := a.Project(c.projector); err != nil {
			d := Diagnostic{Kind: SkippedAirspace, Line: a.FirstLine, Airspace: a.Name, Message: err.Error()}
			var le *LineError
			if errors.As(err, &le) {
				d.Line, d.Text = le.Line, le.Text
			}
			c.Report.add(d)
			continue
		}
		kept = append(kept, a)
	}
	c.Airspaces = kept
}

// Bound returns the extent of every projected coordinate.
func (c *Collection) Bound() (orb.Bound, bool) {
	var (
		b     orb.Bound
		found bool
	)
	for i := range c.Airspaces {
		for j := range c.Airspaces[i].Shapes {
			for _, pair := range c.Airspaces[i].Shapes[j].pairs() {
				pt := orb.Point{pair.Projection.X, pair.Projection.Y}
				if !found {
					b, found = orb.Bound{Min: pt, Max: pt}, true
				} else {
					b = b.Extend(pt)
				}
			}
		}
	}
	return b, found
}

func (c *Collection) normalise(canvasSize float64) {
	b, ok := c.Bound()
	if !ok {
		c.Normalisation = Normalisation{ScalingFactor: 1}
		return
	}
	c.MinProjection = Projection{X: b.Min[0], Y: b.Min[1]}
	c.MaxProjection = Projection{X: b.Max[0], Y: b.Max[1]}

	offset := math.Abs(math.Min(b.Min[0], b.Min[1]))
	max := math.Max(b.Max[0], b.Max[1])
	scale := 1.0
	if offset+max > 0 {
		scale = canvasSize / (offset + max)
	}
	c.Normalisation = Normalisation{Offset: offset, ScalingFactor: scale}
}

// Scale stores the canvas position of every coordinate in its Scaled
// field.
func (c *Collection) Scale() {
	for i := range c.Airspaces {
		a := &c.Airspaces[i]
		for j := range a.Shapes {
			for _, pair := range a.Shapes[j].pairs() {
				s := c.Normalisation.Apply(pair.Projection)
				pair.Scaled = &s
			}
		}
		for j := range a.Labels {
			s := c.Normalisation.Apply(a.Labels[j].Projection)
			a.Labels[j].Scaled = &s
		}
	}
}

// Projector returns the projection used for the collection's coordinates.
func (c *Collection) Projector() Projector {
	return c.projector
}

// Find returns the airspace with the given ID.
func (c *Collection) Find(id string) (Airspace, bool) {
	for _, a := range c.Airspaces {
		if a.ID == id {
			return a, true
		}
	}
	return Airspace{}, false
}
