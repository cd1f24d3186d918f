package openair

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Airspace is one OpenAir record.
type Airspace struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Locale    string           `json:"locale"`
	Class     AirspaceClass    `json:"class"`
	Type      string           `json:"type,omitempty"`
	Frequency string           `json:"frequency,omitempty"`
	Station   string           `json:"station,omitempty"`
	Floor     Altitude         `json:"floor"`
	Ceiling   Altitude         `json:"ceiling"`
	Shapes    []Shape          `json:"shapes"`
	Labels    []CoordinatePair `json:"labels,omitempty"`
	Source    string           `json:"source"`
	// Document line number of the first line of Source.
	FirstLine int `json:"firstLine"`
}

var defaultStopWords = []string{
	"CTA", "FIR", "FREQUENCY", "MIL", "CERT", "UNCR", "CONTROL", "ZONE",
	"CTR", "TMA", "ATZ", "MATZ", "RMZ", "TMZ", "TRA", "TSA", "AREA",
}

var reLocaleWord = regexp.MustCompile(`^[A-Z]+(-[A-Z]+)*$`)

// Parser turns OpenAir text into Airspaces. It is safe for concurrent use.
type Parser struct {
	cfg       Config
	stopWords map[string]bool
}

func NewParser(cfg Config) *Parser {
	p := &Parser{cfg: cfg, stopWords: make(map[string]bool)}
	for _, w := range defaultStopWords {
		p.stopWords[w] = true
	}
	for _, w := range cfg.LocaleStopWords {
		p.stopWords[strings.ToUpper(strings.TrimSpace(w))] = true
	}
	return p
}

// blockState holds the OpenAir variables, which apply to the commands
// following them in the same record.
type blockState struct {
	direction Direction
	center    *CoordinatePair
}

func (st blockState) withDirection(d Direction) blockState {
	st.direction = d
	return st
}

func (st blockState) withCenter(c CoordinatePair) blockState {
	st.center = &c
	return st
}

// ParseAirspace parses one record. Lines that cannot be used are reported
// in the returned Report and otherwise ignored. An error is returned only
// when the record holds a position that cannot be projected.
func (p *Parser) ParseAirspace(block string) (Airspace, Report, error) {
	return p.parseBlock(block, 1, p.cfg.fixedProjector())
}

// parseBlock parses a record starting at firstLine of its document. The
// airspace is projected with proj, or left unprojected if proj is nil.
func (p *Parser) parseBlock(block string, firstLine int, proj Projector) (Airspace, Report, error) {
	var (
		report Report
		err    error
		st     blockState
	)
	a := Airspace{
		Class:     airspaceClasses[ClassUnknown],
		Floor:     Altitude{Reference: ReferenceUnknown},
		Ceiling:   Altitude{Reference: ReferenceUnknown},
		Source:    block,
		FirstLine: firstLine,
	}

	for i, text := range strings.Split(block, "\n") {
		text = strings.TrimSpace(text)
		if text == "" || strings.HasPrefix(text, "*") {
			continue
		}
		lineNo := firstLine + i
		st, err = p.processLine(st, &a, &report, lineNo, text)
		if err != nil {
			return Airspace{}, report, &LineError{Line: lineNo, Text: text, Err: err}
		}
		for j := len(a.Shapes) - 1; j >= 0 && a.Shapes[j].Line == 0; j-- {
			a.Shapes[j].Line = lineNo
		}
	}

	if len(a.Shapes) == 0 {
		report.add(Diagnostic{Kind: BadGeometry, Line: firstLine, Airspace: a.Name, Message: "airspace has no geometry"})
	}

	if proj != nil {
		if err := a.Project(proj); err != nil {
			return Airspace{}, report, err
		}
	}
	return a, report, nil
}

func (p *Parser) processLine(st blockState, a *Airspace, r *Report, line int, text string) (blockState, error) {
	cmd, arg := splitCommand(text)

	diag := func(kind DiagnosticKind, format string, args ...interface{}) {
		r.add(Diagnostic{Kind: kind, Line: line, Text: text, Airspace: a.Name, Message: fmt.Sprintf(format, args...)})
	}

	switch cmd {
	case "AC":
		c, ok := LookupClass(arg)
		if !ok {
			diag(UnknownClass, "unknown airspace class %q", arg)
		}
		a.Class = c

	case "AN":
		a.Name = arg
		a.Locale = p.locale(arg)

	case "AY":
		a.Type = arg

	case "AF":
		a.Frequency = arg

	case "AG":
		a.Station = arg

	case "AH", "AL":
		alt := ParseAltitude(arg, p.cfg.MaxAltitudeFeet)
		if !alt.Resolved() {
			diag(UnresolvedAltitude, "altitude %q has no value (%s)", arg, alt.Reference)
		}
		if cmd == "AH" {
			a.Ceiling = alt
		} else {
			a.Floor = alt
		}

	case "AT":
		pair, err := ParseCoordinatePair(arg)
		if err != nil {
			diag(BadArgument, "bad label position: %s", err)
			break
		}
		a.Labels = append(a.Labels, pair)

	case "SP", "SB":
		// Pen and brush are for presentation only.

	case "V":
		return p.processVariable(st, arg, diag)

	case "DP":
		pair, err := ParseCoordinatePair(arg)
		if err != nil {
			return st, err
		}
		a.addVertex(pair)

	case "DB":
		if st.center == nil {
			diag(MissingCenter, "arc skipped: %s", ErrMissingCenter)
			break
		}
		start, end, err := parseArcEnds(arg)
		if err != nil {
			return st, err
		}
		arc := NewArcFromCoordinates(start, end, *st.center, st.direction)
		a.Shapes = append(a.Shapes, Shape{Type: ShapeArc, Arc: &arc})

	case "DA":
		if st.center == nil {
			diag(MissingCenter, "arc skipped: %s", ErrMissingCenter)
			break
		}
		radius, startAngle, endAngle, err := parseArcAngles(arg)
		if err != nil {
			diag(BadArgument, "arc skipped: %s", err)
			break
		}
		arc := NewArcFromAngles(*st.center, radius, startAngle, endAngle, st.direction)
		a.Shapes = append(a.Shapes, Shape{Type: ShapeArc, Arc: &arc})

	case "DC":
		if st.center == nil {
			diag(MissingCenter, "circle skipped: %s", ErrMissingCenter)
			break
		}
		radius, err := parseRadius(arg)
		if err != nil {
			diag(BadArgument, "circle skipped: %s", err)
			break
		}
		circle := NewCircle(*st.center, radius)
		a.Shapes = append(a.Shapes, Shape{Type: ShapeCircle, Circle: &circle})

	case "DY":
		diag(UnknownCommand, "airway records are not supported")

	default:
		diag(UnknownCommand, "unknown command %q", cmd)
	}

	return st, nil
}

func (p *Parser) processVariable(st blockState, arg string, diag func(DiagnosticKind, string, ...interface{})) (blockState, error) {
	parts := strings.SplitN(arg, "=", 2)
	if len(parts) != 2 {
		diag(BadArgument, "bad variable %q", arg)
		return st, nil
	}
	name, value := strings.ToUpper(strings.TrimSpace(parts[0])), strings.TrimSpace(parts[1])

	switch name {
	case "D":
		if strings.HasSuffix(value, "-") {
			return st.withDirection(AntiClockwise), nil
		}
		return st.withDirection(Clockwise), nil

	case "X":
		pair, err := ParseCoordinatePair(value)
		if err != nil {
			return st, err
		}
		return st.withCenter(pair), nil

	case "W", "Z":
		// Airway width and display zoom level.
		return st, nil

	default:
		diag(UnknownCommand, "unknown variable %q", name)
		return st, nil
	}
}

func (a *Airspace) addVertex(pair CoordinatePair) {
	if n := len(a.Shapes); n > 0 && a.Shapes[n-1].Type == ShapePolygon {
		poly := a.Shapes[n-1].Polygon
		poly.Vertices = append(poly.Vertices, pair)
		return
	}
	a.Shapes = append(a.Shapes, Shape{Type: ShapePolygon, Polygon: &Polygon{Vertices: []CoordinatePair{pair}}})
}

// splitCommand splits "DP 51:00:00 N ..." into "DP" and the trimmed rest.
func splitCommand(text string) (string, string) {
	i := strings.IndexAny(text, " \t")
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i+1:])
}

// parseArcEnds splits the two coordinate pairs of a DB record. They are
// normally separated by a comma, but the split is made before the third
// coordinate token so that a missing comma is tolerated.
func parseArcEnds(arg string) (CoordinatePair, CoordinatePair, error) {
	idx := reCoordinate.FindAllStringIndex(arg, -1)
	if len(idx) < 4 {
		return CoordinatePair{}, CoordinatePair{}, fmt.Errorf("%#q: need two coordinate pairs: %w", arg, ErrNoCoordinate)
	}
	start, err := ParseCoordinatePair(arg[:idx[2][0]])
	if err != nil {
		return CoordinatePair{}, CoordinatePair{}, err
	}
	end, err := ParseCoordinatePair(arg[idx[2][0]:])
	if err != nil {
		return CoordinatePair{}, CoordinatePair{}, err
	}
	return start, end, nil
}

// parseArcAngles parses "radius, start, end" of a DA record.
func parseArcAngles(arg string) (Distance, Angle, Angle, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 3 {
		return Distance{}, Angle{}, Angle{}, fmt.Errorf("%#q: need radius, start angle and end angle", arg)
	}
	radius, err := parseRadius(parts[0])
	if err != nil {
		return Distance{}, Angle{}, Angle{}, err
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Distance{}, Angle{}, Angle{}, fmt.Errorf("bad start angle: %w", err)
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return Distance{}, Angle{}, Angle{}, fmt.Errorf("bad end angle: %w", err)
	}
	return radius, AngleFromDegrees(start), AngleFromDegrees(end), nil
}

// parseRadius parses a radius in nautical miles, e.g. "10" or "2.5NM".
func parseRadius(s string) (Distance, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	s = strings.TrimSpace(strings.TrimSuffix(s, "NM"))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Distance{}, fmt.Errorf("invalid radius %#q: %w", s, err)
	}
	if f <= 0 || !finite(f) {
		return Distance{}, fmt.Errorf("invalid radius %#q", s)
	}
	return NewDistance(f, NauticalMiles), nil
}

// locale guesses the place an airspace is named after: the upper case
// words of its name that are not airspace jargon.
func (p *Parser) locale(name string) string {
	var words []string
	for _, w := range strings.Fields(name) {
		if len(w) > 1 && reLocaleWord.MatchString(w) && !p.stopWords[w] {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}

// Project sets the projection of every coordinate in the airspace.
func (a *Airspace) Project(p Projector) error {
	for i := range a.Shapes {
		for _, pair := range a.Shapes[i].pairs() {
			if err := projectPair(p, pair); err != nil {
				line := a.Shapes[i].Line
				return &LineError{Line: line, Text: a.sourceLine(line), Err: err}
			}
		}
	}
	for i := range a.Labels {
		if err := projectPair(p, &a.Labels[i]); err != nil {
			return &LineError{Err: err}
		}
	}
	return nil
}

func (a *Airspace) sourceLine(line int) string {
	lines := strings.Split(a.Source, "\n")
	if i := line - a.FirstLine; i >= 0 && i < len(lines) {
		return strings.TrimSpace(lines[i])
	}
	return ""
}

// Path concatenates the path segments of every shape into the outline.
func (a *Airspace) Path() string {
	segments := make([]string, len(a.Shapes))
	for i, s := range a.Shapes {
		segments[i] = s.Path(i == 0)
	}
	return strings.Join(segments, " ")
}

// ScaledPath is Path in canvas coordinates.
func (a *Airspace) ScaledPath(n Normalisation) string {
	segments := make([]string, len(a.Shapes))
	for i, s := range a.Shapes {
		segments[i] = s.ScaledPath(i == 0, n)
	}
	return strings.Join(segments, " ")
}

// Discontinuities returns the indexes of shapes that start further than
// tolerance from where the previous shape ended.
func (a *Airspace) Discontinuities(tolerance Distance) []int {
	var gaps []int
	for i := 1; i < len(a.Shapes); i++ {
		d := HaversineDistance(a.Shapes[i-1].End().Point(), a.Shapes[i].Start().Point())
		if d.Metres() > tolerance.Metres() {
			gaps = append(gaps, i)
		}
	}
	return gaps
}
