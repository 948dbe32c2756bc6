package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-openapi/swag"
)

// QuadSize is the number of points in a campus or zone boundary.
const QuadSize = 4

// Corner names the conventional position of each quad point.
type Corner int

const (
	Left Corner = iota
	Right
	Top
	Bottom
)

var cornerNames = [QuadSize]string{"left", "right", "top", "bottom"}

func (c Corner) String() string {
	if c < Left || c > Bottom {
		return fmt.Sprintf("corner(%d)", int(c))
	}
	return cornerNames[c]
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoordinateField returns the draft key of one axis of a quad point, e.g. "coordinates.2.lat".
func CoordinateField(idx int, axis string) string {
	return fmt.Sprintf("coordinates.%d.%s", idx, axis)
}

const (
	AxisLat = "lat"
	AxisLng = "lng"
)

// ParseDecimal coerces a form value into a finite number.
func ParseDecimal(value string) (float64, error) {
	f, err := swag.ConvertFloat64(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", value)
	}
	return f, nil
}

// FormatDecimal renders a number the way it is shown in drafts.
func FormatDecimal(f float64) string {
	return swag.FormatFloat64(f)
}

// EmptyQuad returns four zero points.
func EmptyQuad() []Coordinate {
	return make([]Coordinate, QuadSize)
}

func cloneQuad(in []Coordinate) []Coordinate {
	if in == nil {
		return nil
	}
	out := make([]Coordinate, len(in))
	copy(out, in)
	return out
}

// putQuad writes the quad into the draft. Missing points are written as empty strings.
func putQuad(d Draft, quad []Coordinate) {
	for i := 0; i < QuadSize; i++ {
		if i < len(quad) {
			d[CoordinateField(i, AxisLat)] = FormatDecimal(quad[i].Lat)
			d[CoordinateField(i, AxisLng)] = FormatDecimal(quad[i].Lng)
			continue
		}
		d[CoordinateField(i, AxisLat)] = ""
		d[CoordinateField(i, AxisLng)] = ""
	}
}

// quadFields lists the eight draft keys of a quad in order.
func quadFields() []string {
	fields := make([]string, 0, QuadSize*2)
	for i := 0; i < QuadSize; i++ {
		fields = append(fields, CoordinateField(i, AxisLat), CoordinateField(i, AxisLng))
	}
	return fields
}

// readQuad checks that all eight subfields are present and numeric.
func readQuad(d Draft) ([]Coordinate, error) {
	for _, f := range quadFields() {
		if d.Blank(f) {
			return nil, incompleteQuad()
		}
	}

	quad := make([]Coordinate, QuadSize)
	for i := 0; i < QuadSize; i++ {
		lat, err := ParseDecimal(d.Get(CoordinateField(i, AxisLat)))
		if err != nil {
			return nil, invalidQuad(i, AxisLat, err)
		}
		lng, err := ParseDecimal(d.Get(CoordinateField(i, AxisLng)))
		if err != nil {
			return nil, invalidQuad(i, AxisLng, err)
		}
		quad[i] = Coordinate{Lat: lat, Lng: lng}
	}
	return quad, nil
}
