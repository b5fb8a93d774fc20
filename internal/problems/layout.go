package problems

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Point is the reference (lower-left) corner of a placed item.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout places Items fixed-size rectangles inside an area, maximizing the
// total shading score. Overlap is allowed but penalized.
type Layout struct {
	AreaWidth  float64
	AreaHeight float64
	ItemWidth  float64
	ItemHeight float64
	Items      int
}

// NewLayout validates the layout dimensions.
func NewLayout(areaWidth, areaHeight, itemWidth, itemHeight float64, items int) (*Layout, error) {
	if items <= 0 {
		return nil, fmt.Errorf("layout: item count must be positive, got %d", items)
	}
	if itemWidth <= 0 || itemHeight <= 0 || itemWidth > areaWidth || itemHeight > areaHeight {
		return nil, fmt.Errorf("layout: item %gx%g does not fit area %gx%g", itemWidth, itemHeight, areaWidth, areaHeight)
	}
	return &Layout{
		AreaWidth:  areaWidth,
		AreaHeight: areaHeight,
		ItemWidth:  itemWidth,
		ItemHeight: itemHeight,
		Items:      items,
	}, nil
}

func (l *Layout) Length() int { return l.Items }

func (l *Layout) NewGenome(rng *rand.Rand) []Point {
	g := make([]Point, l.Items)
	for i := range g {
		g[i] = l.randomPoint(rng)
	}
	return g
}

func (l *Layout) Evaluate(g []Point) float64 {
	return ShadingScore(g, l.ItemWidth, l.ItemHeight)
}

func (l *Layout) MutateLocus(g []Point, locus int, rng *rand.Rand) {
	g[locus] = l.randomPoint(rng)
}

// InBounds reports whether p keeps the whole item inside the area.
func (l *Layout) InBounds(p Point) bool {
	return p.X >= 0 && p.X <= l.AreaWidth-l.ItemWidth && p.Y >= 0 && p.Y <= l.AreaHeight-l.ItemHeight
}

func (l *Layout) randomPoint(rng *rand.Rand) Point {
	return Point{
		X: rng.Float64() * (l.AreaWidth - l.ItemWidth),
		Y: rng.Float64() * (l.AreaHeight - l.ItemHeight),
	}
}

// ShadingScore sums a per-item factor that starts at 1.0 and loses 0.1 for every
// other item whose reference corner lies strictly inside this item's footprint.
//
// The test is corner-in-footprint, not rectangle overlap, so it is asymmetric:
// item j can shade item i without i shading j. Factors may go negative.
func ShadingScore(layout []Point, itemWidth, itemHeight float64) float64 {
	total := 0.0
	for i, a := range layout {
		factor := 1.0
		for j, b := range layout {
			if i == j {
				continue
			}
			if a.X < b.X && b.X < a.X+itemWidth && a.Y < b.Y && b.Y < a.Y+itemHeight {
				factor -= 0.1
			}
		}
		total += factor
	}
	return total
}

// FormatLayout renders a genome as "x,y;x,y;...".
func FormatLayout(g []Point) string {
	parts := make([]string, len(g))
	for i, p := range g {
		parts[i] = strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
	}
	return strings.Join(parts, ";")
}

// ParseLayout is the inverse of FormatLayout.
func ParseLayout(s string) ([]Point, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	g := make([]Point, len(parts))
	for i, part := range parts {
		xy := strings.Split(part, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("layout: malformed point %q", part)
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return nil, fmt.Errorf("layout: parse x of %q: %w", part, err)
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return nil, fmt.Errorf("layout: parse y of %q: %w", part, err)
		}
		g[i] = Point{X: x, Y: y}
	}
	return g, nil
}
