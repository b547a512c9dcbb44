// Package dataset loads the ordered (lon, lat) sequence the ribbon is built
// from.
package dataset

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterstace/simplefeatures/geom"

	"flowribbon/internal/geo"
)

var (
	ErrNoCoordinates = errors.New("dataset: no coordinates found")
	ErrUnsupported   = errors.New("dataset: unsupported format")
)

//go:embed data/line.geojson
var defaultLine []byte

// Default returns the embedded route.
func Default() []geo.Coordinate {
	coords, err := ParseGeoJSON(defaultLine)
	if err != nil {
		panic(fmt.Sprintf("embedded dataset: %v", err))
	}
	return coords
}

// Load reads path, choosing the parser by extension: .geojson and .json
// (GeoJSON or a bare [[lon, lat], ...] array), .wkt, .csv, .kml.
func Load(path string) ([]geo.Coordinate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		if isArray(data) {
			return ParseArray(data)
		}
		return ParseGeoJSON(data)
	case ".wkt", ".txt":
		return ParseWKT(string(data))
	case ".csv":
		return ParseCSV(strings.NewReader(string(data)))
	case ".kml":
		return ParseKML(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

func isArray(data []byte) bool {
	s := strings.TrimSpace(string(data))
	return strings.HasPrefix(s, "[")
}

// ParseArray parses a JSON array of [lon, lat] pairs; extra values such as
// elevation are ignored.
func ParseArray(data []byte) ([]geo.Coordinate, error) {
	var raw [][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse coordinate array: %w", err)
	}
	coords := make([]geo.Coordinate, 0, len(raw))
	for i, c := range raw {
		if len(c) < 2 {
			return nil, fmt.Errorf("coordinate %d has insufficient values", i)
		}
		coords = append(coords, geo.Coordinate{Lon: c[0], Lat: c[1]})
	}
	if len(coords) == 0 {
		return nil, ErrNoCoordinates
	}
	return coords, nil
}

// ParseGeoJSON accepts a geometry, a Feature or a FeatureCollection and
// returns the coordinates of the first feature that has any.
func ParseGeoJSON(data []byte) ([]geo.Coordinate, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid geojson: %w", err)
	}
	switch probe.Type {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "Feature":
		var f geom.GeoJSONFeature
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("invalid geojson feature: %w", err)
		}
		return fromGeometry(f.Geometry)
	case "FeatureCollection":
		var fc geom.GeoJSONFeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("invalid geojson feature collection: %w", err)
		}
		for _, f := range fc {
			if coords, err := fromGeometry(f.Geometry); err == nil {
				return coords, nil
			}
		}
		return nil, ErrNoCoordinates
	}
	g, err := geom.UnmarshalGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("invalid geojson geometry: %w", err)
	}
	return fromGeometry(g)
}

// ParseWKT supports the same geometry types as ParseGeoJSON.
func ParseWKT(wkt string) ([]geo.Coordinate, error) {
	if strings.TrimSpace(wkt) == "" {
		return nil, errors.New("empty wkt")
	}
	g, err := geom.UnmarshalWKT(wkt)
	if err != nil {
		return nil, fmt.Errorf("invalid wkt: %w", err)
	}
	return fromGeometry(g)
}

// fromGeometry flattens g into one ordered sequence: a line's vertices, a
// polygon's exterior ring, or the parts of a multi geometry in order.
func fromGeometry(g geom.Geometry) ([]geo.Coordinate, error) {
	var coords []geo.Coordinate
	addSeq := func(seq geom.Sequence) {
		for i := 0; i < seq.Length(); i++ {
			xy := seq.GetXY(i)
			coords = append(coords, geo.Coordinate{Lon: xy.X, Lat: xy.Y})
		}
	}
	switch g.Type() {
	case geom.TypePoint:
		if xy, ok := g.MustAsPoint().XY(); ok {
			coords = append(coords, geo.Coordinate{Lon: xy.X, Lat: xy.Y})
		}
	case geom.TypeMultiPoint:
		mp := g.MustAsMultiPoint()
		for i := 0; i < mp.NumPoints(); i++ {
			if xy, ok := mp.PointN(i).XY(); ok {
				coords = append(coords, geo.Coordinate{Lon: xy.X, Lat: xy.Y})
			}
		}
	case geom.TypeLineString:
		addSeq(g.MustAsLineString().Coordinates())
	case geom.TypeMultiLineString:
		mls := g.MustAsMultiLineString()
		for i := 0; i < mls.NumLineStrings(); i++ {
			addSeq(mls.LineStringN(i).Coordinates())
		}
	case geom.TypePolygon:
		addSeq(g.MustAsPolygon().ExteriorRing().Coordinates())
	case geom.TypeMultiPolygon:
		mp := g.MustAsMultiPolygon()
		for i := 0; i < mp.NumPolygons(); i++ {
			addSeq(mp.PolygonN(i).ExteriorRing().Coordinates())
		}
	default:
		return nil, fmt.Errorf("%w: geometry %s", ErrUnsupported, g.Type())
	}
	if len(coords) == 0 {
		return nil, ErrNoCoordinates
	}
	return coords, nil
}
