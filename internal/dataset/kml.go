package dataset

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"flowribbon/internal/geo"
)

// ParseKML returns the first LineString or LinearRing found in the document,
// or failing that every Placemark Point in document order. KML tuples are
// "lon,lat[,alt]"; altitude is ignored.
func ParseKML(data []byte) ([]geo.Coordinate, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		stack  []string
		line   []geo.Coordinate
		points []geo.Coordinate
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "coordinates" {
				stack = append(stack, t.Name.Local)
				continue
			}
			var text string
			if err := dec.DecodeElement(&text, &t); err != nil {
				return nil, err
			}
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			switch parent {
			case "LineString", "LinearRing":
				if len(line) == 0 {
					line = parseTuples(text)
				}
			case "Point":
				points = append(points, parseTuples(text)...)
			}
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(line) > 0 {
		return line, nil
	}
	if len(points) > 0 {
		return points, nil
	}
	return nil, ErrNoCoordinates
}

// coordinates may contain multiple tuples separated by whitespace
func parseTuples(s string) []geo.Coordinate {
	var out []geo.Coordinate
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, geo.Coordinate{Lon: lon, Lat: lat})
	}
	return out
}
