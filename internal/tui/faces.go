package tui

import (
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"flowribbon/internal/extrude"
)

var faceOrder = []string{extrude.CapBack, extrude.CapFront, extrude.Wall}

// refreshFaces rebuilds the face group table from the current solid.
func (m *Model) refreshFaces() {
	rows := faceRows(m.state.Faces, m.state.Mesh != nil)
	// clear rows before columns so the table never renders a short row
	m.tbl.SetRows(nil)
	if len(rows) == 0 {
		m.showFaces = false
		return
	}
	m.tbl.SetColumns([]table.Column{
		{Title: "group", Width: 10},
		{Title: "start", Width: 7},
		{Title: "count", Width: 7},
		{Title: "drawn", Width: 6},
	})
	m.tbl.SetRows(rows)
}

func faceRows(faces map[string]extrude.DrawRange, hasMesh bool) []table.Row {
	if !hasMesh {
		return nil
	}
	var rows []table.Row
	for _, name := range faceOrder {
		r, ok := faces[name]
		if !ok {
			continue
		}
		drawn := ""
		if name == extrude.Wall {
			drawn = "yes"
		}
		rows = append(rows, table.Row{name, strconv.Itoa(r.Start), strconv.Itoa(r.Count), drawn})
	}
	return rows
}
