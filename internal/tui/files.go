package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"flowribbon/internal/dataset"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".geojson", ".json", ".csv", ".wkt", ".txt", ".kml":
		return true
	}
	return false
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.setError("read dir error: " + err.Error())
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
}

// loadPath replaces the ribbon with the route in p.
func (m *Model) loadPath(p string) {
	m.selPath = p
	coords, err := dataset.Load(p)
	if err != nil {
		m.setError("load error: " + err.Error())
		return
	}
	if err := m.state.SetDataset(coords); err != nil {
		m.setError(filepath.Base(p) + ": " + err.Error())
		m.refreshFaces()
		return
	}
	m.setStatus(fmt.Sprintf("loaded: %s  points=%d", filepath.Base(p), len(coords)))
	m.refreshFaces()
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
}
