package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	orbitStep = math.Pi / 24
	panStep   = 0.05
	zoomStep  = 1.2
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.l.SetSize(sidebarWidth-2, max(m.height-headerHeight-footerHeight, 1))
		return m, nil
	case tickMsg:
		m.last = m.state.Tick(m.canvas())
		m.frames++
		return m, m.tick()
	case tea.KeyMsg:
		// While the list is filtering every key belongs to it.
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			return m, nil
		case key.Matches(msg, m.keys.Files):
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			return m, nil
		case key.Matches(msg, m.keys.Faces):
			m.showFaces = !m.showFaces
			if m.showFaces {
				m.refreshFaces()
				if !m.showFaces {
					m.setStatus("no face groups: dataset has no usable outline")
				}
			}
			return m, nil
		case key.Matches(msg, m.keys.Open) && m.showSidebar:
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
			return m, nil
		}
		if m.showSidebar && !m.cameraKey(msg) {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		m.moveCamera(msg)
	case tea.MouseMsg:
		m = m.handleMouse(msg)
	}
	return m, nil
}

// cameraKey reports whether msg is meant for the camera while the sidebar
// has focus. Plain arrows navigate the list then.
func (m Model) cameraKey(msg tea.KeyMsg) bool {
	k := m.keys
	return key.Matches(msg, k.PanUp, k.PanDown, k.PanLeft, k.PanRight, k.ZoomIn, k.ZoomOut, k.Reset)
}

func (m *Model) moveCamera(msg tea.KeyMsg) {
	c := m.state.Controls
	switch {
	case key.Matches(msg, m.keys.Reset):
		c.Reset()
		m.setStatus("view reset")
	case key.Matches(msg, m.keys.ZoomIn):
		c.Dolly(1 / zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		c.Dolly(zoomStep)
	case key.Matches(msg, m.keys.PanUp):
		c.Pan(0, panStep)
	case key.Matches(msg, m.keys.PanDown):
		c.Pan(0, -panStep)
	case key.Matches(msg, m.keys.PanLeft):
		c.Pan(-panStep, 0)
	case key.Matches(msg, m.keys.PanRight):
		c.Pan(panStep, 0)
	case key.Matches(msg, m.keys.Up):
		c.Rotate(0, -orbitStep)
	case key.Matches(msg, m.keys.Down):
		c.Rotate(0, orbitStep)
	case key.Matches(msg, m.keys.Left):
		c.Rotate(-orbitStep, 0)
	case key.Matches(msg, m.keys.Right):
		c.Rotate(orbitStep, 0)
	}
}

// canvasOrigin is the screen cell of the canvas' top-left corner; it must
// match the layout in View.
func (m Model) canvasOrigin() (int, int) {
	x := 0
	if m.showSidebar {
		x = sidebarWidth + 1
	}
	return x, headerHeight
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	c := m.state.Controls
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		c.Dolly(1 / zoomStep)
		return m
	case tea.MouseButtonWheelDown:
		c.Dolly(zoomStep)
		return m
	}

	switch msg.Action {
	case tea.MouseActionPress:
		ox, oy := m.canvasOrigin()
		cv := m.canvas()
		if msg.Button == tea.MouseButtonLeft &&
			msg.X >= ox && msg.X < ox+cv.cols && msg.Y >= oy && msg.Y < oy+cv.rows {
			m.dragging = true
			m.dragX, m.dragY = msg.X, msg.Y
		}
	case tea.MouseActionMotion:
		if !m.dragging {
			return m
		}
		_, h := m.canvas().ClientSize()
		if h <= 0 {
			return m
		}
		// a drag across the full height is one turn; a row is two pixels
		dx := float32(msg.X - m.dragX)
		dy := float32(2 * (msg.Y - m.dragY))
		c.Rotate(-2*math.Pi*dx/float32(h), -2*math.Pi*dy/float32(h))
		m.dragX, m.dragY = msg.X, msg.Y
	case tea.MouseActionRelease:
		if m.dragging {
			m.setStatus(fmt.Sprintf("camera at (%.2f, %.2f, %.2f)",
				m.state.Camera.Position.X(), m.state.Camera.Position.Y(), m.state.Camera.Position.Z()))
		}
		m.dragging = false
	}
	return m
}
