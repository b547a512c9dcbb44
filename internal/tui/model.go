package tui

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"flowribbon/internal/app"
)

const (
	headerHeight = 1
	footerHeight = 1
	sidebarWidth = 28
)

type tickMsg time.Time

// canvas is the drawing area in cells. Each cell holds two stacked pixels.
type canvas struct {
	cols, rows int
}

func (c canvas) ClientSize() (int, int) { return c.cols, c.rows * 2 }

type Model struct {
	width  int
	height int

	state    *app.State
	interval time.Duration
	last     app.RenderCommand
	frames   int

	showSidebar bool
	helpVisible bool
	status      string
	statusErr   bool

	// mouse drag orbit
	dragging bool
	dragX    int
	dragY    int

	keys keyMap
	help help.Model

	// dataset picker
	cwd     string
	l       list.Model
	selPath string

	// face groups table
	showFaces bool
	tbl       table.Model
}

// New drives state at fps frames per second.
func New(state *app.State, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	m := Model{
		state:       state,
		interval:    time.Second / time.Duration(fps),
		helpVisible: true,
		status:      "flowribbon ready",
		keys:        defaultKeys(),
		help:        help.New(),
	}
	if state.Mesh == nil {
		m.status = "no usable outline in dataset"
	}
	m.cwd, _ = os.Getwd()
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Datasets"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.tbl = table.New()
	m.tbl.SetHeight(6)
	m.refreshDir()
	m.refreshFaces()
	return m
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// canvas returns the cells left for the scene once header, footer and the
// sidebar are laid out.
func (m Model) canvas() canvas {
	w := m.width
	if m.showSidebar {
		w -= sidebarWidth + 1
	}
	h := m.height - headerHeight - footerHeight
	return canvas{cols: max(w, 0), rows: max(h, 0)}
}
