package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	cv := m.canvas()

	header := titleStyle.Render(" flowribbon ─ flow over an extruded route ")
	header = lipgloss.NewStyle().Width(m.width).MaxHeight(headerHeight).Render(header)

	// The frame lags a resize by one tick; pad or crop to the current canvas.
	frame := strings.Join(m.last.Frame, "\n")
	sceneView := canvasStyle.Width(cv.cols).Height(cv.rows).MaxWidth(cv.cols).MaxHeight(cv.rows).Render(frame)

	if m.showFaces {
		box := boxStyle.Render(m.tbl.View())
		sceneView = lipgloss.Place(cv.cols, cv.rows, lipgloss.Right, lipgloss.Top, box)
	}

	body := sceneView
	if m.showSidebar {
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Height(cv.rows).MaxHeight(cv.rows).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", sceneView)
	}

	footer := lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).MaxHeight(footerHeight).Render(m.renderFooter())

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(m.width).Height(m.height).MaxHeight(m.height).Render(ui)
}

func (m Model) renderFooter() string {
	st := dimStyle
	if m.statusErr {
		st = errorStyle
	}
	status := st.Render(" " + m.status + " ")
	stats := dimStyle.Render(fmt.Sprintf(" t=%.3f tris=%d frags=%d ",
		m.last.Time, m.last.Stats.Triangles, m.last.Stats.Fragments))
	return lipgloss.JoinHorizontal(lipgloss.Bottom, status, stats, m.renderHelp())
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	return " " + m.help.View(m.keys)
}
