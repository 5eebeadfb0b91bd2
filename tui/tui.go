// Package tui is an interactive debugger for the Befunge engine: it steps the
// program one basic block at a time and draws the playfield, the stack and
// the current block's disassembly.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"gofunge/funge"
)

var (
	pcStyle     = lipgloss.NewStyle().Reverse(true)
	fieldStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	statusStyle = lipgloss.NewStyle().PaddingLeft(2)
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

type model struct {
	engine *funge.Engine
	done   bool
	err    error
}

func (m model) Init() tea.Cmd {
	return nil
}

// Update steps the engine by one basic block per keypress. Once the program
// has ended or failed, further steps are ignored.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			if m.done || m.err != nil {
				return m, nil
			}
			m.done, m.err = m.engine.Step()
		}
	}
	return m, nil
}

// playfield renders the 80x25 grid with the current PC cell highlighted.
func (m model) playfield() string {
	pos := m.engine.Position()
	rows := make([]string, funge.GridHeight)
	for y := 0; y < funge.GridHeight; y++ {
		row := fmt.Sprintf("%-*s", funge.GridWidth, m.engine.Row(y))
		if y == pos.Y {
			row = row[:pos.X] + pcStyle.Render(string(row[pos.X])) + row[pos.X+1:]
		}
		rows[y] = row
	}
	return fieldStyle.Render(strings.Join(rows, "\n"))
}

func (m model) status() string {
	e := m.engine
	pos := e.Position()
	var sb strings.Builder
	fmt.Fprintf(&sb, "pc: (%d,%d) %s\n", pos.X, pos.Y, e.Direction())
	fmt.Fprintf(&sb, "blocks run: %d\ncompiled: %d\n", e.Steps(), e.Compiles())
	if m.done {
		sb.WriteString("program ended\n")
	}
	if m.err != nil {
		fmt.Fprintf(&sb, "error: %v\n", m.err)
	}
	stack := e.StackValues()
	if len(stack) > 12 {
		stack = stack[len(stack)-12:]
	}
	sb.WriteString("\nstack (top last):\n")
	sb.WriteString(spew.Sdump(stack))
	if b := e.CurrentBlock(); b != nil {
		sb.WriteString("\n" + b.String())
	}
	return statusStyle.Render(sb.String())
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.playfield(), m.status()),
		helpStyle.Render("space/j: step one block   q: quit"),
	)
}

// Run starts the debugger on the engine and blocks until the user quits. The
// engine's program error, if any, is returned.
func Run(engine *funge.Engine) error {
	final, err := tea.NewProgram(model{engine: engine}).Run()
	if err != nil {
		return err
	}
	return final.(model).err
}
