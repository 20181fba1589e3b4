package teatest

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type loadedMsg int

// counterModel counts key presses and loads an initial value through a Cmd.
type counterModel struct {
	count int
	keys  []string
	size  tea.WindowSizeMsg
}

func (m counterModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return loadedMsg(10) },
		nil,
	)
}

func (m counterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.count = int(msg)
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		m.keys = append(m.keys, msg.String())
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "+":
			return m, func() tea.Msg { return loadedMsg(m.count + 1) }
		}
	}
	return m, nil
}

func (m counterModel) View() string {
	return fmt.Sprintf("count=%d", m.count)
}

func TestDriver_DrainsInitBatch(t *testing.T) {
	d := New(t, counterModel{})
	d.DrainInit()
	assert.Equal(t, "count=10", d.View())
}

func TestDriver_PressFeedsCmdResultsBack(t *testing.T) {
	d := New(t, counterModel{}, WithSize(120, 40))
	d.DrainInit()
	d.Press("+")
	d.Press("+")
	assert.Equal(t, "count=12", d.View())
	assert.Equal(t, 120, d.Model.(counterModel).size.Width)
}

func TestDriver_NamedKeys(t *testing.T) {
	d := New(t, counterModel{})
	d.Press("tab")
	d.Press("down")
	d.Type("ab")
	assert.Equal(t, []string{"tab", "down", "a", "b"}, d.Model.(counterModel).keys)
}

func TestDriver_QuitStopsInput(t *testing.T) {
	d := New(t, counterModel{})
	d.Press("q")
	assert.True(t, d.Quitting)
	d.Press("+")
	assert.Equal(t, "count=0", d.View())
}

func TestDriver_DropsSlowCmd(t *testing.T) {
	d := New(t, counterModel{}, WithCmdTimeout(5*time.Millisecond))
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	d.drain(func() tea.Msg {
		time.Sleep(50 * time.Millisecond)
		return loadedMsg(99)
	}, 0)
	assert.Equal(t, "count=0", d.View())
}
