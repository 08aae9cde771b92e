package modules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mexc-tools/mexc-bot-panel/models"
)

// tuiLogLines bounds the visible tail of the event log; the ring itself
// keeps EventLogCapacity entries.
const tuiLogLines = 12

var (
	tuiTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tuiLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(22)
	tuiFocusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	tuiHintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tuiRunningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	tuiStoppedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	tuiPaneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	tuiSeverityStyles = map[models.Severity]lipgloss.Style{
		models.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		models.SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// panelRefreshMsg is sent by the panel listener whenever shared state
// changes; the view re-reads the panel on the next render.
type panelRefreshMsg struct{}

// commandDoneMsg carries a finished start/stop command back onto the
// program's message loop. The outcome itself is already in the event log.
type commandDoneMsg struct{ err error }

type TuiModel struct {
	panel      *Panel
	controller *Controller

	inputs []textinput.Model
	focus  int
	spin   spinner.Model
}

func NewTuiModel(panel *Panel, controller *Controller) TuiModel {
	cfg := panel.Config()

	inputs := make([]textinput.Model, len(Fields))
	for i, field := range Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 32
		ti.Placeholder = fieldHint(field)
		if field.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.SetValue(initialFieldValue(field, cfg))
		inputs[i] = ti
	}
	inputs[0].Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = tuiFocusStyle

	return TuiModel{
		panel:      panel,
		controller: controller,
		inputs:     inputs,
		spin:       spin,
	}
}

func fieldHint(field FieldSpec) string {
	if field.Numeric && field.Max > 0 {
		return fmt.Sprintf("%g – %g", field.Min, field.Max)
	}
	return ""
}

func initialFieldValue(field FieldSpec, cfg models.Configuration) string {
	switch field.Name {
	case FieldApiKey:
		return cfg.ApiKey
	case FieldSecretKey:
		return cfg.SecretKey
	case FieldSymbol:
		return cfg.Symbol
	case FieldBuyQuantity:
		return formatQuantity(cfg.BuyQuantity)
	case FieldSellQuantity:
		return formatQuantity(cfg.SellQuantity)
	case FieldMaxPriceDeviation:
		return formatQuantity(cfg.MaxPriceDeviation)
	}
	return ""
}

func formatQuantity(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (m TuiModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m TuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case panelRefreshMsg, commandDoneMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down", "enter":
			return m, m.cycle(1)
		case "shift+tab", "up":
			return m, m.cycle(-1)
		case "ctrl+s":
			if m.panel.InFlight() || m.panel.Status().Running {
				return m, nil
			}
			return m, m.command(m.controller.Start)
		case "ctrl+x":
			if m.panel.InFlight() || !m.panel.Status().Running {
				return m, nil
			}
			return m, m.command(m.controller.Stop)
		}
	}

	return m.updateFocused(msg)
}

func (m TuiModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.panel.UpdateConfig(Fields[m.focus].Name, after)
	}
	return m, cmd
}

func (m *TuiModel) cycle(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m TuiModel) command(run func() error) tea.Cmd {
	return func() tea.Msg {
		return commandDoneMsg{err: run()}
	}
}

func (m TuiModel) View() string {
	var b strings.Builder

	b.WriteString(tuiTitleStyle.Render("MEXC Bot Panel"))
	b.WriteString("\n\n")

	for i, field := range Fields {
		label := field.Label
		if i == m.focus {
			label = tuiFocusStyle.Render("▸ " + label)
		} else {
			label = "  " + label
		}
		fmt.Fprintf(&b, "%s %s\n", tuiLabelStyle.Render(label), m.inputs[i].View())
	}

	b.WriteString("\n")
	b.WriteString(tuiPaneStyle.Render(renderStatus(m.panel.Status())))
	b.WriteString("\n\n")
	b.WriteString(tuiPaneStyle.Render(renderLogTail(m.panel.Logs())))
	b.WriteString("\n\n")

	if m.panel.InFlight() {
		fmt.Fprintf(&b, "%s command in flight...\n", m.spin.View())
	}
	b.WriteString(tuiHintStyle.Render("tab: next field • ctrl+s: start • ctrl+x: stop • esc: quit"))
	b.WriteString("\n")

	return b.String()
}

// renderStatus prints every field the bot reported. Presence is a nil
// check, never truthiness: a zero bid or spread is still a value.
func renderStatus(s models.StatusSnapshot) string {
	var b strings.Builder

	if s.Running {
		b.WriteString(tuiRunningStyle.Render("RUNNING"))
	} else {
		b.WriteString(tuiStoppedStyle.Render("STOPPED"))
	}
	if s.Message != "" {
		fmt.Fprintf(&b, "  %s", s.Message)
	}
	b.WriteString("\n")

	if s.Symbol != "" {
		fmt.Fprintf(&b, "symbol:        %s\n", s.Symbol)
	}
	if s.BestBid != nil {
		fmt.Fprintf(&b, "best bid:      %s\n", s.BestBid.String())
	}
	if s.BestAsk != nil {
		fmt.Fprintf(&b, "best ask:      %s\n", s.BestAsk.String())
	}
	if s.Spread != nil {
		fmt.Fprintf(&b, "spread:        %s\n", s.Spread.String())
	}
	if s.InitialPrice != nil {
		fmt.Fprintf(&b, "initial price: %s\n", s.InitialPrice.String())
	}
	if s.CurrentBuyOrder != nil {
		fmt.Fprintf(&b, "buy order:     %s @ %s\n", s.CurrentBuyOrder.OrderID, s.CurrentBuyOrder.Price.String())
	}
	if s.CurrentSellOrder != nil {
		fmt.Fprintf(&b, "sell order:    %s @ %s\n", s.CurrentSellOrder.OrderID, s.CurrentSellOrder.Price.String())
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderLogTail(entries []models.LogEntry) string {
	if len(entries) == 0 {
		return tuiHintStyle.Render("no events yet")
	}
	if len(entries) > tuiLogLines {
		entries = entries[len(entries)-tuiLogLines:]
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		style, ok := tuiSeverityStyles[entry.Severity]
		if !ok {
			style = tuiSeverityStyles[models.SeverityInfo]
		}
		lines = append(lines, fmt.Sprintf("%s %s", tuiHintStyle.Render(entry.Timestamp), style.Render(entry.Message)))
	}
	return strings.Join(lines, "\n")
}

// RunTui runs the interactive panel until the operator quits.
func RunTui(panel *Panel, controller *Controller) error {
	program := tea.NewProgram(NewTuiModel(panel, controller), tea.WithAltScreen())

	panel.Subscribe(func(models.PanelEvent) {
		program.Send(panelRefreshMsg{})
	})

	_, err := program.Run()
	return err
}
