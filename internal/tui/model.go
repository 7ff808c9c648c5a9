// Package tui is the interactive calculator.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/internal/history"
	"github.com/zephyrtronium/scicalc/internal/messages"
)

// History is the part of the history store the calculator uses.
type History interface {
	Add(ctx context.Context, instance, expr, result string) (history.Record, error)
	List(ctx context.Context, instance string) ([]history.Record, error)
	Clear(ctx context.Context, instance string) error
}

// Options configures a Model.
type Options struct {
	Mode scicalc.AngleMode
	Lang string
	// History is optional. Instance is the key of this calculator's records.
	History  History
	Instance string
	// SaveMode persists the angle mode when the user asks. Optional.
	SaveMode func(scicalc.AngleMode) error
	// Log defaults to discarding.
	Log *zerolog.Logger
}

// shown is the number of history records in the view.
const shown = 8

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	modeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	histStyle   = lipgloss.NewStyle().PaddingLeft(2)
	helpStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
)

// Model is the calculator state.
type Model struct {
	ctx     context.Context
	opts    Options
	input   textinput.Model
	mode    scicalc.AngleMode
	records []history.Record
	recall  int    // index into records while recalling, or -1
	draft   string // display contents before recall started
	errmsg  string
	status  string
}

// New creates a calculator and loads its history.
func New(ctx context.Context, opts Options) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "2+3*4"
	in.Focus()
	if opts.Log == nil {
		nop := zerolog.Nop()
		opts.Log = &nop
	}
	m := Model{
		ctx:    ctx,
		opts:   opts,
		input:  in,
		mode:   opts.Mode,
		recall: -1,
	}
	m.reload()
	return m
}

// Mode returns the current angle mode.
func (m Model) Mode() scicalc.AngleMode { return m.mode }

// Display returns the contents of the display.
func (m Model) Display() string { return m.input.Value() }

// Err returns the message for the last failed evaluation, if any.
func (m Model) Err() string { return m.errmsg }

// Records returns the history shown, newest first.
func (m Model) Records() []history.Record { return m.records }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.evaluate()
			return m, nil
		case "ctrl+r":
			m.toggleMode()
			return m, nil
		case "ctrl+s":
			m.saveMode()
			return m, nil
		case "ctrl+n":
			m.setDisplay(toggleSign(strings.TrimSpace(m.input.Value())))
			return m, nil
		case "ctrl+l":
			m.clearHistory()
			return m, nil
		case "up":
			m.recallOlder()
			return m, nil
		case "down":
			m.recallNewer()
			return m, nil
		}
		m.errmsg = ""
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) setDisplay(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

// evaluate computes the display. On failure the display and history are left
// as they are.
func (m *Model) evaluate() {
	expr := strings.TrimSpace(m.input.Value())
	if expr == "" {
		return
	}
	v, err := scicalc.Evaluate(expr, m.mode)
	if err != nil {
		m.errmsg = messages.Message(m.opts.Lang, err)
		m.opts.Log.Debug().Str("expr", expr).Err(err).Msg("evaluation failed")
		return
	}
	result := scicalc.FormatResult(v)
	m.errmsg = ""
	m.status = ""
	m.recall = -1
	m.setDisplay(result)
	if m.opts.History == nil {
		return
	}
	if _, err := m.opts.History.Add(m.ctx, m.opts.Instance, expr, result); err != nil {
		m.opts.Log.Error().Err(err).Msg("recording history")
		m.status = "history: " + err.Error()
		return
	}
	m.reload()
}

func (m *Model) reload() {
	if m.opts.History == nil {
		return
	}
	recs, err := m.opts.History.List(m.ctx, m.opts.Instance)
	if err != nil {
		m.opts.Log.Error().Err(err).Msg("loading history")
		m.status = "history: " + err.Error()
		return
	}
	m.records = recs
}

func (m *Model) toggleMode() {
	if m.mode == scicalc.Degrees {
		m.mode = scicalc.Radians
	} else {
		m.mode = scicalc.Degrees
	}
	m.status = m.mode.String()
}

func (m *Model) saveMode() {
	if m.opts.SaveMode == nil {
		return
	}
	if err := m.opts.SaveMode(m.mode); err != nil {
		m.opts.Log.Error().Err(err).Msg("saving angle mode")
		m.status = "config: " + err.Error()
		return
	}
	m.status = "saved " + m.mode.String()
}

func (m *Model) clearHistory() {
	m.recall = -1
	if m.opts.History == nil {
		return
	}
	if err := m.opts.History.Clear(m.ctx, m.opts.Instance); err != nil {
		m.opts.Log.Error().Err(err).Msg("clearing history")
		m.status = "history: " + err.Error()
		return
	}
	m.records = nil
	m.status = "history cleared"
}

func (m *Model) recallOlder() {
	if m.recall+1 >= len(m.records) {
		return
	}
	if m.recall < 0 {
		m.draft = m.input.Value()
	}
	m.recall++
	m.setDisplay(m.records[m.recall].Expr)
}

func (m *Model) recallNewer() {
	switch {
	case m.recall < 0:
		return
	case m.recall == 0:
		m.recall = -1
		m.setDisplay(m.draft)
	default:
		m.recall--
		m.setDisplay(m.records[m.recall].Expr)
	}
}

// toggleSign negates the display. A lone number gains or loses its minus
// sign; anything else is wrapped in -( ) or unwrapped from it. An empty
// display starts a negative number.
func toggleSign(s string) string {
	toks := scicalc.Tokenize(s)
	switch {
	case s == "":
		return "-"
	case s == "-":
		return ""
	case len(toks) == 0:
		return s
	case len(toks) == 1 && toks[0].Kind == scicalc.TokenNum:
		return "-" + s
	case len(toks) == 2 && toks[0].Text == "-" && toks[1].Kind == scicalc.TokenNum:
		return toks[1].Text
	case strings.HasPrefix(s, "-(") && enclosed(s[1:]):
		return s[2 : len(s)-1]
	}
	return "-(" + s + ")"
}

// enclosed reports whether the parenthesis starting s closes at its end.
func enclosed(s string) bool {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return false
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}
	return false
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("scicalc"))
	b.WriteString("  ")
	b.WriteString(modeStyle.Render(m.mode.String()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errmsg != "" {
		b.WriteString(errStyle.Render(m.errmsg))
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	if len(m.records) > 0 {
		var lines []string
		for i, r := range m.records {
			if i == shown {
				break
			}
			mark := " "
			if i == m.recall {
				mark = ">"
			}
			lines = append(lines, fmt.Sprintf("%s %s = %s", mark, r.Expr, r.Result))
		}
		b.WriteString(histStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter: evaluate  ctrl+r: deg/rad  ctrl+s: save mode  ctrl+n: ±  up/down: history  ctrl+l: clear  esc: quit"))
	return b.String()
}
