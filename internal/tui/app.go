// Package tui renders the live hunt dashboard.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pcasas/gramhound/internal/domain"
	"github.com/pcasas/gramhound/internal/usecase"
)

const recentLimit = 8

type Deps struct {
	// StartHunt runs the hunt, reporting progress through onEvent. It must
	// honor ctx cancellation.
	StartHunt func(ctx context.Context, onEvent func(usecase.Event)) (usecase.Summary, error)

	Logger *slog.Logger
}

type model struct {
	theme Theme
	spin  spinner.Model

	cancel context.CancelFunc
	events chan tea.Msg

	width int

	checked   int
	counts    map[domain.Status]int
	current   string
	recent    []string
	cooldown  time.Time
	startedAt time.Time

	stopping bool
	done     bool
	summary  usecase.Summary
	runErr   error
}

// Run drives the dashboard until the hunt finishes or the user quits. Quitting
// cancels the hunt and waits for its final summary.
func Run(deps Deps) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan tea.Msg, 256)

	go func() {
		sum, err := deps.StartHunt(ctx, func(ev usecase.Event) {
			var msg tea.Msg
			switch ev.Kind {
			case usecase.EventCooldown:
				msg = cooldownMsg{Until: ev.Until}
			default:
				msg = resultMsg(ev.Result)
			}
			// Drop frames rather than stall workers behind the renderer.
			select {
			case events <- msg:
			default:
			}
		})
		events <- doneMsg{Summary: sum, Err: err}
	}()

	m := newModel(cancel, events)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.runErr != nil && !usecase.IsCancelled(fm.runErr) {
		return fm.runErr
	}
	return nil
}

func newModel(cancel context.CancelFunc, events chan tea.Msg) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		theme:     DefaultTheme(),
		spin:      sp,
		cancel:    cancel,
		events:    events,
		counts:    map[domain.Status]int{},
		startedAt: time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, listen(m.events))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.done {
				return m, tea.Quit
			}
			m.stopping = true
			m.cancel()
			return m, nil
		case "enter":
			if m.done {
				return m, tea.Quit
			}
		}
		return m, nil

	case resultMsg:
		res := domain.CheckResult(msg)
		m.checked++
		m.counts[res.Status]++
		m.current = res.Candidate
		if res.Status == domain.StatusAvailable {
			m.recent = append([]string{res.Candidate}, m.recent...)
			if len(m.recent) > recentLimit {
				m.recent = m.recent[:recentLimit]
			}
		}
		return m, listen(m.events)

	case cooldownMsg:
		m.cooldown = msg.Until
		return m, listen(m.events)

	case doneMsg:
		m.done = true
		m.summary = msg.Summary
		m.runErr = msg.Err
		if m.stopping {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	header := m.theme.Title.Render("gramhound") + "\n" +
		m.theme.Subtitle.Render("hunting unregistered usernames") + "\n"

	var b strings.Builder
	if m.done {
		fmt.Fprintf(&b, "Hunt finished.\n\n")
	} else if m.stopping {
		fmt.Fprintf(&b, "%s stopping (saving checkpoint)...\n\n", m.spin.View())
	} else {
		fmt.Fprintf(&b, "%s checking %s\n\n", m.spin.View(), m.current)
	}

	fmt.Fprintf(&b, "checked:   %d\n", m.checked)
	fmt.Fprintf(&b, "available: %s\n", m.theme.Available.Render(fmt.Sprintf("%d", m.counts[domain.StatusAvailable])))
	fmt.Fprintf(&b, "taken:     %d\n", m.counts[domain.StatusTaken])
	fmt.Fprintf(&b, "blocked:   %d\n", m.counts[domain.StatusBlocked])
	fmt.Fprintf(&b, "unknown:   %d   errors: %d\n", m.counts[domain.StatusUnknown], m.counts[domain.StatusError])
	fmt.Fprintf(&b, "elapsed:   %s\n", time.Since(m.startedAt).Truncate(time.Second))

	if until := time.Until(m.cooldown); until > 0 {
		fmt.Fprintf(&b, "\n%s\n", m.theme.Warn.Render(
			fmt.Sprintf("rate limited — cooling down %s", until.Truncate(time.Second))))
	}

	if len(m.recent) > 0 {
		fmt.Fprintf(&b, "\nrecent finds:\n")
		for _, name := range m.recent {
			fmt.Fprintf(&b, "  %s\n", m.theme.Available.Render(name))
		}
	}

	card := m.theme.Card.Render(b.String())

	help := m.theme.Help.Render("q: stop and save • enter: close when finished")
	if m.done {
		help = m.theme.Help.Render("q/enter: close")
	}

	return wrap.Render(header + "\n" + card + "\n\n" + help)
}
