package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pcasas/gramhound/internal/domain"
	"github.com/pcasas/gramhound/internal/usecase"
)

type resultMsg domain.CheckResult

type cooldownMsg struct {
	Until time.Time
}

type doneMsg struct {
	Summary usecase.Summary
	Err     error
}

func listen(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
