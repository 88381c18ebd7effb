package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgPlayNext MsgKind = iota
)

// playNextMsg is the constructor for [MsgPlayNext]. gen identifies the play-all run that scheduled it.
func playNextMsg(gen int) Msg {
	return Msg{kind: MsgPlayNext, data: gen}
}

// schedulePlayNext delivers [MsgPlayNext] after interval, or immediately when interval is not positive.
func schedulePlayNext(gen int, interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return func() tea.Msg { return playNextMsg(gen) }
	}
	return tea.Tick(interval, func(time.Time) tea.Msg { return playNextMsg(gen) })
}
