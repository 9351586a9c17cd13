package components

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// CopiedMsg reports the outcome of a clipboard write.
type CopiedMsg struct {
	What string
	Err  error
}

// WriteClipboard is the system clipboard writer; views take it as their
// default and tests substitute their own.
func WriteClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// CopyCmd writes text with write and reports a CopiedMsg. Empty text yields
// no command.
func CopyCmd(write func(string) error, what, text string) tea.Cmd {
	if text == "" {
		return nil
	}
	if write == nil {
		write = WriteClipboard
	}
	return func() tea.Msg {
		return CopiedMsg{What: what, Err: write(text)}
	}
}

// CopyStatus is the one-line status for a finished copy.
func CopyStatus(msg CopiedMsg) string {
	if msg.Err != nil {
		return "clipboard unavailable"
	}
	return "copied " + msg.What
}
