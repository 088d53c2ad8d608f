package report

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/conn-castle/ptsetup/internal/messages"
)

var runFormFunc = func(ctx context.Context, form *huh.Form) error { return form.RunWithContext(ctx) }

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Pauser holds the console open until the user presses a key, so a
// double-clicked setup window does not close before its output is read.
type Pauser struct {
	isTerminal func() bool
}

// NewPauser returns a Pauser using the default terminal check.
func NewPauser() *Pauser {
	return &Pauser{isTerminal: IsInteractive}
}

// Pause waits for a keypress. It returns immediately when disabled, when the
// console is not interactive, or when ctx is already done.
func (p *Pauser) Pause(ctx context.Context, enabled bool) error {
	if !enabled || ctx.Err() != nil {
		return nil
	}
	checker := p.isTerminal
	if checker == nil {
		checker = IsInteractive
	}
	if !checker() {
		return nil
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(messages.SetupPausePrompt),
	))
	form.WithShowHelp(false)
	form.WithKeyMap(pauseKeyMap())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithFilter(anyKeyFilter),
	)

	err := runFormFunc(ctx, form)
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pauseKeyMap confirms the note on enter and aborts on ctrl+c.
func pauseKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c"))
	km.Note.Submit = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "exit"))
	km.Note.Prev.SetEnabled(false)
	return km
}

// anyKeyFilter turns every key except ctrl+c into enter, and an interrupt
// into a graceful quit so the renderer clears the prompt.
func anyKeyFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if m.Type == tea.KeyCtrlC {
			return m
		}
		return tea.KeyMsg{Type: tea.KeyEnter}
	case tea.InterruptMsg:
		return tea.QuitMsg{}
	}
	return msg
}
