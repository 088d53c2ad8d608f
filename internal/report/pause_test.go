package report

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubRunForm(t *testing.T, err error) *int {
	t.Helper()
	calls := 0
	orig := runFormFunc
	runFormFunc = func(context.Context, *huh.Form) error {
		calls++
		return err
	}
	t.Cleanup(func() { runFormFunc = orig })
	return &calls
}

func TestPauseSkippedWhenDisabled(t *testing.T) {
	calls := stubRunForm(t, nil)
	p := &Pauser{isTerminal: func() bool { return true }}

	require.NoError(t, p.Pause(context.Background(), false))
	assert.Equal(t, 0, *calls)
}

func TestPauseSkippedWithoutTerminal(t *testing.T) {
	calls := stubRunForm(t, nil)
	p := &Pauser{isTerminal: func() bool { return false }}

	require.NoError(t, p.Pause(context.Background(), true))
	assert.Equal(t, 0, *calls)
}

func TestPauseSkippedAfterInterrupt(t *testing.T) {
	calls := stubRunForm(t, nil)
	p := &Pauser{isTerminal: func() bool { return true }}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Pause(ctx, true))
	assert.Equal(t, 0, *calls)
}

func TestPauseRunsForm(t *testing.T) {
	calls := stubRunForm(t, nil)
	p := &Pauser{isTerminal: func() bool { return true }}

	require.NoError(t, p.Pause(context.Background(), true))
	assert.Equal(t, 1, *calls)
}

func TestPauseAbortIsNotAnError(t *testing.T) {
	stubRunForm(t, huh.ErrUserAborted)
	p := &Pauser{isTerminal: func() bool { return true }}

	require.NoError(t, p.Pause(context.Background(), true))
}

func TestPausePropagatesFormError(t *testing.T) {
	boom := errors.New("tty closed")
	stubRunForm(t, boom)
	p := &Pauser{isTerminal: func() bool { return true }}

	err := p.Pause(context.Background(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestPauseNilCheckerUsesDefault(t *testing.T) {
	calls := stubRunForm(t, nil)
	p := &Pauser{}

	// Test binaries never run with a terminal on both stdin and stdout.
	require.NoError(t, p.Pause(context.Background(), true))
	assert.Equal(t, 0, *calls)
}

func TestNewPauser(t *testing.T) {
	p := NewPauser()
	require.NotNil(t, p.isTerminal)
}

func TestPauseKeyMap(t *testing.T) {
	km := pauseKeyMap()
	assert.Equal(t, []string{"ctrl+c"}, km.Quit.Keys())
	assert.Equal(t, []string{"enter"}, km.Note.Submit.Keys())
	assert.False(t, km.Note.Prev.Enabled())
}

func TestAnyKeyFilter(t *testing.T) {
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	assert.Equal(t, enter, anyKeyFilter(nil, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}))
	assert.Equal(t, enter, anyKeyFilter(nil, tea.KeyMsg{Type: tea.KeySpace}))
	assert.Equal(t, enter, anyKeyFilter(nil, tea.KeyMsg{Type: tea.KeyEsc}))

	ctrlC := tea.KeyMsg{Type: tea.KeyCtrlC}
	assert.Equal(t, ctrlC, anyKeyFilter(nil, ctrlC))
	assert.Equal(t, tea.QuitMsg{}, anyKeyFilter(nil, tea.InterruptMsg{}))

	size := tea.WindowSizeMsg{Width: 80, Height: 24}
	assert.Equal(t, size, anyKeyFilter(nil, size))
}
