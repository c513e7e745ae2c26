package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/grabr/internal/download"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt_NonTerminal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"trimmed", "  https://cafe.example/menu  \n", "https://cafe.example/menu", nil},
		{"no trailing newline", "https://cafe.example/", "https://cafe.example/", nil},
		{"first line only", "https://a.example/\nhttps://b.example/\n", "https://a.example/", nil},
		{"empty line", "\n", "", ErrEmptyInput},
		{"eof", "", "", ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Prompt(strings.NewReader(tt.input), &out, "Please enter the webpage URL:")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Please enter the webpage URL: ", out.String())
		})
	}
}

func update(t *testing.T, m promptModel, msg tea.Msg) (promptModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(promptModel)
	require.True(t, ok)
	return pm, cmd
}

func TestPromptModel_Enter(t *testing.T) {
	m := newPromptModel("URL:")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" https://cafe.example/menu ")})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "https://cafe.example/menu", m.value)
	assert.False(t, m.aborted)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestPromptModel_EnterOnEmptyKeepsPrompting(t *testing.T) {
	m := newPromptModel("URL:")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.value)
	assert.Contains(t, m.View(), "URL:")
}

func TestPromptModel_Abort(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m, cmd := update(t, newPromptModel("URL:"), tea.KeyMsg{Type: key})
		assert.True(t, m.aborted)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestProgressView_KnownTotal(t *testing.T) {
	var out bytes.Buffer
	v := NewProgressView(&out)

	v.Update(download.TransferEvent{Name: "latte.jpg", Written: 500, Total: 1000})
	first := out.String()
	assert.True(t, strings.HasPrefix(first, clearLine))
	assert.Contains(t, first, "latte.jpg")
	assert.Contains(t, first, "50%")
	assert.Contains(t, first, "500 B / 1.0 kB")

	// Same whole percent, no redraw.
	v.Update(download.TransferEvent{Name: "latte.jpg", Written: 505, Total: 1000})
	assert.Equal(t, first, out.String())

	v.Update(download.TransferEvent{Name: "latte.jpg", Written: 1000, Total: 1000})
	assert.True(t, strings.HasSuffix(out.String(), clearLine), "finished bar is erased")

	// Nothing left to clear.
	before := out.Len()
	v.Clear()
	assert.Equal(t, before, out.Len())
}

func TestProgressView_UnknownTotal(t *testing.T) {
	var out bytes.Buffer
	v := NewProgressView(&out)

	v.Update(download.TransferEvent{Name: "render", Written: 2048})
	assert.Contains(t, out.String(), "2.0 kB")
	assert.NotContains(t, out.String(), "%")

	v.Clear()
	assert.True(t, strings.HasSuffix(out.String(), clearLine))
}
