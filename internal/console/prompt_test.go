package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrompt_Confirm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "long yes", input: " YES \n", want: true},
		{name: "no", input: "n\n"},
		{name: "empty line", input: "\n"},
		{name: "garbage", input: "maybe\n"},
		{name: "eof", input: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			p := NewPrompt(strings.NewReader(tt.input), &out)

			got, err := p.Confirm(context.Background(), "Delete room 101?")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, "Delete room 101? [y/N] ", out.String())
		})
	}
}

func TestPrompt_ConfirmCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPrompt(strings.NewReader("y\n"), &bytes.Buffer{})

	ok, err := p.Confirm(ctx, "Delete?")
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, ok)
}

func TestPrompt_ReadLine(t *testing.T) {
	t.Parallel()
	p := NewPrompt(strings.NewReader("  login alice secret1 \nquit"), &bytes.Buffer{})

	line, err := p.ReadLine("> ")
	require.NoError(t, err)
	require.Equal(t, "login alice secret1", line)
	line, err = p.ReadLine("> ")
	require.NoError(t, err)
	require.Equal(t, "quit", line)
	_, err = p.ReadLine("> ")
	require.ErrorIs(t, err, ErrClosed)
}

func TestSplitForm(t *testing.T) {
	t.Parallel()
	require.Equal(t, []string{"1 Main St", "555-0100", ""}, splitForm([]string{"1", "Main", "St", "|", "555-0100"}, 3))
	require.Equal(t, []string{"a", "b", "c|d"}, splitForm([]string{"a|b|c|d"}, 3))
}
