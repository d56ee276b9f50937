package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "full word with spaces", input: "  YES \n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty line defaults to no", input: "\n", want: false},
		{name: "answer without newline", input: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm(context.Background(), "Delete report Lakes?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete report Lakes? [y/N]")
		})
	}
}

func TestPrompter_ConfirmEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), io.Discard)
	_, err := p.Confirm(context.Background(), "Continue?")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompter_ConfirmCanceled(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPrompter(pr, io.Discard)
	_, err := p.Confirm(ctx, "Continue?")
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestPrompter_ProgressReader(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)

	data := strings.Repeat("x", 4096)
	r := p.ProgressReader(strings.NewReader(data), int64(len(data)), "Loading sold.csv")

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, string(got), "bytes pass through unchanged")
}

func TestWriteTable(t *testing.T) {
	var out bytes.Buffer
	err := WriteTable(&out, []string{"Report", "Rules"}, [][]string{
		{"Lakes", "2"},
		{"All", "0"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Report")
	assert.True(t, strings.HasPrefix(lines[1], "------"))
	assert.True(t, strings.HasPrefix(lines[2], "Lakes"))
}

func TestInterruptHandler(t *testing.T) {
	var out bytes.Buffer
	h := NewInterruptHandler(&out)
	assert.False(t, h.WasInterrupted())

	ctx, stop := h.HandleInterrupts(context.Background())
	defer stop()
	assert.NoError(t, ctx.Err())

	h.Interrupt()
	h.Interrupt()
	assert.True(t, h.WasInterrupted())
	assert.Equal(t, 1, strings.Count(out.String(), "Interrupted!"), "message printed once")

	stop()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("done"), "done")
	assert.Contains(t, FormatError("failed"), ErrorIcon)
	assert.Contains(t, FormatTitle("Reports"), "Reports")
	assert.Contains(t, RenderBox("Summary", "3 written"), "3 written")
}
