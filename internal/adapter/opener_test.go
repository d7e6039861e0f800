package adapter

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type startCall struct {
	name string
	args []string
}

func recordStarts(t *testing.T) *[]startCall {
	t.Helper()
	var calls []startCall
	orig := startCommand
	startCommand = func(name string, args ...string) error {
		calls = append(calls, startCall{name: name, args: args})
		return nil
	}
	t.Cleanup(func() { startCommand = orig })
	return &calls
}

func TestOpener_ConfiguredViewer(t *testing.T) {
	calls := recordStarts(t)

	o := NewOpener("zathura", []string{"--fork"}, NullLogger())
	require.NoError(t, o.Open("https://files.example.com/a.pdf"))

	require.Len(t, *calls, 1)
	assert.Equal(t, "zathura", (*calls)[0].name)
	assert.Equal(t, []string{"--fork", "https://files.example.com/a.pdf"}, (*calls)[0].args)
}

func TestOpener_SystemDefault(t *testing.T) {
	calls := recordStarts(t)

	o := NewOpener("", nil, NullLogger())
	require.NoError(t, o.Open("https://files.example.com/a.pdf"))

	wantName, wantArgs := defaultOpenCommand(runtime.GOOS, "https://files.example.com/a.pdf")
	require.Len(t, *calls, 1)
	assert.Equal(t, wantName, (*calls)[0].name)
	assert.Equal(t, wantArgs, (*calls)[0].args)
}

func TestOpener_RejectsEmptyURL(t *testing.T) {
	calls := recordStarts(t)

	assert.Error(t, NewOpener("", nil, NullLogger()).Open(""))
	assert.Empty(t, *calls)
}

func TestDefaultOpenCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"darwin", "open", []string{"u"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "u"}},
		{"linux", "xdg-open", []string{"u"}},
		{"freebsd", "xdg-open", []string{"u"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := defaultOpenCommand(tt.goos, "u")
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
