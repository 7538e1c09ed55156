package opener

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func newTestOpener(command string, args []string, goos string, installed ...string) (*Opener, *[]call) {
	var calls []call
	o := New(command, args, nil)
	o.goos = goos
	o.lookPath = func(file string) (string, error) {
		for _, in := range installed {
			if in == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", exec.ErrNotFound
	}
	o.start = func(name string, args ...string) error {
		calls = append(calls, call{name: name, args: args})
		return nil
	}
	return o, &calls
}

const img = "https://pixabay.com/get/large.jpg"

func TestOpen_ConfiguredViewer(t *testing.T) {
	o, calls := newTestOpener("feh", []string{"-F"}, "linux")
	require.NoError(t, o.Open(img))
	assert.Equal(t, []call{{name: "feh", args: []string{"-F", img}}}, *calls)
}

func TestOpen_DetectsInstalledViewer(t *testing.T) {
	o, calls := newTestOpener("", nil, "linux", "eog", "feh")
	require.NoError(t, o.Open(img))
	assert.Equal(t, []call{{name: "feh", args: []string{"--scale-down", "--auto-zoom", img}}}, *calls)
}

func TestOpen_FallsBackToSystemDefault(t *testing.T) {
	tests := []struct {
		goos string
		want call
	}{
		{goos: "linux", want: call{name: "xdg-open", args: []string{img}}},
		{goos: "windows", want: call{name: "cmd", args: []string{"/c", "start", "", img}}},
		{goos: "freebsd", want: call{name: "xdg-open", args: []string{img}}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			o, calls := newTestOpener("", nil, tt.goos)
			require.NoError(t, o.Open(img))
			require.NotEmpty(t, *calls)
			assert.Equal(t, tt.want, (*calls)[len(*calls)-1])
		})
	}
}

func TestOpen_DarwinPreview(t *testing.T) {
	o, calls := newTestOpener("", nil, "darwin")
	require.NoError(t, o.Open(img))
	assert.Equal(t, []call{{name: "open", args: []string{"-a", "Preview", img}}}, *calls)
}

func TestOpen_ConfiguredViewerFails(t *testing.T) {
	o, _ := newTestOpener("missing-viewer", nil, "linux")
	o.start = func(string, ...string) error { return exec.ErrNotFound }
	err := o.Open(img)
	require.Error(t, err)
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestOpen_NoURL(t *testing.T) {
	o, calls := newTestOpener("", nil, "linux")
	assert.ErrorIs(t, o.Open(" "), ErrNoURL)
	assert.Empty(t, *calls)
}
