// Package opener shows a photo's large image in an external viewer.
package opener

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoURL is returned when the photo has nothing to open
var ErrNoURL = errors.New("no image url to open")

// launchPath is one way to start a viewer. "open-a:App" paths go through
// macOS open -a.
type launchPath struct {
	path string
	args []string
}

// candidateViewers is the preferred viewer order per platform. The system
// opener is tried after these.
var candidateViewers = map[string][]launchPath{
	"darwin": {
		{path: "open-a:Preview"},
	},
	"linux": {
		{path: "imv"},
		{path: "feh", args: []string{"--scale-down", "--auto-zoom"}},
		{path: "eog"},
		{path: "sxiv"},
	},
	"windows": {},
}

// Opener launches image URLs
type Opener struct {
	command string   // configured viewer, empty to auto-detect
	args    []string // extra arguments for the configured viewer
	goos    string
	logger  *slog.Logger

	// swapped in tests
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// New creates an Opener. command and args come from the viewer config.
func New(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command:  command,
		args:     args,
		goos:     runtime.GOOS,
		logger:   logger,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start() // Start async, don't wait
		},
	}
}

// Open shows url: configured viewer first, then known viewers, then the
// system default handler
func (o *Opener) Open(url string) error {
	if strings.TrimSpace(url) == "" {
		return ErrNoURL
	}

	if o.command != "" {
		args := append(append([]string{}, o.args...), url)
		o.logger.Info("opening with configured viewer", "command", o.command, "args", args)
		if err := o.start(o.command, args...); err != nil {
			return fmt.Errorf("failed to start %s: %w", o.command, err)
		}
		return nil
	}

	if name, err := o.detectAndLaunch(url); err == nil {
		o.logger.Info("opened with detected viewer", "viewer", name)
		return nil
	}

	o.logger.Info("no candidate viewer found, using system default", "os", o.goos)
	return o.launchDefault(url)
}

// detectAndLaunch tries the candidate viewers in order
func (o *Opener) detectAndLaunch(url string) (string, error) {
	candidates, ok := candidateViewers[o.goos]
	if !ok {
		candidates = candidateViewers["linux"]
	}

	for _, lp := range candidates {
		var err error
		if app, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
			err = o.start("open", "-a", app, url)
		} else if _, err = o.lookPath(lp.path); err == nil {
			err = o.start(lp.path, append(append([]string{}, lp.args...), url)...)
		}
		if err == nil {
			return lp.path, nil
		}
		o.logger.Debug("viewer not available", "path", lp.path, "error", err)
	}
	return "", errors.New("no candidate viewers found")
}

// launchDefault opens the URL using the system default handler
func (o *Opener) launchDefault(url string) error {
	switch o.goos {
	case "darwin":
		return o.start("open", url)
	case "windows":
		return o.start("cmd", "/c", "start", "", url)
	default:
		return o.start("xdg-open", url)
	}
}
