// Package viewer renders raster image bytes in the terminal or hands them to
// the OS image viewer. Both paths go through an external program, abstracted
// behind CommandRunner so tests never spawn real processes.
package viewer

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"doclib/internal/errors"
	"doclib/internal/logger"
)

// errRendererMissing marks the absence of the terminal renderer so callers
// can degrade to a textual notice instead of reporting a failure.
var errRendererMissing = stderrors.New("chafa not found")

// IsRendererMissing reports whether err means the terminal renderer is not
// installed.
func IsRendererMissing(err error) bool {
	return stderrors.Is(err, errRendererMissing)
}

// openGUIHint is shown when no graphical display is available. Most users hit
// this over plain SSH, so it spells out the workarounds.
const openGUIHint = `open requires a graphical display.
You appear to be running on a remote server without X11/Wayland forwarding.

Options:
  1. Use 'show' for terminal preview instead
  2. Connect with X11 forwarding: ssh -X user@server
  3. Run the CLI on your local machine with SSH tunneling:
     ssh -L 8095:localhost:8095 user@server
     doclib --server http://localhost:8095`

// InstallHint is printed when the terminal renderer is missing; rendering
// failure is non-fatal and the session continues.
const InstallHint = "(Install chafa for terminal preview: sudo apt install chafa)"

// Viewer exposes the two display capabilities.
type Viewer struct {
	runner CommandRunner
	getenv func(string) string
}

// New creates a Viewer that spawns real processes.
func New() *Viewer {
	return &Viewer{runner: realRunner{}, getenv: os.Getenv}
}

// NewWithRunner creates a Viewer with a custom runner and environment lookup,
// used by tests.
func NewWithRunner(r CommandRunner, getenv func(string) string) *Viewer {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Viewer{runner: r, getenv: getenv}
}

// scratchPath returns a unique temp file path for one viewer invocation.
// Unique names avoid collisions between concurrent sessions on a shared
// machine; the files are intentionally left behind for the GUI viewer.
func scratchPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("doclib-%s.png", uuid.NewString()))
}

// RenderTerminal writes the image to a scratch file and renders it in the
// current terminal via chafa at the given character-grid size ("COLSxROWS").
// Returns a KindDisplay error when chafa is unavailable or fails.
func (v *Viewer) RenderTerminal(data []byte, size string) error {
	const op = errors.Op("viewer.RenderTerminal")

	if _, err := v.runner.LookPath("chafa"); err != nil {
		return errors.E(op, errors.KindDisplay, errRendererMissing)
	}

	path := scratchPath()
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.E(op, errors.KindIO, "failed to write temp file", err)
	}

	logger.Debug("rendering %d bytes at %s via chafa", len(data), size)
	err := v.runner.Run("chafa",
		"--size", size,
		"--symbols", "all",
		"-w", "9",
		"-c", "full",
		path,
	)
	if err != nil {
		return errors.E(op, errors.KindDisplay, "chafa failed", err)
	}
	return nil
}

// OpenGUI writes the image to a scratch file and opens it with the platform's
// default image viewer. The viewer process is detached; this call does not
// wait for it to exit. Fails fast with guidance when no display is available.
func (v *Viewer) OpenGUI(data []byte) (string, error) {
	const op = errors.Op("viewer.OpenGUI")

	if !v.displayAvailable() {
		return "", errors.NoGraphicalDisplay(openGUIHint)
	}

	path := scratchPath()
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.E(op, errors.KindIO, "failed to write temp file", err)
	}

	name, args := openCommand(path)
	logger.Debug("opening image via %s", name)
	if err := v.runner.Start(name, args...); err != nil {
		return "", errors.E(op, errors.KindDisplay, fmt.Sprintf("failed to run %q", name), err)
	}
	return path, nil
}

// displayAvailable reports whether a graphical display can be reached.
func (v *Viewer) displayAvailable() bool {
	switch runtime.GOOS {
	case "linux":
		return v.getenv("DISPLAY") != "" || v.getenv("WAYLAND_DISPLAY") != ""
	case "darwin":
		// An SSH session without forwarding has no usable display.
		if v.getenv("SSH_CONNECTION") != "" && v.getenv("DISPLAY") == "" {
			return false
		}
		return true
	default:
		return true
	}
}

// openCommand returns the platform command that opens a file with the default
// application.
func openCommand(path string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/C", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}
