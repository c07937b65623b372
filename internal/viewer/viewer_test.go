package viewer

import (
	"runtime"
	"testing"

	"doclib/internal/errors"
)

func staticEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestRenderTerminal_InvokesChafaWithSize(t *testing.T) {
	runner := NewMockRunner()
	v := NewWithRunner(runner, nil)

	if err := v.RenderTerminal([]byte("png-bytes"), "96x24"); err != nil {
		t.Fatalf("RenderTerminal: %v", err)
	}

	if len(runner.Calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(runner.Calls))
	}
	call := runner.Calls[0]
	if call[0] != "chafa" {
		t.Errorf("program = %q, want chafa", call[0])
	}
	wantPrefix := []string{"chafa", "--size", "96x24", "--symbols", "all", "-w", "9", "-c", "full"}
	for i, want := range wantPrefix {
		if call[i] != want {
			t.Errorf("arg %d = %q, want %q", i, call[i], want)
		}
	}
}

func TestRenderTerminal_MissingChafa(t *testing.T) {
	runner := NewMockRunner()
	runner.Missing["chafa"] = true
	v := NewWithRunner(runner, nil)

	err := v.RenderTerminal([]byte("png-bytes"), "80x40")
	if !errors.Is(err, errors.KindDisplay) {
		t.Fatalf("error kind = %v, want KindDisplay", errors.GetKind(err))
	}
	if len(runner.Calls) != 0 {
		t.Errorf("chafa should not be invoked when missing, got %d calls", len(runner.Calls))
	}
}

func TestOpenGUI_NoDisplay(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("display detection under test is the linux path")
	}
	runner := NewMockRunner()
	v := NewWithRunner(runner, staticEnv(map[string]string{}))

	_, err := v.OpenGUI([]byte("png-bytes"))
	if !errors.Is(err, errors.KindDisplay) {
		t.Fatalf("error kind = %v, want KindDisplay", errors.GetKind(err))
	}
	if len(runner.Calls) != 0 {
		t.Errorf("no process should be spawned without a display, got %d calls", len(runner.Calls))
	}
}

func TestOpenGUI_UniqueScratchFiles(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("display detection under test is the linux path")
	}
	runner := NewMockRunner()
	v := NewWithRunner(runner, staticEnv(map[string]string{"DISPLAY": ":0"}))

	first, err := v.OpenGUI([]byte("png-bytes"))
	if err != nil {
		t.Fatalf("OpenGUI: %v", err)
	}
	second, err := v.OpenGUI([]byte("png-bytes"))
	if err != nil {
		t.Fatalf("OpenGUI: %v", err)
	}
	if first == second {
		t.Errorf("scratch paths should be unique per invocation, both were %q", first)
	}
	if len(runner.Calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(runner.Calls))
	}
	if runner.Calls[0][0] != "xdg-open" {
		t.Errorf("program = %q, want xdg-open", runner.Calls[0][0])
	}
}
