package viewer

import (
	"os"
	"os/exec"
	"sync"
)

// CommandRunner abstracts external process invocation.
type CommandRunner interface {
	// LookPath reports whether a program is on the PATH.
	LookPath(name string) (string, error)
	// Run starts a program connected to the current terminal and waits for
	// it to exit.
	Run(name string, args ...string) error
	// Start starts a program detached; it is not waited on.
	Start(name string, args ...string) error
}

type realRunner struct{}

func (realRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (realRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	// chafa draws straight to the tty
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (realRunner) Start(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// MockRunner records invocations for tests.
type MockRunner struct {
	mu sync.Mutex

	// Missing lists program names LookPath should report as absent.
	Missing map[string]bool
	// RunErr is returned from Run when set.
	RunErr error
	// StartErr is returned from Start when set.
	StartErr error

	// Calls records every Run/Start invocation as name followed by args.
	Calls [][]string
}

// NewMockRunner creates an empty MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{Missing: make(map[string]bool)}
}

func (m *MockRunner) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Missing[name] {
		return "", exec.ErrNotFound
	}
	return "/usr/bin/" + name, nil
}

func (m *MockRunner) Run(name string, args ...string) error {
	m.record(name, args)
	return m.RunErr
}

func (m *MockRunner) Start(name string, args ...string) error {
	m.record(name, args)
	return m.StartErr
}

func (m *MockRunner) record(name string, args []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	call := append([]string{name}, args...)
	m.Calls = append(m.Calls, call)
}
