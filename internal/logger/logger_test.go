package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// setupTestLogger creates a temp log file and initializes the logger with it.
// Returns the path to the temp file and a cleanup function.
func setupTestLogger(t *testing.T) (string, func()) {
	t.Helper()
	Reset()

	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test-debug.log")
	if err := Init(logPath); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}

	return logPath, func() {
		Reset()
	}
}

func TestInfo_Formatting(t *testing.T) {
	_, cleanup := setupTestLogger(t)
	defer cleanup()

	Info("integer: %d", 123)
	Info("string: %s", "hello")
	Info("float: %.2f", 3.14159)
	Info("multiple: %s=%d", "count", 5)
}

func TestClose(t *testing.T) {
	_, cleanup := setupTestLogger(t)
	defer cleanup()

	// Close should not panic
	Close()
}

func TestLogFile_Exists(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	testMsg := "test-unique-string-12345"
	Info("%s", testMsg)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	if !strings.Contains(string(content), testMsg) {
		t.Error("Log file should contain the logged message")
	}
}

func TestDebug_SuppressedByDefault(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	Debug("suppressed-debug-marker")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if strings.Contains(string(content), "suppressed-debug-marker") {
		t.Error("Debug message should be suppressed at default level")
	}

	SetDebug(true)
	defer SetDebug(false)
	Debug("visible-debug-marker")

	content, err = os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "visible-debug-marker") {
		t.Error("Debug message should be written when debug level is enabled")
	}
}

func TestComponentLogger(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	log := ComponentLogger("api")
	log.Info("component scoped message")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "component=api") {
		t.Error("Log line should carry the component attribute")
	}
}

func TestLog_Concurrent(t *testing.T) {
	_, cleanup := setupTestLogger(t)
	defer cleanup()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Info("concurrent message %d", n)
		}(i)
	}
	wg.Wait()
}
