package config

import "testing"

func TestServerURL_FlagWins(t *testing.T) {
	t.Setenv(ServerURLEnv, "http://env:9000")
	if got := ServerURL("http://flag:8000"); got != "http://flag:8000" {
		t.Errorf("ServerURL = %q, want flag value", got)
	}
}

func TestServerURL_EnvBeatsDefault(t *testing.T) {
	t.Setenv(ServerURLEnv, "http://env:9000")
	if got := ServerURL(""); got != "http://env:9000" {
		t.Errorf("ServerURL = %q, want env value", got)
	}
}

func TestServerURL_Default(t *testing.T) {
	t.Setenv(ServerURLEnv, "")
	if got := ServerURL("   "); got != DefaultServerURL {
		t.Errorf("ServerURL = %q, want default %q", got, DefaultServerURL)
	}
}
