package config

import "testing"

func TestEnv(t *testing.T) {
	t.Setenv("EYES_TEST_VAR", "hello")
	if got := Env("EYES_TEST_VAR", "fallback"); got != "hello" {
		t.Errorf("Env set: got %q, want hello", got)
	}
	if got := Env("EYES_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("Env unset: got %q, want fallback", got)
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("EYES_TEST_INT", "7")
	if got := EnvInt("EYES_TEST_INT", 1); got != 7 {
		t.Errorf("EnvInt set: got %d, want 7", got)
	}
	if got := EnvInt("EYES_TEST_INT_UNSET", 3); got != 3 {
		t.Errorf("EnvInt unset: got %d, want 3", got)
	}
	t.Setenv("EYES_TEST_INT", "not-a-number")
	if got := EnvInt("EYES_TEST_INT", 3); got != 3 {
		t.Errorf("EnvInt unparseable: got %d, want fallback 3", got)
	}
}

func TestSPIDeviceOverrides(t *testing.T) {
	if got := LeftSPI(); got != DefaultLeftSPI {
		t.Errorf("LeftSPI default: got %q, want %q", got, DefaultLeftSPI)
	}
	t.Setenv("EYES_LEFT_SPI", "/dev/spidev1.0")
	if got := LeftSPI(); got != "/dev/spidev1.0" {
		t.Errorf("LeftSPI override: got %q", got)
	}
	t.Setenv("EYES_RIGHT_SPI", "/dev/spidev1.1")
	if got := RightSPI(); got != "/dev/spidev1.1" {
		t.Errorf("RightSPI override: got %q", got)
	}
}
