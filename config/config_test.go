package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("FIELDOPS_TEST_VAR", "set")
	if got := GetEnv("FIELDOPS_TEST_VAR", "fallback"); got != "set" {
		t.Errorf("GetEnv = %q, want set", got)
	}
	if got := GetEnv("FIELDOPS_TEST_VAR_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want fallback", got)
	}

	// Empty values fall through to the default; the env file pattern never
	// distinguishes empty from unset.
	t.Setenv("FIELDOPS_TEST_VAR_EMPTY", "")
	if got := GetEnv("FIELDOPS_TEST_VAR_EMPTY", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want fallback", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("FIELDOPS_TEST_INT", "42")
	if got := getEnvAsInt("FIELDOPS_TEST_INT", 7); got != 42 {
		t.Errorf("getEnvAsInt = %d, want 42", got)
	}

	t.Setenv("FIELDOPS_TEST_INT", "not-a-number")
	if got := getEnvAsInt("FIELDOPS_TEST_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt = %d, want the 7 fallback", got)
	}
}
