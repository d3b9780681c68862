package envutil

import (
	"testing"
	"time"
)

func TestStr(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STR", "value")
	if got := Str("ENVUTIL_TEST_STR", "fallback"); got != "value" {
		t.Fatalf("want=%q got=%q", "value", got)
	}
	if got := Str("ENVUTIL_TEST_STR_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("want=%q got=%q", "fallback", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "42")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 42 {
		t.Fatalf("want=42 got=%d", got)
	}
	if got := Int("ENVUTIL_TEST_INT_MISSING", 7); got != 7 {
		t.Fatalf("want=7 got=%d", got)
	}
	t.Setenv("ENVUTIL_TEST_INT_BAD", "not-a-number")
	if got := Int("ENVUTIL_TEST_INT_BAD", 7); got != 7 {
		t.Fatalf("bad value: want=7 got=%d", got)
	}
}

func TestSeconds(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_SECONDS", "30")
	if got := Seconds("ENVUTIL_TEST_SECONDS", 5*time.Second); got != 30*time.Second {
		t.Fatalf("want=30s got=%v", got)
	}
	if got := Seconds("ENVUTIL_TEST_SECONDS_MISSING", 5*time.Second); got != 5*time.Second {
		t.Fatalf("want=5s got=%v", got)
	}
}
