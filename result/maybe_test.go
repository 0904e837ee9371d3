package result

import (
	"errors"
	"testing"
)

func TestMaybe(t *testing.T) {
	t.Run("Some holds the value", func(t *testing.T) {
		v, ok := Some("x").Get()
		if !ok || v != "x" {
			t.Fatalf("expected x, got %q (%v)", v, ok)
		}
	})

	t.Run("None is empty", func(t *testing.T) {
		m := None[int]()
		if m.HasValue() {
			t.Fatal("expected no value")
		}
		if m.Pointer() != nil {
			t.Fatal("expected nil pointer")
		}
	})

	t.Run("FromPointer", func(t *testing.T) {
		s := "mail"
		if !FromPointer(&s).HasValue() {
			t.Fatal("expected value from non-nil pointer")
		}
		if FromPointer[string](nil).HasValue() {
			t.Fatal("expected absence from nil pointer")
		}
	})

	t.Run("Pointer copies the value", func(t *testing.T) {
		m := Some(3)
		p := m.Pointer()
		*p = 4
		if v, _ := m.Get(); v != 3 {
			t.Fatalf("maybe mutated through pointer: %d", v)
		}
	})

	t.Run("MapMaybe", func(t *testing.T) {
		double := func(v int) int { return v * 2 }
		if v, _ := MapMaybe(Some(2), double).Get(); v != 4 {
			t.Fatalf("expected 4, got %d", v)
		}
		if MapMaybe(None[int](), double).HasValue() {
			t.Fatal("expected absence to be kept")
		}
	})
}

func TestToResult(t *testing.T) {
	missing := errors.New("missing")

	if v, err := ToResult(Some(9), missing).Unwrap(); err != nil || v != 9 {
		t.Fatalf("expected 9, got %d (%v)", v, err)
	}
	if err := ToResult(None[int](), missing).Err(); !errors.Is(err, missing) {
		t.Fatalf("expected missing error, got %v", err)
	}
}
