package usecase

import (
	"strings"
	"testing"
)

func TestBuildConstraintsFloor(t *testing.T) {
	got := BuildConstraints([]string{"a"})
	if len(got) != 1 {
		t.Fatalf("expected 1 constraint, got %d", len(got))
	}
	if got[0].MaxChars != FloorChars {
		t.Errorf("1-char fragment should get the floor: got %d, want %d", got[0].MaxChars, FloorChars)
	}
}

func TestBuildConstraintsBuffer(t *testing.T) {
	// 11 chars + 20 buffer = 31, still below the floor
	got := BuildConstraints([]string{"hello world"})
	if got[0].MaxChars != 140 {
		t.Errorf("got %d, want 140", got[0].MaxChars)
	}

	long := strings.Repeat("x", 200)
	got = BuildConstraints([]string{long})
	if got[0].MaxChars != 220 {
		t.Errorf("long fragment should get len+buffer: got %d, want 220", got[0].MaxChars)
	}
}

func TestBuildConstraintsCountCharactersNotBytes(t *testing.T) {
	// 150 characters, 300 bytes: budget derives from character count
	long := strings.Repeat("é", 150)
	got := BuildConstraints([]string{long})
	if got[0].MaxChars != 170 {
		t.Errorf("accented fragment should get chars+buffer: got %d, want 170", got[0].MaxChars)
	}
}

func TestBuildConstraintsEmpty(t *testing.T) {
	if got := BuildConstraints(nil); len(got) != 0 {
		t.Errorf("nil input should yield no constraints, got %d", len(got))
	}
}

func TestBuildConstraintsOnePerFragment(t *testing.T) {
	frags := []string{"one", "two", strings.Repeat("z", 150)}
	got := BuildConstraints(frags)
	if len(got) != len(frags) {
		t.Fatalf("got %d constraints for %d fragments", len(got), len(frags))
	}
	for i, c := range got {
		if c.MaxChars < len(frags[i]) {
			t.Errorf("constraint %d tighter than its fragment: %d < %d", i, c.MaxChars, len(frags[i]))
		}
		if c.MaxChars < FloorChars {
			t.Errorf("constraint %d below floor: %d", i, c.MaxChars)
		}
	}
}
