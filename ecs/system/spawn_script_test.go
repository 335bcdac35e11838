package system

import (
	"strings"
	"testing"
)

func sourceLoader(src string) scriptLoader {
	return func(string) ([]byte, error) { return []byte(src), nil }
}

func TestSpawnScriptOffset(t *testing.T) {
	script, err := compileSpawnScript("rail.tengo", sourceLoader("offset_x := index * 2\noffset_y := x + y"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	dx, dy, err := script.offset(3, 1.5, 2)
	if err != nil {
		t.Fatalf("offset: %v", err)
	}
	if dx != 6 || dy != 3.5 {
		t.Fatalf("expected (6,3.5), got (%v,%v)", dx, dy)
	}
}

func TestSpawnScriptUndefinedOffsetsAreZero(t *testing.T) {
	script, err := compileSpawnScript("noop.tengo", sourceLoader("unused := index"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	dx, dy, err := script.offset(1, 10, 10)
	if err != nil || dx != 0 || dy != 0 {
		t.Fatalf("expected zero offsets, got (%v,%v) err=%v", dx, dy, err)
	}
}

func TestSpawnScriptRuntimeFailuresReturnErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"division_by_zero", "offset_x := 1 / (index - index)"},
		{"runaway_loop", "for {}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			script, err := compileSpawnScript("bad.tengo", sourceLoader(tc.src))
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			_, _, err = script.offset(0, 0, 0)
			if err == nil {
				t.Fatalf("expected a run error")
			}
			if !strings.Contains(err.Error(), "bad.tengo") {
				t.Fatalf("expected the script name in %q", err)
			}

			// A failed run must not leave the compiled script locked.
			if _, _, err := script.offset(0, 0, 0); err == nil {
				t.Fatalf("expected the second run to fail the same way")
			}
		})
	}
}
