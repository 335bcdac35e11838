package levels

import "testing"

func TestLoadDefaultLevel(t *testing.T) {
	for _, name := range []string{"", "tutorial", "tutorial.json"} {
		lvl, err := LoadLevelFromFS(name)
		if err != nil {
			t.Fatalf("load %q: %v", name, err)
		}
		if lvl.Width <= 0 || lvl.Height <= 0 || len(lvl.Entities) == 0 {
			t.Fatalf("load %q: unexpected level %+v", name, lvl)
		}
	}
}

func TestParseLevelRejectsMissingPrefab(t *testing.T) {
	if _, err := ParseLevel([]byte(`{"entities":[{"x":1}]}`)); err == nil {
		t.Fatalf("expected error for placement without prefab")
	}
	if _, err := ParseLevel([]byte(`{`)); err == nil {
		t.Fatalf("expected error for malformed json")
	}
}
