package renamer

import "testing"

func TestNamer(t *testing.T) {
	var namer Namer
	names := make([]string, 60)
	for i := range names {
		names[i] = namer.Next()
	}

	expected := map[int]string{
		0:  "a",
		1:  "b",
		2:  "c",
		25: "z",
		26: "ab",
		27: "bb",
		51: "zb",
		52: "ac",
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("name %d: expected %q, got %q", i, name, names[i])
		}
	}
}

func TestNamerIsInjective(t *testing.T) {
	var namer Namer
	seen := make(map[string]int)
	for i := 0; i < 26*26*3; i++ {
		name := namer.Next()
		if prev, ok := seen[name]; ok {
			t.Fatalf("name %q returned twice, at %d and %d", name, prev, i)
		}
		seen[name] = i
	}
}
