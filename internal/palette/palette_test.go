package palette

import (
	"image/color"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"known name", "red", "red"},
		{"alias kept", "critical", "critical"},
		{"uppercase name", "Blue", "blue"},
		{"whitespace", "  green  ", "green"},
		{"hex to base name", "#C00000", "red"},
		{"lowercase hex", "#ffc000", "gold"},
		{"teal hex", "#154747", "teal"},
		{"unknown hex kept", "#123456", "#123456"},
		{"unknown name falls back", "magenta", DefaultColor},
		{"empty falls back", "", DefaultColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.value); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestEquivalent(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"red", "red", true},
		{"red", "critical", true},
		{"critical", "red", true},
		{"gold", "warning", true},
		{"gold", "yellow", true},
		{"yellow", "warning", true},
		{"teal", "primary", true},
		{"Gold", "WARNING", true},
		{"gold", "green", false},
		{"red", "blue", false},
		{"purple", "orange", false},
	}
	for _, tt := range tests {
		if got := Equivalent(tt.a, tt.b); got != tt.want {
			t.Errorf("Equivalent(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#C00000")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	if c != (color.RGBA{R: 192, A: 255}) {
		t.Errorf("ParseHex(#C00000) = %v", c)
	}

	// Missing '#' is tolerated.
	c, err = ParseHex("2E74B5")
	if err != nil {
		t.Fatalf("ParseHex without hash failed: %v", err)
	}
	if c != (color.RGBA{R: 0x2E, G: 0x74, B: 0xB5, A: 255}) {
		t.Errorf("ParseHex(2E74B5) = %v", c)
	}

	if _, err := ParseHex(""); err == nil {
		t.Error("expected error for empty string")
	}
	if _, err := ParseHex("#XYZ123"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve("red"); got != (color.RGBA{R: 192, A: 255}) {
		t.Errorf("Resolve(red) = %v", got)
	}
	if got := Resolve("#548235"); got != (color.RGBA{R: 0x54, G: 0x82, B: 0x35, A: 255}) {
		t.Errorf("Resolve(hex) = %v", got)
	}
	// Unknown values render as the default teal.
	want, _ := ParseHex(Colors[DefaultColor])
	if got := Resolve("no-such-color"); got != want {
		t.Errorf("Resolve(unknown) = %v, want %v", got, want)
	}
}

func TestContrastText(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}

	if got := ContrastText(color.RGBA{R: 21, G: 71, B: 71, A: 255}); got != white {
		t.Errorf("dark teal background should get white text, got %v", got)
	}
	if got := ContrastText(color.RGBA{R: 255, G: 192, B: 0, A: 255}); got != black {
		t.Errorf("gold background should get black text, got %v", got)
	}
}

func TestManagerAssign_Memoized(t *testing.T) {
	m := NewManager()

	first := m.Assign("fig1_1", "info", "Click Save")
	again := m.Assign("fig1_1", "critical", "different text")

	if first.Name != "info" {
		t.Fatalf("suggested color not honored: got %q", first.Name)
	}
	if again != first {
		t.Errorf("repeat lookup changed assignment: %+v vs %+v", again, first)
	}
}

func TestManagerAssign_RoundRobin(t *testing.T) {
	m := NewManager()

	var names []string
	for i := 0; i < len(Allocation)+2; i++ {
		a := m.Assign(string(rune('a'+i)), "", "")
		names = append(names, a.Name)
	}

	for i, name := range names {
		want := Allocation[i%len(Allocation)].Name
		if name != want {
			t.Errorf("allocation %d = %q, want %q", i, name, want)
		}
	}
}

func TestManagerAssign_SuggestionDoesNotAdvanceRoundRobin(t *testing.T) {
	m := NewManager()

	m.Assign("suggested", "purple", "")
	next := m.Assign("unsuggested", "", "")

	if next.Name != Allocation[0].Name {
		t.Errorf("round-robin advanced by suggestion: got %q, want %q", next.Name, Allocation[0].Name)
	}
}

func TestManagerLegendEntries(t *testing.T) {
	m := NewManager()
	m.Assign("a", "critical", "Open the menu")
	m.Assign("b", "info", "Select account")

	entries := m.LegendEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Number != 1 || entries[0].Text != "Open the menu" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Number != 2 || entries[1].Hex != "#2E74B5" {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestManagerReset(t *testing.T) {
	m := NewManager()
	m.Assign("a", "", "")
	m.Reset()

	if _, ok := m.Color("a"); ok {
		t.Error("assignment survived Reset")
	}
	// Round-robin restarts from the first entry.
	if a := m.Assign("b", "", ""); a.Name != Allocation[0].Name {
		t.Errorf("after reset got %q, want %q", a.Name, Allocation[0].Name)
	}
}
