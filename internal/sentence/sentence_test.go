package sentence

import (
	"reflect"
	"testing"
)

func TestSplit_EmptyInput(t *testing.T) {
	if got := Split("   "); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "Do three sets.", []string{"Do three sets."}},
		{"no terminator", "Do three sets", []string{"Do three sets"}},
		{"mixed", "Warm up first. Then squat! Ready?", []string{"Warm up first.", "Then squat!", "Ready?"}},
		{"decimal", "Eat 1.5 cups of rice. Done.", []string{"Eat 1.5 cups of rice.", "Done."}},
		{"terminator run", "Really?! Yes... ok.", []string{"Really?!", "Yes...", "ok."}},
		{"newlines", "Line one\nLine two. Three.", []string{"Line one", "Line two.", "Three."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFirst(t *testing.T) {
	text := "One. Two. Three. Four."
	if got := First(text, 2); got != "One. Two." {
		t.Errorf("expected 'One. Two.', got %q", got)
	}
	if got := First("  Only one.  ", 2); got != "Only one." {
		t.Errorf("expected 'Only one.', got %q", got)
	}
}

func TestWords(t *testing.T) {
	if got := Words("  three  little\nwords "); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := Words(""); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
