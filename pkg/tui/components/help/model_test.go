package help

import (
	"strings"
	"testing"
)

func TestHelpRendersKeys(t *testing.T) {
	m := New(80, 40)
	content := m.Content()
	for _, want := range []string{"Call list", "Call detail", "drafts"} {
		if !strings.Contains(content, want) {
			t.Fatalf("help missing %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, "\x1b[") {
		t.Fatal("help content still carries escape codes")
	}
}

func TestHelpMinimumSize(t *testing.T) {
	m := New(0, 0)
	if m.width != 32 || m.height != 8 {
		t.Fatalf("expected 32x8, got %dx%d", m.width, m.height)
	}
}
