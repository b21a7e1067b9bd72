package snake

import "testing"

func TestValidateNote(t *testing.T) {
	if err := ValidateNote("  "); err == nil {
		t.Fatal("expected blank note to be rejected")
	}
	if err := ValidateNote("call back"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
