package clipboard

import "testing"

func TestLookupCommandConsistency(t *testing.T) {
	// Availability depends on the host; just check the two entry points agree.
	if IsAvailable() != (lookupCommand() != nil) {
		t.Error("IsAvailable disagrees with lookupCommand")
	}
}

func TestCopy(t *testing.T) {
	if !IsAvailable() {
		t.Skip("clipboard not available on this system")
	}

	if err := Copy("[1] Smith, J. Title. 2020."); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if err := Copy(""); err != nil {
		t.Fatalf("Copy of empty string failed: %v", err)
	}
}
