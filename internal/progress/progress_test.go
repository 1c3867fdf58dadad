package progress

import "testing"

func TestBarIsSafeWhenNonInteractive(t *testing.T) {
	// Test processes never have a terminal on stderr, so this exercises
	// the no-op path end to end.
	b := NewBar("Analyze", 3)
	b.Add1()
	b.Add1()
	b.Add1()
	b.Finish()
}

func TestZeroTotalBar(t *testing.T) {
	b := NewBar("Correct", 0)
	b.Finish()
}
