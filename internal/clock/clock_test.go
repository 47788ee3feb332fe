package clock

import "testing"

func TestNowMsIsNonNegativeAndMonotonic(t *testing.T) {
	c := NewSystem()
	a := c.NowMs()
	b := c.NowMs()
	if a < 0 {
		t.Fatalf("NowMs returned negative value %v", a)
	}
	if b < a {
		t.Fatalf("NowMs went backwards: %v then %v", a, b)
	}
}
