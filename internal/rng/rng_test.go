package rng

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Range(-10, 10), b.Range(-10, 10); x != y {
			t.Fatalf("step %d: %v != %v", i, x, y)
		}
	}
}

func TestRangeBounds(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		v := r.Range(3, 6)
		if v < 3 || v >= 6 {
			t.Fatalf("Range(3, 6) = %v", v)
		}
	}
	if got := r.Range(5, 5); got != 5 {
		t.Errorf("Range(5, 5) = %v, want 5", got)
	}
}

func TestIntN(t *testing.T) {
	r := New(1)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := r.IntN(4)
		if v < 0 || v >= 4 {
			t.Fatalf("IntN(4) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 4 {
		t.Errorf("IntN(4) should reach every value, saw %v", seen)
	}
	if r.IntN(0) != 0 {
		t.Error("IntN(0) should be 0")
	}
}
