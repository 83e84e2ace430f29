package unsafehelpers

import "unsafe"

import "testing"

func TestAddrAndLess(t *testing.T) {
	a, b := 1, 2
	pa, pb := unsafe.Pointer(&a), unsafe.Pointer(&b)

	if Addr(pa) == 0 {
		t.Error("Addr of a live variable should not be zero")
	}

	// Whichever of pa/pb sits lower in memory, Less must agree with Addr.
	want := Addr(pa) < Addr(pb)
	if Less(pa, pb) != want {
		t.Errorf("Less(%v, %v) = %v, want %v", pa, pb, Less(pa, pb), want)
	}
	if Less(pa, pa) {
		t.Error("Less(p, p) must be false")
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	cases := map[uint32]bool{
		0: false, 1: true, 2: true, 3: false,
		4: true, 5: false, 1024: true, 1023: false,
	}
	for x, want := range cases {
		if got := IsPowerOfTwo(x); got != want {
			t.Errorf("IsPowerOfTwo(%d) = %v, want %v", x, got, want)
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[uint32]uint32{
		0: 2, 1: 2, 2: 2, 3: 4, 4: 4, 5: 8, 9: 16, 16: 16, 17: 32,
	}
	for x, want := range cases {
		if got := NextPowerOfTwo(x); got != want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestAlignUp(t *testing.T) {
	if got := AlignUp(5, 4); got != 8 {
		t.Errorf("AlignUp(5, 4) = %d, want 8", got)
	}
	if got := AlignUp(8, 4); got != 8 {
		t.Errorf("AlignUp(8, 4) = %d, want 8", got)
	}
	if got := AlignUp(0, 8); got != 0 {
		t.Errorf("AlignUp(0, 8) = %d, want 0", got)
	}
}
