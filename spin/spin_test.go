package spin

import "testing"

func TestValid(t *testing.T) {
	if !Valid(Configuration{1, -1, 1, -1}) {
		t.Fatal("expected all-unit configuration to be valid")
	}
	if Valid(Configuration{1, 0, -1}) {
		t.Fatal("expected zero entry to be invalid")
	}
	if Valid(Configuration{2, -1}) {
		t.Fatal("expected entry outside {-1,+1} to be invalid")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := Configuration{1, 1, -1}
	c := Clone(s)
	c[0] = -1
	if s[0] != 1 {
		t.Fatal("mutating the clone must not affect the original")
	}
}

func TestFlip(t *testing.T) {
	s := Configuration{1, 1, -1}
	f := Flip(s, 1)
	if f[1] != -1 || s[1] != 1 {
		t.Fatal("Flip must invert only the target site and leave s untouched")
	}
}

func TestHamming(t *testing.T) {
	a := Configuration{1, 1, 1, -1}
	b := Configuration{1, -1, 1, 1}
	if got := Hamming(a, b); got != 2 {
		t.Fatalf("Hamming(a,b) = %d, want 2", got)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	s := Configuration{1, -1, -1, 1}
	x := ToBinary(s)
	want := []int8{1, 0, 0, 1}
	for i := range want {
		if x[i] != want[i] {
			t.Fatalf("ToBinary()[%d] = %d, want %d", i, x[i], want[i])
		}
	}
	back := FromBinary(x)
	for i := range s {
		if back[i] != s[i] {
			t.Fatalf("FromBinary(ToBinary(s))[%d] = %d, want %d", i, back[i], s[i])
		}
	}
}
