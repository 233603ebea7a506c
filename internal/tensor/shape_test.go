package tensor

import (
	"errors"
	"math"
	"testing"
)

func TestNewShape(t *testing.T) {
	s, err := NewShape(2, 3, 4)
	if err != nil {
		t.Fatalf("NewShape(2, 3, 4) failed: %v", err)
	}
	if s.Rank() != 3 {
		t.Errorf("Rank() = %d, want 3", s.Rank())
	}
	n, err := s.NumElements()
	if err != nil {
		t.Fatalf("NumElements() failed: %v", err)
	}
	if n != 24 {
		t.Errorf("NumElements() = %d, want 24", n)
	}
}

func TestNewShapeInvalid(t *testing.T) {
	tests := []struct {
		name string
		dims []int
	}{
		{"empty", nil},
		{"zero dimension", []int{2, 0, 3}},
		{"negative dimension", []int{-1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShape(tt.dims...)
			if !errors.Is(err, ErrInvalidShape) {
				t.Errorf("NewShape(%v) error = %v, want ErrInvalidShape", tt.dims, err)
			}
		})
	}
}

func TestShapeNumElementsOverflow(t *testing.T) {
	// Construction succeeds; overflow is only detected when the count is requested.
	s, err := NewShape(math.MaxInt, 2)
	if err != nil {
		t.Fatalf("NewShape(MaxInt, 2) failed: %v", err)
	}

	_, err = s.NumElements()
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("NumElements() error = %v, want ErrOverflow", err)
	}
	if errors.Is(err, ErrInvalidShape) {
		t.Error("overflow must be distinct from ErrInvalidShape")
	}
}

func TestShapeNumElementsAtLimit(t *testing.T) {
	s := MustShape(math.MaxInt, 1)
	n, err := s.NumElements()
	if err != nil {
		t.Fatalf("NumElements() failed: %v", err)
	}
	if n != math.MaxInt {
		t.Errorf("NumElements() = %d, want MaxInt", n)
	}
}

func TestShapeZeroValue(t *testing.T) {
	var s Shape
	if s.IsValid() {
		t.Error("zero Shape should not be valid")
	}
	if _, err := s.NumElements(); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("NumElements() on zero Shape error = %v, want ErrInvalidShape", err)
	}
}

func TestShapeImmutable(t *testing.T) {
	dims := []int{2, 3}
	s := MustShape(dims...)
	dims[0] = 99

	got := s.Dims()
	got[1] = 42

	if s.Dim(0) != 2 || s.Dim(1) != 3 {
		t.Errorf("shape mutated through caller slices: %s", s)
	}
}

func TestShapeEqual(t *testing.T) {
	tests := []struct {
		a, b Shape
		want bool
	}{
		{MustShape(2, 3), MustShape(2, 3), true},
		{MustShape(2, 3), MustShape(3, 2), false},
		{MustShape(6), MustShape(2, 3), false},
	}

	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%s.Equal(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestShapeString(t *testing.T) {
	if got := MustShape(2, 3, 4).String(); got != "[2 x 3 x 4]" {
		t.Errorf("String() = %q, want %q", got, "[2 x 3 x 4]")
	}
	if got := MustShape(7).String(); got != "[7]" {
		t.Errorf("String() = %q, want %q", got, "[7]")
	}
}
