package tensor

import (
	"errors"
	"math"
	"testing"
)

// Test helpers

func assertEqualFloat32(t *testing.T, expected, actual float32, msg string) {
	t.Helper()
	if math.Abs(float64(expected-actual)) > 1e-6 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func TestNewTensor(t *testing.T) {
	tt, err := New(MustShape(2, 3, 4))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if tt.NumElements() != 24 {
		t.Errorf("NumElements() = %d, want 24", tt.NumElements())
	}
	for i, v := range tt.Data() {
		if v != 0 {
			t.Fatalf("element %d = %v, want zero-initialized", i, v)
		}
	}
	if !tt.Shape().Equal(MustShape(2, 3, 4)) {
		t.Errorf("Shape() = %s, want [2 x 3 x 4]", tt.Shape())
	}
}

func TestNewTensorOverflow(t *testing.T) {
	_, err := New(MustShape(math.MaxInt, 2))
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("New error = %v, want ErrOverflow", err)
	}
}

func TestTensorReadWrite(t *testing.T) {
	tt, err := New(MustShape(2, 2))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i := 0; i < tt.NumElements(); i++ {
		tt.Set(i, float32(i)*1.5)
	}

	assertEqualFloat32(t, 0.0, tt.At(0), "t[0]")
	assertEqualFloat32(t, 1.5, tt.At(1), "t[1]")
	assertEqualFloat32(t, 3.0, tt.At(2), "t[2]")
	assertEqualFloat32(t, 4.5, tt.At(3), "t[3]")

	tt.Data()[3] = 9
	assertEqualFloat32(t, 9, tt.At(3), "write through Data()")
}

func TestTensorMovePreservesData(t *testing.T) {
	src, err := FromSlice(MustShape(3), []float32{42, 43, 44})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	// Ownership moves with the pointer.
	moved := src

	if moved.NumElements() != 3 {
		t.Errorf("moved tensor NumElements() = %d, want 3", moved.NumElements())
	}
	assertEqualFloat32(t, 42, moved.At(0), "moved[0]")
	assertEqualFloat32(t, 44, moved.At(2), "moved[2]")
}

func TestFromSliceLengthMismatch(t *testing.T) {
	if _, err := FromSlice(MustShape(4), []float32{1, 2, 3}); err == nil {
		t.Error("FromSlice with 3 values for [4] should fail")
	}
}

func TestTensorsDoNotAlias(t *testing.T) {
	s := MustShape(2)
	a, _ := New(s)
	b, _ := New(s)
	a.Set(0, 1)
	if b.At(0) != 0 {
		t.Error("tensors allocated from the same shape share a buffer")
	}
}
