// pkg/ballvector/matrix_test.go
package ballvector

import "testing"

func TestNewFromRows(t *testing.T) {
	m, err := New([][]float64{{0.1, 0.2, 0.3}, {1, 2, 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.N() != 2 || m.D() != 3 {
		t.Fatalf("expected shape (2,3), got (%d,%d)", m.N(), m.D())
	}
	if m.Row(0)[0] != 0.1 {
		t.Errorf("expected 0.1, got %f", m.Row(0)[0])
	}
	if m.Row(1)[2] != 3 {
		t.Errorf("expected 3, got %f", m.Row(1)[2])
	}
}

func TestNewRejectsRaggedRows(t *testing.T) {
	_, err := New([][]float64{{1, 2}, {1, 2, 3}})
	if err == nil {
		t.Fatal("expected an error for ragged rows")
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected an error for empty input")
	}
	if _, err := New([][]float64{{}}); err == nil {
		t.Fatal("expected an error for zero-width rows")
	}
}

func TestNewFlatBorrowsBuffer(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6}
	m, err := NewFlat(buf, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buf[3] = 99
	if m.Row(1)[0] != 99 {
		t.Error("NewFlat should borrow the buffer, not copy it")
	}
}

func TestNewFlatRejectsLengthMismatch(t *testing.T) {
	if _, err := NewFlat([]float64{1, 2, 3}, 2, 2); err == nil {
		t.Fatal("expected a length mismatch error")
	}
}

func TestMatrixToFromBytes(t *testing.T) {
	original, err := New([][]float64{{1.5, 2.5}, {3.5, 4.5}, {-1, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	restored, err := FromBytes(original.ToBytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.N() != original.N() || restored.D() != original.D() {
		t.Fatalf("shape mismatch: got (%d,%d), want (%d,%d)", restored.N(), restored.D(), original.N(), original.D())
	}
	for i := 0; i < original.N(); i++ {
		for j := 0; j < original.D(); j++ {
			if restored.Row(i)[j] != original.Row(i)[j] {
				t.Errorf("value mismatch at (%d,%d): got %f, want %f", i, j, restored.Row(i)[j], original.Row(i)[j])
			}
		}
	}
}

func TestFromBytesRejectsTruncated(t *testing.T) {
	if _, err := FromBytes([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for too-short input")
	}
}
