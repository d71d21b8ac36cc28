package heat

import (
	"errors"
	"math"
	"testing"
)

func TestMaxStableDt(t *testing.T) {
	tests := []struct {
		dim  Dim
		a    float64
		dx   float64
		want float64
	}{
		{Dim1, 110, 1, 0.5 / 110},
		{Dim2, 110, 1, 1.0 / 440},
		{Dim1, 10, 0.5, 0.5 * 0.25 / 10},
		{Dim2, 10, 0.5, 0.25 / 40},
	}

	for _, tt := range tests {
		if got := MaxStableDt(tt.dim, tt.a, tt.dx); math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("MaxStableDt(%s, %v, %v) = %v, want %v", tt.dim, tt.a, tt.dx, got, tt.want)
		}
	}
}

func TestCommonDt(t *testing.T) {
	dt := CommonDt(110, 1)
	if dt != MaxStableDt(Dim2, 110, 1) {
		t.Errorf("CommonDt = %v, want the 2d bound", dt)
	}
	if dt > MaxStableDt(Dim1, 110, 1) {
		t.Error("CommonDt exceeds the 1d bound")
	}
}

func TestCheckStable(t *testing.T) {
	limit := MaxStableDt(Dim1, 2, 1)
	if err := CheckStable(Dim1, 2, 1, limit); err != nil {
		t.Errorf("dt at the bound rejected: %v", err)
	}
	if err := CheckStable(Dim1, 2, 1, limit*1.01); !errors.Is(err, ErrInstabilityRisk) {
		t.Errorf("expected ErrInstabilityRisk, got %v", err)
	}
	if err := CheckStable(Dim2, 2, 1, limit); !errors.Is(err, ErrInstabilityRisk) {
		t.Errorf("1d bound should violate the 2d bound, got %v", err)
	}
}
