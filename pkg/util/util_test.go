package util

import (
	"errors"
	"math"
	"testing"
)

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("disk exploded")
	err := WrapErrorf(orig, ErrInternalServerError, "load snapshot %s", "x.graph")

	var domainErr *Error
	if !errors.As(err, &domainErr) {
		t.Fatal("not a *Error")
	}
	if !errors.Is(domainErr.Code(), ErrInternalServerError) {
		t.Errorf("code = %v", domainErr.Code())
	}
	if !errors.Is(err, orig) {
		t.Error("original error lost")
	}
	if err.Error() != "load snapshot x.graph" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestReverseG(t *testing.T) {
	in := []int32{1, 2, 3, 4}
	out := ReverseG(in)

	for i, want := range []int32{4, 3, 2, 1} {
		if out[i] != want {
			t.Fatalf("out = %v", out)
		}
	}
	// input untouched
	if in[0] != 1 {
		t.Error("ReverseG mutated its input")
	}
}

func TestDegreeRadianRoundtrip(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, 180, -101.6869} {
		if got := RadiansToDegree(DegreeToRadians(deg)); math.Abs(got-deg) > 1e-12 {
			t.Errorf("roundtrip(%f) = %f", deg, got)
		}
	}
}

func TestStringToFloat64(t *testing.T) {
	if v, err := StringToFloat64("3.1390"); err != nil || v != 3.1390 {
		t.Errorf("got %f, %v", v, err)
	}
	if _, err := StringToFloat64("-"); err == nil {
		t.Error("expected error for -")
	}
}

func TestRoundFloat(t *testing.T) {
	if got := RoundFloat(3.14159, 2); got != 3.14 {
		t.Errorf("got %f", got)
	}
}
