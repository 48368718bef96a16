package locations

import (
	"math"
	"testing"
)

func TestHaversineMZeroDistance(t *testing.T) {
	if d := HaversineM(35.681236, 139.767125, 35.681236, 139.767125); d != 0 {
		t.Errorf("same point distance = %v", d)
	}
}

func TestHaversineMOneDegreeAtEquator(t *testing.T) {
	// 赤道上の経度1度 ≒ 111.195km
	d := HaversineM(0, 0, 0, 1)
	if math.Abs(d-111195) > 100 {
		t.Errorf("distance = %v, want ~111195m", d)
	}
}

func TestHaversineMSymmetry(t *testing.T) {
	a := HaversineM(35.681236, 139.767125, 34.702485, 135.495951)
	b := HaversineM(34.702485, 135.495951, 35.681236, 139.767125)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("not symmetric: %v vs %v", a, b)
	}
	// 東京〜大阪はざっくり400km前後
	if a < 380000 || a > 420000 {
		t.Errorf("Tokyo-Osaka distance = %v", a)
	}
}

func TestValidCoords(t *testing.T) {
	cases := []struct {
		lat, lng float64
		want     bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{90.1, 0, false},
		{0, 180.1, false},
		{-91, 0, false},
	}
	for _, tc := range cases {
		if got := validCoords(tc.lat, tc.lng); got != tc.want {
			t.Errorf("validCoords(%v, %v) = %v", tc.lat, tc.lng, got)
		}
	}
}

func TestTransitionGuards(t *testing.T) {
	if !canReview(StatusPending) {
		t.Error("pending should be reviewable")
	}
	for _, st := range []string{StatusApproved, StatusRejected, StatusRevoked} {
		if canReview(st) {
			t.Errorf("%s should not be reviewable", st)
		}
	}
	if !canRevoke(StatusApproved) {
		t.Error("approved should be revocable")
	}
	for _, st := range []string{StatusPending, StatusRejected, StatusRevoked} {
		if canRevoke(st) {
			t.Errorf("%s should not be revocable", st)
		}
	}
}
