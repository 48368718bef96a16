package attendance

import (
	"testing"
	"time"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeElapsedZeroFallback(t *testing.T) {
	now := ts("2024-03-10T12:00:00Z")
	in := ts("2024-03-10T09:00:00Z")
	before := ts("2024-03-10T08:00:00Z")
	var zero time.Time

	cases := []struct {
		name     string
		checkIn  *time.Time
		checkOut *time.Time
	}{
		{"nil check-in", nil, nil},
		{"zero check-in", &zero, nil},
		{"check-out before check-in", &in, &before},
		{"check-out equals check-in", &in, &in},
		{"zero check-out", &in, &zero},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeElapsed(tc.checkIn, tc.checkOut, now)
			if got != zeroElapsed {
				t.Errorf("got %+v, want zero duration", got)
			}
			if got.Label != "00:00:00" {
				t.Errorf("label = %q", got.Label)
			}
		})
	}
}

func TestComputeElapsedBasic(t *testing.T) {
	in := ts("2024-03-10T09:00:00Z")
	out := ts("2024-03-10T10:30:25Z")
	got := ComputeElapsed(&in, &out, ts("2024-03-10T23:00:00Z"))
	if got.TotalSeconds != 5425 {
		t.Fatalf("TotalSeconds = %d, want 5425", got.TotalSeconds)
	}
	if got.Label != "01:30:25" {
		t.Errorf("Label = %q, want 01:30:25", got.Label)
	}
	if got.Hours != 1.51 {
		t.Errorf("Hours = %v, want 1.51", got.Hours)
	}
}

func TestFormatHoursToHMSConsistency(t *testing.T) {
	// 同じ秒数なら ComputeElapsed の Label とバイト一致すること
	for _, secs := range []int64{0, 1, 59, 60, 3599, 3600, 5425, 30625, 86400, 90061} {
		in := ts("2024-03-10T00:00:00Z")
		out := in.Add(time.Duration(secs) * time.Second)
		el := ComputeElapsed(&in, &out, out)

		want := el.Label
		if secs == 0 {
			want = "00:00:00"
		}
		if got := FormatHoursToHMS(float64(secs) / 3600); got != want {
			t.Errorf("FormatHoursToHMS(%d/3600) = %q, want %q", secs, got, want)
		}
	}
}

func TestFormatHoursToHMSOver24h(t *testing.T) {
	// 経過時間なので24時間で繰り上げない
	if got := FormatHoursToHMS(25.0); got != "25:00:00" {
		t.Errorf("got %q, want 25:00:00", got)
	}
}

func TestFormatHoursToHMSInvalid(t *testing.T) {
	for _, h := range []float64{-1, 0} {
		if got := FormatHoursToHMS(h); got != "00:00:00" {
			t.Errorf("FormatHoursToHMS(%v) = %q", h, got)
		}
	}
}

func TestComputeElapsedMonotonicWhileOpen(t *testing.T) {
	in := ts("2024-03-10T09:00:00Z")
	prev := int64(-1)
	for k := 0; k <= 120; k += 7 {
		now := in.Add(time.Duration(k) * time.Second)
		got := ComputeElapsed(&in, nil, now)
		if got.TotalSeconds < prev {
			t.Fatalf("TotalSeconds decreased: %d -> %d at k=%d", prev, got.TotalSeconds, k)
		}
		prev = got.TotalSeconds
	}
}

func TestComputeElapsedFreezesOnCheckOut(t *testing.T) {
	in := ts("2024-03-10T09:00:00Z")
	out := ts("2024-03-10T17:00:00Z")
	want := ComputeElapsed(&in, &out, out)
	for _, now := range []time.Time{out, out.Add(time.Hour), out.Add(240 * time.Hour)} {
		if got := ComputeElapsed(&in, &out, now); got != want {
			t.Errorf("not frozen at now=%v: got %+v want %+v", now, got, want)
		}
	}
}

func TestComputeElapsedTickingScenario(t *testing.T) {
	// 09:00:00 出勤、1秒刻みで進み 17:30:25 まで
	in := ts("2024-03-10T09:00:00Z")

	if got := ComputeElapsed(&in, nil, in.Add(1*time.Second)); got.Label != "00:00:01" {
		t.Errorf("tick1 label = %q", got.Label)
	}
	if got := ComputeElapsed(&in, nil, in.Add(2*time.Second)); got.Label != "00:00:02" {
		t.Errorf("tick2 label = %q", got.Label)
	}

	final := ComputeElapsed(&in, nil, ts("2024-03-10T17:30:25Z"))
	if final.Label != "08:30:25" {
		t.Errorf("final label = %q, want 08:30:25", final.Label)
	}
	if final.Hours != 8.51 {
		t.Errorf("final hours = %v, want 8.51", final.Hours)
	}
}
