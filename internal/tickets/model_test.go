package tickets

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusOpen, StatusPending, true},
		{StatusOpen, StatusClosed, true},
		{StatusPending, StatusOpen, true},
		{StatusPending, StatusClosed, true},
		{StatusClosed, StatusOpen, true}, // 再オープン
		{StatusClosed, StatusPending, false},
		{StatusClosed, StatusClosed, false},
		{StatusOpen, StatusOpen, false},
		{"unknown", StatusOpen, false},
		{StatusOpen, "unknown", false},
	}
	for _, tc := range cases {
		if got := canTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("canTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NewInvalidArgumentError("x"), 400},
		{NewNotFoundError("x"), 404},
		{NewConflictError("x"), 409},
		{NewInvalidTransitionError(StatusClosed, StatusPending), 409},
	}
	for _, tc := range cases {
		if got := ToHTTPStatus(tc.err); got != tc.want {
			t.Errorf("ToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
