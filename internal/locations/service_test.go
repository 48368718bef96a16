package locations

import (
	"context"
	"testing"
	"time"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// SQL側と同じ規則を持つインメモリストア。
// Transition は期待ステータス一致時のみ更新し、note は nil なら既存値を残す
type fakeRequestStore struct {
	reqs map[string]*AccessRequest
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{reqs: map[string]*AccessRequest{}}
}

func (f *fakeRequestStore) Insert(_ context.Context, r *AccessRequest) error {
	cp := *r
	f.reqs[r.RequestUUID] = &cp
	return nil
}

func (f *fakeRequestStore) GetByUUID(_ context.Context, orgUUID, requestUUID string) (*AccessRequest, error) {
	r, ok := f.reqs[requestUUID]
	if !ok || r.OrgUUID != orgUUID {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequestStore) List(_ context.Context, orgUUID string, fl ListFilter) ([]AccessRequest, error) {
	var out []AccessRequest
	for _, r := range f.reqs {
		if r.OrgUUID != orgUUID {
			continue
		}
		if fl.Status != nil && *fl.Status != "" && r.Status != *fl.Status {
			continue
		}
		if fl.MemberID != nil && *fl.MemberID != "" && r.MemberID != *fl.MemberID {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRequestStore) ApprovedFences(ctx context.Context, orgUUID, memberID string) ([]AccessRequest, error) {
	st := StatusApproved
	return f.List(ctx, orgUUID, ListFilter{Status: &st, MemberID: &memberID})
}

func (f *fakeRequestStore) Transition(_ context.Context, orgUUID, requestUUID, fromStatus, toStatus, reviewedBy string, note *string, at time.Time) (int64, error) {
	r, ok := f.reqs[requestUUID]
	if !ok || r.OrgUUID != orgUUID || r.Status != fromStatus {
		return 0, nil
	}
	r.Status = toStatus
	r.ReviewedBy = &reviewedBy
	r.ReviewedAt = &at
	if note != nil {
		r.Note = note
	}
	return 1, nil
}

func newTestService(store RequestStore) *Service {
	return &Service{
		store: store,
		clock: fixedClock{t: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)},
	}
}

func submitPending(t *testing.T, svc *Service, org string) *AccessRequest {
	t.Helper()
	r, err := svc.Submit(context.Background(), org, SubmitRequest{
		MemberID: "m-1",
		Label:    "HQ",
		Lat:      35.681236,
		Lng:      139.767125,
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestReviewPersistsNote(t *testing.T) {
	svc := newTestService(newFakeRequestStore())
	ctx := context.Background()
	r := submitPending(t, svc, "org-1")

	note := "approved with a wider radius for the annex"
	got, err := svc.Review(ctx, "org-1", r.RequestUUID, "admin-1", ReviewRequest{Approve: true, Note: &note})
	if err != nil {
		t.Fatal(err)
	}
	if got.Note == nil || *got.Note != note {
		t.Errorf("review response note = %v", got.Note)
	}

	// 応答だけでなく、再取得しても審査メモが残っていること
	stored, err := svc.Get(ctx, "org-1", r.RequestUUID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != StatusApproved {
		t.Errorf("status = %q, want approved", stored.Status)
	}
	if stored.Note == nil || *stored.Note != note {
		t.Errorf("stored note = %v, want %q", stored.Note, note)
	}
	if stored.ReviewedBy == nil || *stored.ReviewedBy != "admin-1" {
		t.Errorf("reviewed_by = %v", stored.ReviewedBy)
	}
}

func TestRevokeKeepsReviewNote(t *testing.T) {
	svc := newTestService(newFakeRequestStore())
	ctx := context.Background()
	r := submitPending(t, svc, "org-1")

	note := "temporary approval"
	if _, err := svc.Review(ctx, "org-1", r.RequestUUID, "admin-1", ReviewRequest{Approve: true, Note: &note}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Revoke(ctx, "org-1", r.RequestUUID, "admin-2"); err != nil {
		t.Fatal(err)
	}

	stored, err := svc.Get(ctx, "org-1", r.RequestUUID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != StatusRevoked {
		t.Errorf("status = %q, want revoked", stored.Status)
	}
	if stored.Note == nil || *stored.Note != note {
		t.Errorf("note lost on revoke: %v", stored.Note)
	}
}

func TestReviewConflictWhenNotPending(t *testing.T) {
	svc := newTestService(newFakeRequestStore())
	ctx := context.Background()
	r := submitPending(t, svc, "org-1")

	if _, err := svc.Review(ctx, "org-1", r.RequestUUID, "admin-1", ReviewRequest{Approve: true}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Review(ctx, "org-1", r.RequestUUID, "admin-2", ReviewRequest{Approve: false})
	if err == nil {
		t.Fatal("second review should conflict")
	}
	if got := ToHTTPStatus(err); got != 409 {
		t.Errorf("status = %d, want 409", got)
	}
}
