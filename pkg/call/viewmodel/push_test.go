package viewmodel

import (
	"testing"
)

func TestPushUnknownCallIsIgnored(t *testing.T) {
	s, _ := sampleStore(t, 10)
	before := s.Snapshot()

	if err := s.ApplyPush([]byte(`{"id":"call-999","is_archived":true}`)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	after := s.Snapshot()
	if !sameIDs(before.Calls, after.Calls) {
		t.Fatalf("unknown push changed the page: %v", ids(after.Calls))
	}
	for i := range before.Calls {
		if before.Calls[i].IsArchived != after.Calls[i].IsArchived {
			t.Fatalf("unknown push changed %s", before.Calls[i].ID)
		}
	}
}

func TestPushKnownCallOverwritesInPlace(t *testing.T) {
	s, _ := sampleStore(t, 10)
	before := s.Snapshot()

	if err := s.ApplyPush([]byte(`{"id":"call-004","is_archived":true,"duration":999}`)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	after := s.Snapshot()
	if !sameIDs(before.Calls, after.Calls) {
		t.Fatalf("push moved calls: %v", ids(after.Calls))
	}
	got := after.Calls[3]
	if got.ID != "call-004" || !got.IsArchived || got.Duration != 999 {
		t.Fatalf("push not applied: %+v", got)
	}
	if got.From != before.Calls[3].From {
		t.Fatalf("absent field overwritten: %q", got.From)
	}
}

func TestPushUpdatesFilteredView(t *testing.T) {
	s, _ := sampleStore(t, 10)
	if err := s.ApplyPush([]byte(`{"id":"call-001","is_archived":true}`)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	var found bool
	for _, c := range s.Snapshot().Visible {
		if c.ID == "call-001" && c.IsArchived {
			found = true
		}
	}
	if !found {
		t.Fatal("visible calls not rederived")
	}
}

func TestPushOlderVersionIsDropped(t *testing.T) {
	s, _ := sampleStore(t, 10)
	if err := s.ApplyPush([]byte(`{"id":"call-001","version":5,"duration":10}`)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := s.ApplyPush([]byte(`{"id":"call-001","version":4,"duration":20}`)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := s.Snapshot().Calls[0].Duration; got != 10 {
		t.Fatalf("stale update applied: duration %d", got)
	}
}

func TestPushMalformed(t *testing.T) {
	s, _ := sampleStore(t, 10)
	if err := s.ApplyPush([]byte(`not json`)); err == nil {
		t.Fatal("expected error")
	}
	if err := s.ApplyPush([]byte(`{"is_archived":true}`)); err == nil {
		t.Fatal("expected error for missing id")
	}
}
