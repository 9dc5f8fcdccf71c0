package domain

import "testing"

func TestIsTransitionAllowed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusPending, false},
		{StatusPending, StatusVerified, true},
		{StatusPending, StatusDiscarded, true},
		{StatusVerified, StatusPending, false},
		{StatusVerified, StatusVerified, false},
		{StatusVerified, StatusDiscarded, true},
		{StatusDiscarded, StatusPending, false},
		{StatusDiscarded, StatusVerified, true},
		{StatusDiscarded, StatusDiscarded, false},
	}

	for _, tc := range cases {
		if got := IsTransitionAllowed(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestAllowedTransitions(t *testing.T) {
	t.Parallel()

	got := AllowedTransitions(StatusVerified)
	if len(got) != 1 || got[0] != StatusDiscarded {
		t.Fatalf("unexpected transitions from verified: %v", got)
	}

	got = AllowedTransitions(StatusPending)
	if len(got) != 2 || got[0] != StatusVerified || got[1] != StatusDiscarded {
		t.Fatalf("unexpected transitions from pending: %v", got)
	}
}

func TestStatusVocabulary(t *testing.T) {
	t.Parallel()

	if got := StatusFromAPI("DISCARD"); got != StatusDiscarded {
		t.Fatalf("unexpected status for DISCARD: %s", got)
	}
	if got := StatusFromAPI("VERIFIED"); got != StatusVerified {
		t.Fatalf("unexpected status for VERIFIED: %s", got)
	}
	if got := StatusFromAPI("ARCHIVED"); got != StatusPending {
		t.Fatalf("unexpected status for ARCHIVED: %s", got)
	}

	for _, s := range Statuses() {
		if StatusFromAPI(s.APIValue()) != s {
			t.Fatalf("status %s does not survive the server vocabulary", s)
		}
	}
	if StatusDiscarded.APIValue() != "DISCARD" {
		t.Fatalf("unexpected api value: %s", StatusDiscarded.APIValue())
	}
}
