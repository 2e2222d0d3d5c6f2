package types

import (
	"testing"
	"time"
)

func TestMemberLimitFor(t *testing.T) {
	cases := []struct {
		tier string
		want int
	}{
		{TierFree, 5},
		{TierProf, 25},
		{TierCorp, MemberLimitUnlimited},
		{"enterprise", 5}, // unknown tiers fall back to the free limit
		{"", 5},
	}
	for _, tc := range cases {
		if got := MemberLimitFor(tc.tier); got != tc.want {
			t.Errorf("MemberLimitFor(%q) = %d, want %d", tc.tier, got, tc.want)
		}
	}
}

func TestPriorityRank(t *testing.T) {
	order := []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	for i := 1; i < len(order); i++ {
		if PriorityRank(order[i]) <= PriorityRank(order[i-1]) {
			t.Errorf("PriorityRank(%q) not above PriorityRank(%q)", order[i], order[i-1])
		}
	}
	if PriorityRank("CRITICAL") != 0 {
		t.Errorf("PriorityRank of unknown priority = %d, want 0", PriorityRank("CRITICAL"))
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name     string
		deadline *time.Time
		status   string
		want     bool
	}{
		{"past deadline, open", &past, StatusTodo, true},
		{"past deadline, in progress", &past, StatusInProgress, true},
		{"past deadline, done", &past, StatusDone, false},
		{"future deadline, open", &future, StatusTodo, false},
		{"no deadline", nil, StatusTodo, false},
		{"deadline exactly now", &now, StatusTodo, false},
	}
	for _, tc := range cases {
		if got := IsOverdue(tc.deadline, tc.status, now); got != tc.want {
			t.Errorf("%s: IsOverdue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestValidators(t *testing.T) {
	if !IsValidProjectStatus(ProjectArchived) || IsValidProjectStatus("PAUSED") {
		t.Error("IsValidProjectStatus mismatch")
	}
	if !IsValidTaskStatus(StatusInProgress) || IsValidTaskStatus("BLOCKED") {
		t.Error("IsValidTaskStatus mismatch")
	}
	if !IsValidPriority(PriorityUrgent) || IsValidPriority("urgent") {
		t.Error("IsValidPriority is case sensitive by contract")
	}
	if !IsValidTier(TierProf) || IsValidTier("premium") {
		t.Error("IsValidTier mismatch")
	}
}
