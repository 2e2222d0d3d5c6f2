package types

import "time"

// Project status values
const (
	ProjectActive    = "ACTIVE"
	ProjectCompleted = "COMPLETED"
	ProjectArchived  = "ARCHIVED"
)

// Task status values
const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// Task priority values
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Project member roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Subscription tiers
const (
	TierFree = "free"
	TierProf = "prof"
	TierCorp = "corp"
)

// Valid values for validation
var ValidProjectStatuses = []string{ProjectActive, ProjectCompleted, ProjectArchived}

var ValidTaskStatuses = []string{StatusTodo, StatusInProgress, StatusDone}

var ValidPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

var ValidTiers = []string{TierFree, TierProf, TierCorp}

func IsValidProjectStatus(status string) bool {
	for _, s := range ValidProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidTaskStatus(status string) bool {
	for _, s := range ValidTaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidPriority(priority string) bool {
	for _, p := range ValidPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

func IsValidTier(tier string) bool {
	for _, t := range ValidTiers {
		if t == tier {
			return true
		}
	}
	return false
}

// PriorityRank orders priorities for board sorting (higher sorts first).
func PriorityRank(priority string) int {
	switch priority {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// MemberLimitUnlimited marks tiers without a member cap.
const MemberLimitUnlimited = -1

// MemberLimitFor is the single tier-to-member-limit table. Every gate and
// display that needs a limit goes through here. Unknown tiers get the free
// limit.
func MemberLimitFor(tier string) int {
	switch tier {
	case TierProf:
		return 25
	case TierCorp:
		return MemberLimitUnlimited
	default:
		return 5
	}
}

// IsOverdue is the one definition of an overdue task: a deadline exists, it
// has passed, and the task is not done. Never stored, always recomputed.
func IsOverdue(deadline *time.Time, status string, now time.Time) bool {
	if deadline == nil {
		return false
	}
	return deadline.Before(now) && status != StatusDone
}
