package moderation

import "ismaalAdmin/internal/models"

// transitions lists the decisions a moderator may issue from each status.
// Decisions stay reversible, so nothing is terminal. Statuses missing from
// the table are treated like PENDING.
var transitions = map[models.SubmissionStatus]map[models.SubmissionStatus]struct{}{
	models.StatusPending:  {models.StatusApproved: {}, models.StatusRejected: {}},
	models.StatusApproved: {models.StatusRejected: {}},
	models.StatusRejected: {models.StatusApproved: {}},
	models.StatusActive:   {models.StatusApproved: {}, models.StatusRejected: {}},
}

// CanTransition reports whether a submission in status from may be moved to
// status to. Re-issuing the current status is refused.
func CanTransition(from, to models.SubmissionStatus) bool {
	if from == to {
		return false
	}
	allowed, ok := transitions[from]
	if !ok {
		allowed = transitions[models.StatusPending]
	}
	_, ok = allowed[to]
	return ok
}
