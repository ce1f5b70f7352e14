package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the application workflow state. An application is created
// Under Review, screened into Success or Rejected, and a Success
// application may be approved into the second stage.
type Status string

const (
	StatusUnderReview Status = "Under Review"
	StatusSuccess     Status = "Success"
	StatusRejected    Status = "Rejected"
	StatusApproved    Status = "Approved"
)

var (
	ErrAlreadyScreened       = errors.New("application already screened")
	ErrNotScreened           = errors.New("application not screened yet")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrOutsideInvitationBand = errors.New("score outside invitation band")
)

func Valid(s Status) bool {
	switch s {
	case StatusUnderReview, StatusSuccess, StatusRejected, StatusApproved:
		return true
	default:
		return false
	}
}

// CanScreen reports whether the screening transition applies. Screening
// is applied once per application; re-screening requires an explicit
// re-screen action.
func CanScreen(s Status) bool {
	return s == StatusUnderReview
}

// CanApprove reports whether the approval transition applies. Only
// screened-successful applications move to the second stage.
func CanApprove(s Status) bool {
	return s == StatusSuccess
}

// ScreeningOutcome resolves the Under Review transition: pass-or-fail
// against the threshold, plus the applicant-facing feedback text.
func ScreeningOutcome(score float64, passThreshold float64, missingSkills []string) (Status, string) {
	if score >= passThreshold {
		return StatusSuccess, fmt.Sprintf(
			"Congratulations! Your application matched with a score of %.2f%%.", score)
	}
	return StatusRejected, fmt.Sprintf(
		"Unfortunately, your application did not meet our requirements due to missing key skills: %s.",
		strings.Join(missingSkills, ", "))
}

// ApprovalFeedback is the stage-2 notice stored on approval.
func ApprovalFeedback(name string) string {
	return fmt.Sprintf(
		"Hi %s, your resume passed the 1st stage. It is now in the 2nd stage. We'll notify you if you qualify.", name)
}

// InInvitationBand reports whether a rejected application's score falls
// inside the admin-chosen reassessment band, inclusive on both ends.
func InInvitationBand(score, min, max float64) bool {
	if min > max {
		min, max = max, min
	}
	return score >= min && score <= max
}
