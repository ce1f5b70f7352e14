package notification

import "fmt"

// Kind tags a message with the workflow event that produced it. All
// applicant-facing mail goes through these constructors; there is one
// message-construction path per kind.
type Kind string

const (
	KindSubmissionAck   Kind = "submission-ack"
	KindScreeningResult Kind = "screening-result"
	KindStageInvite     Kind = "stage-invite"
	KindOTP             Kind = "otp"
)

type Message struct {
	Kind    Kind   `json:"kind"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	// AttachmentPath points at a generated feedback report on disk;
	// empty means no attachment.
	AttachmentPath string `json:"attachment_path,omitempty"`
}

func NewSubmissionAck(name, email string) Message {
	return Message{
		Kind:    KindSubmissionAck,
		To:      email,
		Subject: "Application Received",
		Body: fmt.Sprintf(
			"Dear %s,\n\nThank you for applying. Your application has been received, and you will be notified of every stage it undergoes.\n\nBest regards,\nThe Hiring Team",
			name),
	}
}

func NewScreeningResult(name, email, jobTitle, feedback, reportPath string) Message {
	return Message{
		Kind:    KindScreeningResult,
		To:      email,
		Subject: fmt.Sprintf("Your Application Feedback Report - %s", jobTitle),
		Body: fmt.Sprintf(
			"Hello %s,\n\n%s\n\nAttached is your application feedback report.\n\nBest regards,\nThe Hiring Team",
			name, feedback),
		AttachmentPath: reportPath,
	}
}

func NewStageInvite(name, email string, matchScore float64) Message {
	return Message{
		Kind:    KindStageInvite,
		To:      email,
		Subject: "Your Application Moved to Stage 2",
		Body: fmt.Sprintf(
			"Dear %s,\n\nYour resume passed the first screening stage with a match score of %.2f%% and is now under second-stage review. We will notify you if you qualify.\n\nBest regards,\nThe Hiring Team",
			name, matchScore),
	}
}

func NewReassessmentInvite(name, email string, matchScore float64, reportPath string) Message {
	return Message{
		Kind:    KindStageInvite,
		To:      email,
		Subject: "Reassessment Invitation for Your Job Application",
		Body: fmt.Sprintf(
			"Dear %s,\n\nWhile your application did not meet the initial passing criteria, we believe you have potential. Your match score was %.2f%%.\n\nWe encourage you to enhance your skills and reapply. Your feedback report with missing skills is attached.\n\nBest regards,\nThe Hiring Team",
			name, matchScore),
		AttachmentPath: reportPath,
	}
}

func NewOTP(email, code string) Message {
	return Message{
		Kind:    KindOTP,
		To:      email,
		Subject: "Password Reset OTP",
		Body: fmt.Sprintf(
			"Your OTP for password reset is: %s. It is valid for 10 minutes.", code),
	}
}
