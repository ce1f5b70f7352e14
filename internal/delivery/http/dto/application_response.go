package dto

import (
	"hireflow/internal/repository"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Gender      string    `json:"gender"`
	Status      string    `json:"status"`
	Feedback    string    `json:"feedback,omitempty"`
	MatchScore  float64   `json:"match_score"`
	Category    string    `json:"category"`
	SubmittedOn string    `json:"submitted_on"`
}

// ApplicationWithJobResponse adds the joined posting; the title is empty
// when the posting has been deleted.
type ApplicationWithJobResponse struct {
	ApplicationResponse
	JobTitle    string `json:"job_title"`
	JobDeadline string `json:"job_deadline,omitempty"`
}

func FromApplication(a repository.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		Name:        a.Name,
		Email:       a.Email,
		Gender:      a.Gender,
		Status:      string(a.Status),
		Feedback:    a.Feedback,
		MatchScore:  a.MatchScore,
		Category:    string(a.Category),
		SubmittedOn: a.SubmittedOn.Format(dateLayout),
	}
}

func FromApplicationWithJob(a repository.ApplicationWithJob) ApplicationWithJobResponse {
	out := ApplicationWithJobResponse{
		ApplicationResponse: FromApplication(a.Application),
		JobTitle:            a.JobTitle,
	}
	if !a.JobDeadline.IsZero() && a.JobDeadline.Year() > 1 {
		out.JobDeadline = a.JobDeadline.Format(dateLayout)
	}
	return out
}

func FromApplicationsWithJob(apps []repository.ApplicationWithJob) []ApplicationWithJobResponse {
	out := make([]ApplicationWithJobResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, FromApplicationWithJob(a))
	}
	return out
}
