package dto

import (
	"time"

	"hireflow/internal/repository"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PostedOn    string    `json:"posted_on"`
	Deadline    string    `json:"deadline"`
	CreatedAt   time.Time `json:"created_at"`
}

const dateLayout = "2006-01-02"

func FromJob(j repository.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		PostedOn:    j.PostedOn.Format(dateLayout),
		Deadline:    j.Deadline.Format(dateLayout),
		CreatedAt:   j.CreatedAt,
	}
}

func FromJobs(jobs []repository.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromJob(j))
	}
	return out
}
