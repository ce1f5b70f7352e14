package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hireflow/internal/domain/lifecycle"
	"hireflow/internal/notification"
	"hireflow/internal/repository"

	"github.com/google/uuid"
)

func newApplicationsFixture(jobs ...repository.Job) (*Applications, *fakeAppRepo, *fakeNotifier) {
	apps := newFakeAppRepo()
	notifier := newFakeNotifier()
	return NewApplications(apps, newFakeJobRepo(jobs...), notifier, nil), apps, notifier
}

func validSubmit(jobID uuid.UUID) SubmitApplicationInput {
	return SubmitApplicationInput{
		JobID:  jobID,
		Name:   "Alice",
		Email:  "alice@example.com",
		Gender: "Female",
		Resume: "python sql",
	}
}

func TestSubmit(t *testing.T) {
	job := repository.Job{ID: uuid.New(), Title: "Analyst", Deadline: time.Now().AddDate(0, 1, 0)}
	uc, apps, notifier := newApplicationsFixture(job)
	userID := uuid.New()

	app, err := uc.Submit(context.Background(), userID, validSubmit(job.ID))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if app.Status != lifecycle.StatusUnderReview {
		t.Errorf("status = %q, want %q", app.Status, lifecycle.StatusUnderReview)
	}
	if app.UserID != userID {
		t.Errorf("user ID = %v, want %v", app.UserID, userID)
	}

	stored, err := apps.GetByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("application not persisted: %v", err)
	}
	if stored.Resume != "python sql" {
		t.Errorf("resume = %q", stored.Resume)
	}

	if len(notifier.messages) != 1 {
		t.Fatalf("dispatched %d messages, want 1", len(notifier.messages))
	}
	if notifier.messages[0].msg.Kind != notification.KindSubmissionAck {
		t.Errorf("kind = %q, want %q", notifier.messages[0].msg.Kind, notification.KindSubmissionAck)
	}
}

func TestSubmitValidation(t *testing.T) {
	job := repository.Job{ID: uuid.New(), Title: "Analyst"}

	tests := []struct {
		name   string
		mutate func(*SubmitApplicationInput)
	}{
		{"missing name", func(in *SubmitApplicationInput) { in.Name = "" }},
		{"bad email", func(in *SubmitApplicationInput) { in.Email = "foo@bar" }},
		{"missing resume", func(in *SubmitApplicationInput) { in.Resume = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newApplicationsFixture(job)
			in := validSubmit(job.ID)
			tt.mutate(&in)

			if _, err := uc.Submit(context.Background(), uuid.New(), in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Submit() error = %v, want %v", err, ErrInvalidInput)
			}
		})
	}
}

func TestSubmitDefaultsGender(t *testing.T) {
	job := repository.Job{ID: uuid.New(), Title: "Analyst"}
	uc, _, _ := newApplicationsFixture(job)

	in := validSubmit(job.ID)
	in.Gender = ""

	app, err := uc.Submit(context.Background(), uuid.New(), in)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if app.Gender != "Unknown" {
		t.Errorf("gender = %q, want %q", app.Gender, "Unknown")
	}
}

func TestSubmitUnknownJob(t *testing.T) {
	uc, _, _ := newApplicationsFixture()

	if _, err := uc.Submit(context.Background(), uuid.New(), validSubmit(uuid.New())); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Submit() error = %v, want %v", err, ErrJobNotFound)
	}
}

func TestSubmitDuplicate(t *testing.T) {
	job := repository.Job{ID: uuid.New(), Title: "Analyst"}
	uc, _, notifier := newApplicationsFixture(job)
	userID := uuid.New()

	if _, err := uc.Submit(context.Background(), userID, validSubmit(job.ID)); err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}
	if _, err := uc.Submit(context.Background(), userID, validSubmit(job.ID)); !errors.Is(err, ErrDuplicateApplication) {
		t.Errorf("second Submit() error = %v, want %v", err, ErrDuplicateApplication)
	}

	if len(notifier.messages) != 1 {
		t.Errorf("dispatched %d messages, want 1", len(notifier.messages))
	}
}

func TestSubmitSurvivesNotifierFailure(t *testing.T) {
	job := repository.Job{ID: uuid.New(), Title: "Analyst"}
	uc, apps, notifier := newApplicationsFixture(job)
	notifier.err = errors.New("smtp down")

	app, err := uc.Submit(context.Background(), uuid.New(), validSubmit(job.ID))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if _, err := apps.GetByID(context.Background(), app.ID); err != nil {
		t.Errorf("application not persisted: %v", err)
	}
}

func TestApplicationsSurviveJobDeletion(t *testing.T) {
	job := repository.Job{ID: uuid.New(), Title: "Analyst"}
	jobs := newFakeJobRepo(job)
	apps := newFakeAppRepo()
	uc := NewApplications(apps, jobs, newFakeNotifier(), nil)
	userID := uuid.New()

	app, err := uc.Submit(context.Background(), userID, validSubmit(job.ID))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	jobsUC := NewJobs(jobs, nil)
	if err := jobsUC.Delete(context.Background(), job.ID); err != nil {
		t.Fatalf("Delete() with an applicant error = %v", err)
	}

	// The orphaned application stays readable.
	if _, err := uc.Get(context.Background(), app.ID); err != nil {
		t.Errorf("Get() after job deletion error = %v", err)
	}
	mine, err := uc.ListMine(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListMine() after job deletion error = %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("got %d applications after job deletion, want 1", len(mine))
	}
}

func TestListMine(t *testing.T) {
	job := repository.Job{ID: uuid.New(), Title: "Analyst"}
	uc, _, _ := newApplicationsFixture(job)
	userID := uuid.New()

	if _, err := uc.Submit(context.Background(), userID, validSubmit(job.ID)); err != nil {
		t.Fatal(err)
	}

	mine, err := uc.ListMine(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("got %d applications, want 1", len(mine))
	}

	other, err := uc.ListMine(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("got %d applications for other user, want 0", len(other))
	}
}
