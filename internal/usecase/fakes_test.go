package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"hireflow/internal/domain/lifecycle"
	"hireflow/internal/domain/screening"
	"hireflow/internal/notification"
	"hireflow/internal/report"
	"hireflow/internal/repository"

	"github.com/google/uuid"
)

func scorePtr(v float64) *float64 { return &v }

// wordTagger tags every whitespace-separated word as a noun, so skill
// sets in tests are exactly the words of the text.
type wordTagger struct{}

func (wordTagger) Tag(text string) ([]screening.Token, error) {
	fields := strings.Fields(text)
	out := make([]screening.Token, 0, len(fields))
	for _, f := range fields {
		out = append(out, screening.Token{Text: f, Tag: "NN"})
	}
	return out, nil
}

type fakeUserRepo struct {
	byUsername map[string]repository.User
	byEmail    map[string]repository.User
	byID       map[uuid.UUID]repository.User

	created         []repository.User
	updatedPassword map[uuid.UUID]string
}

func newFakeUserRepo(users ...repository.User) *fakeUserRepo {
	r := &fakeUserRepo{
		byUsername:      map[string]repository.User{},
		byEmail:         map[string]repository.User{},
		byID:            map[uuid.UUID]repository.User{},
		updatedPassword: map[uuid.UUID]string{},
	}
	for _, u := range users {
		r.add(u)
	}
	return r
}

func (r *fakeUserRepo) add(u repository.User) {
	r.byUsername[u.Username] = u
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
}

func (r *fakeUserRepo) Create(_ context.Context, u repository.User) error {
	r.created = append(r.created, u)
	r.add(u)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (repository.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (repository.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.byUsername[username]
	return ok, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = hash
	r.add(u)
	r.updatedPassword[id] = hash
	return nil
}

type fakeJobRepo struct {
	jobs map[uuid.UUID]repository.Job

	created []repository.Job
	updated []repository.Job
	deleted []uuid.UUID
}

func newFakeJobRepo(jobs ...repository.Job) *fakeJobRepo {
	r := &fakeJobRepo{jobs: map[uuid.UUID]repository.Job{}}
	for _, j := range jobs {
		r.jobs[j.ID] = j
	}
	return r
}

func (r *fakeJobRepo) Create(_ context.Context, j repository.Job) error {
	for _, existing := range r.jobs {
		if existing.Title == j.Title {
			return repository.ErrJobTitleTaken
		}
	}
	r.jobs[j.ID] = j
	r.created = append(r.created, j)
	return nil
}

func (r *fakeJobRepo) Update(_ context.Context, j repository.Job) error {
	if _, ok := r.jobs[j.ID]; !ok {
		return repository.ErrJobNotFound
	}
	r.jobs[j.ID] = j
	r.updated = append(r.updated, j)
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.jobs[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(r.jobs, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return repository.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.jobs[id]
	return ok, nil
}

func (r *fakeJobRepo) ExistsByTitle(_ context.Context, title string, excludeID uuid.UUID) (bool, error) {
	for id, j := range r.jobs {
		if j.Title == title && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeJobRepo) List(_ context.Context, titleQuery string) ([]repository.Job, error) {
	out := make([]repository.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if titleQuery != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(titleQuery)) {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

type fakeAppRepo struct {
	mu   sync.Mutex
	apps map[uuid.UUID]repository.Application

	screeningUpdates []uuid.UUID
}

func newFakeAppRepo(apps ...repository.Application) *fakeAppRepo {
	r := &fakeAppRepo{apps: map[uuid.UUID]repository.Application{}}
	for _, a := range apps {
		r.apps[a.ID] = a
	}
	return r
}

func (r *fakeAppRepo) Create(_ context.Context, a repository.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.UserID == a.UserID && existing.JobID == a.JobID {
			return repository.ErrDuplicateApplication
		}
	}
	r.apps[a.ID] = a
	return nil
}

func (r *fakeAppRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return repository.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (r *fakeAppRepo) ExistsByUserAndJob(_ context.Context, userID, jobID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.UserID == userID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]repository.ApplicationWithJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []repository.ApplicationWithJob{}
	for _, a := range r.apps {
		if a.UserID == userID {
			out = append(out, repository.ApplicationWithJob{Application: a})
		}
	}
	return out, nil
}

func (r *fakeAppRepo) ListByStatus(_ context.Context, status lifecycle.Status) ([]repository.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []repository.Application{}
	for _, a := range r.apps {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppRepo) ListByStatusAndScoreRange(_ context.Context, status lifecycle.Status, min, max float64) ([]repository.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []repository.Application{}
	for _, a := range r.apps {
		if a.Status == status && a.MatchScore >= min && a.MatchScore <= max {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppRepo) ListAll(_ context.Context) ([]repository.ApplicationWithJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []repository.ApplicationWithJob{}
	for _, a := range r.apps {
		out = append(out, repository.ApplicationWithJob{Application: a})
	}
	return out, nil
}

func (r *fakeAppRepo) UpdateScreening(_ context.Context, id uuid.UUID, status lifecycle.Status, feedback string, score float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.Status = status
	a.Feedback = feedback
	a.MatchScore = score
	r.apps[id] = a
	r.screeningUpdates = append(r.screeningUpdates, id)
	return nil
}

func (r *fakeAppRepo) UpdateApproval(_ context.Context, id uuid.UUID, feedback string, category screening.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.Status = lifecycle.StatusApproved
	a.Feedback = feedback
	a.Category = category
	r.apps[id] = a
	return nil
}

func (r *fakeAppRepo) UpdateCategory(_ context.Context, id uuid.UUID, category screening.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.Category = category
	r.apps[id] = a
	return nil
}

func (r *fakeAppRepo) UpdateReportPath(_ context.Context, id uuid.UUID, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.ReportPath = path
	r.apps[id] = a
	return nil
}

func (r *fakeAppRepo) CountByStatus(_ context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]int{}
	for _, a := range r.apps {
		out[string(a.Status)]++
	}
	return out, nil
}

func (r *fakeAppRepo) CountByGender(_ context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]int{}
	for _, a := range r.apps {
		out[a.Gender]++
	}
	return out, nil
}

type dispatched struct {
	msg notification.Message
	key string
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []dispatched
	err      error
	claimed  map[string]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{claimed: map[string]bool{}}
}

func (f *fakeNotifier) Dispatch(_ context.Context, msg notification.Message, idemKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if idemKey != "" {
		if f.claimed[idemKey] {
			return nil
		}
		f.claimed[idemKey] = true
	}
	f.messages = append(f.messages, dispatched{msg: msg, key: idemKey})
	return nil
}

type fakeOTPStore struct {
	values map[string]string
	err    error
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{values: map[string]string{}}
}

func (f *fakeOTPStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.values[key] = value
	return nil
}

func (f *fakeOTPStore) Get(_ context.Context, key string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeOTPStore) Delete(_ context.Context, key string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.values, key)
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []struct {
		id     uuid.UUID
		status string
		score  float64
	}
}

func (f *fakeEvents) ScreeningCompleted(id uuid.UUID, status string, score float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, struct {
		id     uuid.UUID
		status string
		score  float64
	}{id, status, score})
}

type fakeReportGen struct {
	generated []string
	err       error
}

func (f *fakeReportGen) Generate(key string, _ report.Feedback) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := "/tmp/reports/" + key + "_feedback.pdf"
	f.generated = append(f.generated, path)
	return path, nil
}
