package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/ScriptureLinks/core/textscan"
	"github.com/FocuswithJustin/ScriptureLinks/internal/logging"
	"github.com/FocuswithJustin/ScriptureLinks/internal/output"
	"github.com/FocuswithJustin/ScriptureLinks/internal/validation"
)

// JobStatus represents the current state of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Terminal reports whether the status is final.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusCancelled
}

var (
	// ErrJobNotFound is returned for unknown job IDs.
	ErrJobNotFound = errors.New("job not found")
	// ErrJobFinished is returned when cancelling a job that already ended.
	ErrJobFinished = errors.New("job already finished")
)

// JobRequest is the body of POST /jobs. References are resolved like
// POST /batch and each text is rewritten like POST /process.
type JobRequest struct {
	References []string `json:"references,omitempty"`
	Texts      []string `json:"texts,omitempty"`
	StudyHelps bool     `json:"study_helps,omitempty"`
}

// Items returns the number of units of work in the request.
func (r JobRequest) Items() int {
	return len(r.References) + len(r.Texts)
}

// JobResult holds the output of a completed job.
type JobResult struct {
	Batch *output.BatchResponse           `json:"batch,omitempty"`
	Texts []output.TextProcessingResponse `json:"texts,omitempty"`
}

// Job is an asynchronous batch of references and texts.
type Job struct {
	ID          string     `json:"id"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"` // 0-100
	Processed   int        `json:"processed"`
	Total       int        `json:"total"`
	Result      *JobResult `json:"result,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	CompletedAt string     `json:"completed_at,omitempty"`
	Request     JobRequest `json:"-"`

	created time.Time
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// JobStore manages jobs in memory. Get and List return copies, so callers
// may read them without holding the store's lock.
type JobStore struct {
	jobs map[string]*Job
	mu   sync.RWMutex
}

// NewJobStore creates a new job store.
func NewJobStore() *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
	}
}

// Create registers a pending job and returns a copy of it.
func (s *JobStore) Create(req JobRequest) Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now().UTC()
	stamp := now.Format(time.RFC3339)

	job := &Job{
		ID:        uuid.New().String(),
		Status:    JobStatusPending,
		Total:     req.Items(),
		CreatedAt: stamp,
		UpdatedAt: stamp,
		Request:   req,
		created:   now,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	s.jobs[job.ID] = job
	return *job
}

// Get retrieves a copy of a job by ID.
func (s *JobStore) Get(id string) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[id]
	if !exists {
		return Job{}, false
	}
	return *job, true
}

// Len returns the number of stored jobs.
func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// List returns copies of all jobs, oldest first.
func (s *JobStore) List() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, *job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].created.Equal(jobs[j].created) {
			return jobs[i].ID < jobs[j].ID
		}
		return jobs[i].created.Before(jobs[j].created)
	})
	return jobs
}

// update applies fn to a live job under the lock. Jobs already in a
// terminal state are left alone, so a late progress report cannot undo a
// cancellation.
func (s *JobStore) update(id string, fn func(*Job)) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[id]
	if !exists {
		return Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if job.Status.Terminal() {
		return *job, fmt.Errorf("%w (status: %s)", ErrJobFinished, job.Status)
	}

	fn(job)
	now := time.Now().UTC().Format(time.RFC3339)
	job.UpdatedAt = now
	if job.Status.Terminal() {
		job.CompletedAt = now
		job.cancel()
	}
	return *job, nil
}

// Cancel cancels a pending or running job.
func (s *JobStore) Cancel(id string) (Job, error) {
	return s.update(id, func(job *Job) {
		job.Status = JobStatusCancelled
		job.Error = "Job cancelled by user"
	})
}

// Delete removes a job from the store, cancelling it if still running.
func (s *JobStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	job.cancel()
	delete(s.jobs, id)
	return nil
}

// CancelAll cancels every unfinished job.
func (s *JobStore) CancelAll() {
	s.mu.RLock()
	ids := make([]string, 0, len(s.jobs))
	for id, job := range s.jobs {
		if !job.Status.Terminal() {
			ids = append(ids, id)
		}
	}
	s.mu.RUnlock()

	for _, id := range ids {
		s.Cancel(id)
	}
}

// Wait blocks until the job's worker has exited or ctx is done.
func (s *JobStore) Wait(ctx context.Context, id string) (Job, error) {
	s.mu.RLock()
	job, exists := s.jobs[id]
	s.mu.RUnlock()
	if !exists {
		return Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}

	select {
	case <-job.done:
	case <-ctx.Done():
		return Job{}, ctx.Err()
	}
	if j, ok := s.Get(id); ok {
		return j, nil
	}
	return Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, id)
}

// runJob processes a job in a goroutine, broadcasting progress over the hub.
func (s *Server) runJob(job Job) {
	s.jobs.mu.RLock()
	live := s.jobs.jobs[job.ID]
	s.jobs.mu.RUnlock()

	go func() {
		defer close(live.done)

		if _, err := s.jobs.update(job.ID, func(j *Job) { j.Status = JobStatusRunning }); err != nil {
			return
		}
		logging.JobEvent(job.ID, string(JobStatusRunning), "items", job.Total)
		s.broadcastJob(job.ID, "progress", "running", 0, "Job started")

		req := job.Request
		result := &JobResult{}
		processed := 0
		lastProgress := 0

		step := func(stage string) bool {
			processed++
			progress := processed * 100 / max(job.Total, 1)
			if _, err := s.jobs.update(job.ID, func(j *Job) {
				j.Processed = processed
				j.Progress = progress
			}); err != nil {
				return false
			}
			// One broadcast per percentage point keeps large jobs quiet.
			if progress != lastProgress {
				lastProgress = progress
				s.broadcastJob(job.ID, "progress", stage, progress,
					fmt.Sprintf("Processed %d of %d items", processed, job.Total))
			}
			return live.ctx.Err() == nil
		}

		if len(req.References) > 0 {
			batch := output.BatchResponse{Results: make([]output.SingleReferenceResponse, 0, len(req.References))}
			for _, ref := range req.References {
				r := output.Single(s.parser, ref)
				if r.Success {
					batch.Successful++
				} else {
					batch.Failed++
				}
				batch.Results = append(batch.Results, r)
				if !step("references") {
					s.finishCancelled(job.ID, processed)
					return
				}
			}
			batch.TotalProcessed = len(batch.Results)
			batch.Success = batch.Failed == 0
			result.Batch = &batch
		}

		opts := textscan.Options{StudyHelps: req.StudyHelps}
		for _, text := range req.Texts {
			resp := output.Text(s.scanner, text, opts)
			logging.TextRewritten(live.ctx, len(text), resp.ReferencesFound, req.StudyHelps, "job_id", job.ID)
			result.Texts = append(result.Texts, resp)
			if !step("texts") {
				s.finishCancelled(job.ID, processed)
				return
			}
		}

		if _, err := s.jobs.update(job.ID, func(j *Job) {
			j.Status = JobStatusCompleted
			j.Progress = 100
			j.Result = result
		}); err != nil {
			s.finishCancelled(job.ID, processed)
			return
		}
		logging.JobEvent(job.ID, string(JobStatusCompleted), "items", processed)
		data := map[string]interface{}{"items": processed}
		if result.Batch != nil {
			data["successful"] = result.Batch.Successful
			data["failed"] = result.Batch.Failed
		}
		s.hub.Broadcast(ProgressMessage{
			Type:      "complete",
			Operation: "job",
			JobID:     job.ID,
			Progress:  100,
			Message:   "Job completed",
			Data:      data,
		})
	}()
}

// finishCancelled records and announces a job that stopped early.
func (s *Server) finishCancelled(id string, processed int) {
	s.jobs.Cancel(id)
	logging.JobEvent(id, string(JobStatusCancelled), "items", processed)
	s.broadcastJob(id, "cancelled", "cancelled", 0, "Job cancelled")
}

func (s *Server) broadcastJob(id, kind, stage string, progress int, message string) {
	s.hub.Broadcast(ProgressMessage{
		Type:      kind,
		Operation: "job",
		JobID:     id,
		Stage:     stage,
		Progress:  progress,
		Message:   message,
	})
}

// handleJobs handles GET /jobs (list) and POST /jobs (create).
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jobs := s.jobs.List()
		response := APIResponse{
			Success: true,
			Data:    jobs,
			Meta: &APIMeta{
				Total:     len(jobs),
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			},
		}
		writeJSON(w, http.StatusOK, response)
	case http.MethodPost:
		s.createJob(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET and POST are allowed")
	}
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var req JobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Items() == 0 {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMS", "references or texts are required")
		return
	}
	if req.Items() > s.cfg.MaxBatchItems {
		respondError(w, http.StatusBadRequest, "INVALID_BATCH",
			fmt.Sprintf("%d items exceeds limit of %d", req.Items(), s.cfg.MaxBatchItems))
		return
	}
	if len(req.References) > 0 {
		if err := validation.ValidateBatch(req.References, s.cfg.MaxBatchItems); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_BATCH", err.Error())
			return
		}
	}
	for i, text := range req.Texts {
		if err := validation.ValidateText(text, s.cfg.MaxTextBytes); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_TEXT", fmt.Sprintf("text %d: %v", i, err))
			return
		}
	}

	job := s.jobs.Create(req)
	logging.JobEvent(job.ID, string(JobStatusPending),
		"references", len(req.References),
		"texts", len(req.Texts))
	s.runJob(job)

	respond(w, http.StatusAccepted, job)
}

// handleJobByID handles GET /jobs/{id} (status) and DELETE /jobs/{id},
// which cancels a running job or removes a finished one.
func (s *Server) handleJobByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/jobs/")
	if id == "" {
		respondError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}
	if err := ValidateJobID(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		job, exists := s.jobs.Get(id)
		if !exists {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Job not found")
			return
		}
		respond(w, http.StatusOK, job)
	case http.MethodDelete:
		s.deleteJob(w, id)
	default:
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET and DELETE are allowed")
	}
}

func (s *Server) deleteJob(w http.ResponseWriter, id string) {
	job, err := s.jobs.Cancel(id)
	switch {
	case err == nil:
		logging.JobEvent(id, string(JobStatusCancelled), "by", "request")
		respond(w, http.StatusOK, map[string]interface{}{"message": "Job cancelled", "job": job})
	case errors.Is(err, ErrJobFinished):
		if err := s.jobs.Delete(id); err != nil {
			respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		logging.JobEvent(id, "deleted")
		respond(w, http.StatusOK, map[string]string{"message": "Job deleted"})
	case errors.Is(err, ErrJobNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Job not found")
	default:
		respondError(w, http.StatusBadRequest, "CANCEL_FAILED", err.Error())
	}
}
