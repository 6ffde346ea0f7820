package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"castmind/backend/internal/model"
	"castmind/backend/pkg/logger"
)

const (
	defaultMisfireGrace = 30 * time.Second
	// maxCoalesce bounds how many overdue fire times are folded into one run.
	maxCoalesce = 10000
	idleWait    = time.Hour
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobRunning  = errors.New("job is already running")
	ErrJobExists   = errors.New("job already registered")
	ErrStopped     = errors.New("scheduler stopped")
)

// JobFunc is the body of a job. It receives the scheduler's shared context.
type JobFunc func(ctx context.Context, sc *SchedulerContext) error

type Job struct {
	ID      string
	Name    string
	Trigger Trigger
	Run     JobFunc
	// RunOnStart fires the job once when the scheduler starts, before its first trigger time.
	RunOnStart bool
}

type jobState struct {
	job     Job
	running bool
	paused  bool
	next    time.Time

	lastRun    *time.Time
	lastRunID  string
	lastResult model.JobResult
	lastError  string
	runs       int
	misses     int
}

// Scheduler runs jobs on their triggers. A job never runs twice at once: a fire time that
// arrives while the previous run is still going, or that cannot start within the misfire
// grace, is skipped and counted as missed. Several overdue fire times collapse into one run.
type Scheduler struct {
	sc    *SchedulerContext
	grace time.Duration
	now   func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	jobs    map[string]*jobState
	order   []string
	started bool
	stopped bool

	wake     chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
	loopWG   sync.WaitGroup
	runWG    sync.WaitGroup
}

func New(sc *SchedulerContext, misfireGrace time.Duration) *Scheduler {
	if misfireGrace <= 0 {
		misfireGrace = defaultMisfireGrace
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		sc:     sc,
		grace:  misfireGrace,
		now:    time.Now,
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]*jobState),
		wake:   make(chan struct{}, 1),
		stopCh: make(chan struct{}),
	}
}

// Add registers a job. Jobs added after Start are scheduled from the current time.
func (s *Scheduler) Add(job Job) error {
	if job.ID == "" || job.Run == nil || job.Trigger == nil {
		return fmt.Errorf("invalid job %q", job.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; ok {
		return fmt.Errorf("%w: %s", ErrJobExists, job.ID)
	}
	st := &jobState{job: job}
	if s.started {
		st.next = job.Trigger.Next(s.now())
		s.signal()
	}
	s.jobs[job.ID] = st
	s.order = append(s.order, job.ID)
	return nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true
	count := len(s.order)
	now := s.now()
	for _, id := range s.order {
		st := s.jobs[id]
		st.next = st.job.Trigger.Next(now)
		if st.job.RunOnStart {
			s.launch(st)
		}
	}
	s.mu.Unlock()

	s.loopWG.Add(1)
	go s.loop()
	logger.Info("scheduler started", "module", "scheduler", "action", "start", "resource", "job", "result", "ok", "count", count, "misfire_grace", s.grace)
}

// Stop cancels running jobs and waits for them and the loop to finish.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()

		s.cancel()
		close(s.stopCh)
		s.loopWG.Wait()
		s.runWG.Wait()
		logger.Info("scheduler stopped", "module", "scheduler", "action", "stop", "resource", "job", "result", "ok")
	})
}

// RunNow starts a job immediately, paused or not, and returns the run ID.
func (s *Scheduler) RunNow(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return "", ErrStopped
	}
	st, ok := s.jobs[id]
	if !ok {
		return "", ErrJobNotFound
	}
	if st.running {
		return "", ErrJobRunning
	}
	logger.Info("job triggered", "module", "scheduler", "action", "trigger", "resource", "job", "result", "ok", "job_id", id)
	return s.launch(st), nil
}

func (s *Scheduler) Pause(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.jobs[id]
	if !ok {
		return ErrJobNotFound
	}
	st.paused = true
	s.signal()
	logger.Info("job paused", "module", "scheduler", "action", "pause", "resource", "job", "result", "ok", "job_id", id)
	return nil
}

// Resume reschedules a paused job from the current time. Fire times missed while paused
// are dropped.
func (s *Scheduler) Resume(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.jobs[id]
	if !ok {
		return ErrJobNotFound
	}
	if st.paused {
		st.paused = false
		st.next = st.job.Trigger.Next(s.now())
		s.signal()
	}
	logger.Info("job resumed", "module", "scheduler", "action", "resume", "resource", "job", "result", "ok", "job_id", id)
	return nil
}

// Status lists every job in registration order.
func (s *Scheduler) Status() []model.JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.JobStatus, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.jobs[id].status())
	}
	return out
}

func (s *Scheduler) JobStatus(id string) (model.JobStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.jobs[id]
	if !ok {
		return model.JobStatus{}, ErrJobNotFound
	}
	return st.status(), nil
}

func (st *jobState) status() model.JobStatus {
	js := model.JobStatus{
		ID:         st.job.ID,
		Name:       st.job.Name,
		Trigger:    st.job.Trigger.String(),
		Paused:     st.paused,
		Running:    st.running,
		LastRunID:  st.lastRunID,
		LastResult: st.lastResult,
		LastError:  st.lastError,
		Runs:       st.runs,
		Misses:     st.misses,
	}
	if !st.paused && !st.next.IsZero() {
		next := st.next
		js.NextRun = &next
	}
	if st.lastRun != nil {
		last := *st.lastRun
		js.LastRun = &last
	}
	return js
}

func (s *Scheduler) loop() {
	defer s.loopWG.Done()

	for {
		timer := time.NewTimer(s.untilNext())
		select {
		case <-timer.C:
			s.tick(s.now())
		case <-s.wake:
			timer.Stop()
		case <-s.stopCh:
			timer.Stop()
			return
		}
	}
}

// signal wakes the loop so it recomputes its timer. Callers hold mu.
func (s *Scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) untilNext() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	var earliest time.Time
	for _, st := range s.jobs {
		if st.paused || st.next.IsZero() {
			continue
		}
		if earliest.IsZero() || st.next.Before(earliest) {
			earliest = st.next
		}
	}
	if earliest.IsZero() {
		return idleWait
	}
	if wait := earliest.Sub(s.now()); wait > 0 {
		return wait
	}
	return 0
}

// tick fires every job due at now.
func (s *Scheduler) tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		st := s.jobs[id]
		if st.paused || st.next.IsZero() || st.next.After(now) {
			continue
		}

		scheduled := latestDue(st.job.Trigger, st.next, now)
		st.next = st.job.Trigger.Next(now)

		switch {
		case st.running:
			st.misses++
			logger.Warn("job still running, run skipped", "module", "scheduler", "action", "run", "resource", "job", "result", "skipped", "job_id", id, "scheduled", scheduled)
		case now.Sub(scheduled) > s.grace:
			st.misses++
			logger.Warn("job misfired", "module", "scheduler", "action", "run", "resource", "job", "result", "skipped", "job_id", id, "scheduled", scheduled, "late", now.Sub(scheduled))
		default:
			s.launch(st)
		}
	}
}

// latestDue folds every fire time up to now into the last one.
func latestDue(trigger Trigger, first, now time.Time) time.Time {
	scheduled := first
	for i := 0; i < maxCoalesce; i++ {
		next := trigger.Next(scheduled)
		if next.IsZero() || next.After(now) {
			break
		}
		scheduled = next
	}
	return scheduled
}

// launch starts a run in the background. Callers hold mu.
func (s *Scheduler) launch(st *jobState) string {
	runID := uuid.NewString()
	st.running = true
	s.runWG.Add(1)
	go s.execute(st, runID)
	return runID
}

func (s *Scheduler) execute(st *jobState, runID string) {
	defer s.runWG.Done()

	id := st.job.ID
	start := s.now()
	logger.Info("job started", "module", "scheduler", "action", "run", "resource", "job", "result", "ok", "job_id", id, "run_id", runID)

	err := s.safeRun(st.job)
	duration := time.Since(start)

	s.mu.Lock()
	st.running = false
	st.lastRun = &start
	st.lastRunID = runID
	st.runs++
	if err != nil {
		st.lastResult = model.JobResultFailed
		st.lastError = err.Error()
	} else {
		st.lastResult = model.JobResultOK
		st.lastError = ""
	}
	s.mu.Unlock()

	switch {
	case err != nil && s.ctx.Err() != nil:
		logger.Info("job cancelled", "module", "scheduler", "action", "run", "resource", "job", "result", "cancelled", "job_id", id, "run_id", runID, "duration", duration)
	case err != nil:
		logger.Error("job failed", "module", "scheduler", "action", "run", "resource", "job", "result", "failed", "job_id", id, "run_id", runID, "duration", duration, "error", err)
	default:
		logger.Info("job completed", "module", "scheduler", "action", "run", "resource", "job", "result", "ok", "job_id", id, "run_id", runID, "duration", duration)
	}
}

func (s *Scheduler) safeRun(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in job %s: %v", job.ID, r)
		}
	}()
	return job.Run(s.ctx, s.sc)
}
