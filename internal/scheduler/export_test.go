package scheduler

import "time"

func (s *Scheduler) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Scheduler) SetNextRun(id string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id].next = t
}

func (s *Scheduler) Tick(now time.Time) {
	s.tick(now)
}

// Wait blocks until every launched run has finished.
func (s *Scheduler) Wait() {
	s.runWG.Wait()
}
