package jobs

import "fmt"

// Job is a scheduled background job.
type Job interface {
	Start() error
	Stop()
}

// JobManager starts and stops a set of jobs together.
type JobManager struct {
	jobs []Job
}

// NewJobManager creates a manager for jobs, started in the given order.
func NewJobManager(jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts every job. If one fails, the ones already started are stopped.
func (m *JobManager) StartAll() error {
	for i, j := range m.jobs {
		if err := j.Start(); err != nil {
			for k := i - 1; k >= 0; k-- {
				m.jobs[k].Stop()
			}
			return fmt.Errorf("start job %d: %w", i, err)
		}
	}
	return nil
}

// StopAll stops every job in reverse order.
func (m *JobManager) StopAll() {
	for i := len(m.jobs) - 1; i >= 0; i-- {
		m.jobs[i].Stop()
	}
}
