package schedule

import (
	"errors"
	"plist/job"
	"plist/logger"
	"plist/struct/list"
	"sync"
	"time"
)

var ErrClosed = errors.New("schedule: queue is closed")

// Queue keeps pending jobs ordered by their next fire time. The underlying
// list is not safe for concurrent use, so every access goes through mu.
type Queue struct {
	mu     sync.Mutex
	jobs   *list.OrderedList[*job.Job]
	closed bool
}

func MakeQueue() *Queue {
	jobs, err := list.Make[*job.Job](dropJob, job.Compare)
	if err != nil {
		panic(err)
	}
	return &Queue{jobs: jobs}
}

func dropJob(j *job.Job) {
	logger.Info("job dropped at close:", j.JobId, j.Name)
}

// Push inserts j behind every queued job firing at the same time or earlier.
func (q *Queue) Push(j *job.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	return q.jobs.Add(j, list.InOrder)
}

// PopFront removes the job firing first.
func (q *Queue) PopFront() (*job.Job, bool) {
	return q.pop(list.AtHead)
}

// PopBack removes the job firing last.
func (q *Queue) PopBack() (*job.Job, bool) {
	return q.pop(list.AtTail)
}

func (q *Queue) pop(end list.Placement) (*job.Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.jobs.Remove(end)
}

// Due removes and returns, in fire order, every job whose NextRun is not after now.
func (q *Queue) Due(now time.Time) []*job.Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	var res []*job.Job
	for {
		j, ok := q.jobs.Remove(list.AtHead)
		if !ok {
			return res
		}
		if !j.Due(now) {
			// not yet, put it back where it was.
			_ = q.jobs.Add(j, list.AtHead)
			return res
		}
		res = append(res, j)
	}
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.jobs.Len()
}

func (q *Queue) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.jobs.IsEmpty()
}

// Close drops every queued job. Push fails afterwards.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.jobs.Destroy()
}
