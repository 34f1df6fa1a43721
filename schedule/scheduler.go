package schedule

import (
	"context"
	"plist/job"
	"plist/logger"
	"sync"
	"time"
)

const interval = time.Second // default 1s.

type Event struct {
	JobId string    `json:"jobId"`
	Name  string    `json:"name"`
	At    time.Time `json:"at"`
}

// Scheduler fires queued jobs once their time has come and puts recurring
// ones back in the queue.
type Scheduler struct {
	queue       *Queue
	interval    time.Duration
	stopChannel chan struct{}
	done        chan struct{}
	startOnce   sync.Once
	stopOnce    sync.Once

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

func MakeScheduler(d time.Duration) *Scheduler {
	if d <= 0 {
		d = interval
	}
	return &Scheduler{
		queue:       MakeQueue(),
		interval:    d,
		stopChannel: make(chan struct{}),
		done:        make(chan struct{}),
		subs:        make(map[int]chan Event),
	}
}

func (s *Scheduler) Queue() *Queue {
	return s.queue
}

// Start runs the tick loop until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go s.handleEvent(ctx)
	})
}

func (s *Scheduler) handleEvent(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			s.tick(now)
		case <-ctx.Done():
			return
		case <-s.stopChannel:
			return
		}
	}
}

// Stop ends the loop, drops the queued jobs and closes every subscription.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChannel)
		started := true
		s.startOnce.Do(func() { started = false })
		if started {
			<-s.done
		}
		s.queue.Close()

		s.subMu.Lock()
		for id, ch := range s.subs {
			close(ch)
			delete(s.subs, id)
		}
		s.subMu.Unlock()
	})
}

// Subscribe returns a channel of fire events and a func to cancel it.
// Events are dropped for a subscriber that is not keeping up.
func (s *Scheduler) Subscribe() (<-chan Event, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, 16)
	s.subs[id] = ch
	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			close(c)
			delete(s.subs, id)
		}
	}
}

func (s *Scheduler) tick(now time.Time) {
	for _, j := range s.queue.Due(now) {
		s.run(j, now)
		if !j.Reschedule(now) {
			logger.Info("job finished, no more fire time:", j.JobId, j.Name)
			continue
		}
		if err := s.queue.Push(j); err != nil {
			logger.Warn("reschedule failed:", j.JobId, err)
		}
	}
}

func (s *Scheduler) run(j *job.Job, now time.Time) {
	if j.Function != nil {
		f, id := j.Function, j.JobId
		go func() {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("job", id, "panicked:", err)
				}
			}()
			f()
		}()
	}
	s.publish(Event{JobId: j.JobId, Name: j.Name, At: now})
}

func (s *Scheduler) publish(e Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
