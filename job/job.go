package job

import (
	"errors"
	"fmt"
	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/gorhill/cronexpr"
	"time"
)

var (
	ErrInvalidCron = errors.New("invalid cron expression")
	ErrNoNextRun   = errors.New("cron expression never fires again")
)

type Job struct {
	JobId    string    `json:"jobId" structs:"jobId"` // should be unique.
	Name     string    `json:"name,omitempty" structs:"name,omitempty"`
	Cron     string    `json:"cron" structs:"cron"`
	NextRun  time.Time `json:"nextRun" structs:"nextRun,omitnested"`
	Function func()    `json:"-" structs:"-"`

	expr *cronexpr.Expression
}

// Make parses cron and schedules the first run after now.
func Make(name string, cron string, f func()) (*Job, error) {
	return MakeAt(name, cron, f, time.Now())
}

func MakeAt(name string, cron string, f func(), from time.Time) (*Job, error) {
	expr, err := cronexpr.Parse(cron)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCron, err.Error())
	}
	j := &Job{
		JobId:    uuid.NewString(),
		Name:     name,
		Cron:     cron,
		Function: f,
		expr:     expr,
	}
	if !j.Reschedule(from) {
		return nil, ErrNoNextRun
	}
	return j, nil
}

// Reschedule moves NextRun to the first fire time after from. It returns
// false when the expression has no fire time left.
func (j *Job) Reschedule(from time.Time) bool {
	next := j.expr.Next(from)
	if next.IsZero() {
		return false
	}
	j.NextRun = next
	return true
}

// Due reports whether the job should have fired by now.
func (j *Job) Due(now time.Time) bool {
	return !j.NextRun.After(now)
}

func (j *Job) ToMap() map[string]any {
	return structs.Map(j)
}

// Compare orders jobs by their next fire time.
func Compare(a, b *Job) int {
	return a.NextRun.Compare(b.NextRun)
}
