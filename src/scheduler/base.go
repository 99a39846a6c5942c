package scheduler

import (
	"github.com/robfig/cron/v3"
)

// ScheduledTask runs a function on a cron schedule until stopped. The worker
// uses it for the token expiry sweep.
type ScheduledTask struct {
	runner *cron.Cron
	entry  cron.EntryID
	done   chan struct{}
}

func NewScheduledTask(spec string, fn func()) (*ScheduledTask, error) {
	runner := cron.New()
	task := &ScheduledTask{
		runner: runner,
		done:   make(chan struct{}),
	}

	entry, err := runner.AddFunc(spec, func() {
		select {
		case <-task.done:
		default:
			fn()
		}
	})
	if err != nil {
		return nil, err
	}

	task.entry = entry
	runner.Start()
	return task, nil
}

// Stop removes the scheduled entry; a run already in flight finishes.
func (t *ScheduledTask) Stop() {
	t.runner.Remove(t.entry)
	close(t.done)
}
