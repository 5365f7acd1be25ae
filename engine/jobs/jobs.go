package jobs

import (
	"errors"
	"sync"

	"github.com/spaghettifunk/starlet/engine/core"
)

// Job is a unit of work run on one of the workers. OnComplete or OnFailure
// is called on the worker once Run returns.
type Job struct {
	Run        func() error
	OnComplete func()
	OnFailure  func(err error)

	done func()
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan Job
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

var ErrNoWorkers = errors.New("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = errors.New("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job, channelSize),
	}
	js.start()
	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				run(job)
			}
		}()
	}
}

func run(job Job) {
	if job.done != nil {
		defer job.done()
	}
	if err := job.Run(); err != nil {
		core.LogError("job failed: %s", err)
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
		return
	}
	if job.OnComplete != nil {
		job.OnComplete()
	}
}

// Shutdown waits for queued jobs to finish and stops the workers.
func (js *JobSystem) Shutdown() error {
	js.closeOnce.Do(func() {
		close(js.jobQueue)
	})
	js.wg.Wait()
	return nil
}

// Submit queues a job, blocking while the queue is full.
func (js *JobSystem) Submit(job Job) {
	js.jobQueue <- job
}

// RunAll runs every task on the workers and waits for all of them. The
// returned slice holds the error of each task by position.
func (js *JobSystem) RunAll(tasks []func() error) []error {
	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		i := i
		js.Submit(Job{
			Run:       task,
			OnFailure: func(err error) { errs[i] = err },
			done:      wg.Done,
		})
	}
	wg.Wait()
	return errs
}
