package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// ErrQueueFull is returned by SubmitJob when the job queue has no room.
	ErrQueueFull = errors.New("job queue is full")
	// ErrStopped is returned by SubmitJob after Stop.
	ErrStopped = errors.New("dispatcher stopped")
)

// Job represents a unit of work to be executed.
type Job interface {
	Execute(ctx context.Context) error
	ID() string
}

// Worker pulls jobs from its own channel after registering it with the pool.
type Worker struct {
	ID         int
	WorkerPool chan chan Job
	JobChannel chan Job
	Quit       <-chan struct{}
	Wg         *sync.WaitGroup
	Pending    *sync.WaitGroup
	Logger     logrus.FieldLogger
}

// NewWorker creates a new Worker.
func NewWorker(id int, d *Dispatcher) Worker {
	return Worker{
		ID:         id,
		WorkerPool: d.WorkerPool,
		JobChannel: make(chan Job),
		Quit:       d.quit,
		Wg:         &d.wg,
		Pending:    &d.pending,
		Logger:     d.Logger.WithField("worker", id),
	}
}

// Start makes the Worker listen for jobs until Quit is closed.
func (w Worker) Start(ctx context.Context) {
	w.Wg.Add(1)
	go func() {
		defer w.Wg.Done()
		for {
			select {
			case w.WorkerPool <- w.JobChannel:
			case <-w.Quit:
				w.Logger.Debug("worker stopping")
				return
			}

			select {
			case job := <-w.JobChannel:
				w.run(ctx, job)
			case <-w.Quit:
				w.Logger.Debug("worker stopping")
				return
			}
		}
	}()
}

func (w Worker) run(ctx context.Context, job Job) {
	defer w.Pending.Done()
	log := w.Logger.WithField("job_id", job.ID())

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("job panicked: %v", r)
			}
		}()
		return job.Execute(ctx)
	}()
	if err != nil {
		log.WithError(err).Warn("job failed")
		return
	}
	log.Debug("job finished")
}

// Dispatcher manages a pool of workers and dispatches jobs to them.
type Dispatcher struct {
	MaxWorkers int
	WorkerPool chan chan Job
	JobQueue   chan Job
	Workers    []Worker
	Logger     logrus.FieldLogger

	wg       sync.WaitGroup // running workers
	pending  sync.WaitGroup // submitted jobs not yet finished or dropped
	quit     chan struct{}
	stopOnce sync.Once
}

// NewDispatcher creates a new Dispatcher. A nil logger uses the logrus
// standard logger.
func NewDispatcher(maxWorkers, jobQueueSize int, logger logrus.FieldLogger) *Dispatcher {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Dispatcher{
		MaxWorkers: maxWorkers,
		WorkerPool: make(chan chan Job, maxWorkers),
		JobQueue:   make(chan Job, jobQueueSize),
		Workers:    make([]Worker, 0, maxWorkers),
		Logger:     logger,
		quit:       make(chan struct{}),
	}
}

// Run starts the dispatcher and its workers. Jobs execute with ctx.
func (d *Dispatcher) Run(ctx context.Context) {
	d.Logger.WithField("workers", d.MaxWorkers).Debug("dispatcher starting")
	for i := 1; i <= d.MaxWorkers; i++ {
		worker := NewWorker(i, d)
		d.Workers = append(d.Workers, worker)
		worker.Start(ctx)
	}
	go d.dispatch()
}

// dispatch hands queued jobs to the next free worker.
func (d *Dispatcher) dispatch() {
	for {
		select {
		case job := <-d.JobQueue:
			var jobChannel chan Job
			select {
			case jobChannel = <-d.WorkerPool:
			case <-d.quit:
				d.drop(job)
				d.drain()
				return
			}
			select {
			case jobChannel <- job:
			case <-d.quit:
				d.drop(job)
				d.drain()
				return
			}
		case <-d.quit:
			d.drain()
			return
		}
	}
}

func (d *Dispatcher) drop(job Job) {
	d.Logger.WithField("job_id", job.ID()).Debug("dropping job on shutdown")
	d.pending.Done()
}

func (d *Dispatcher) drain() {
	for {
		select {
		case job := <-d.JobQueue:
			d.drop(job)
		default:
			return
		}
	}
}

// SubmitJob adds a job to the job queue without blocking.
func (d *Dispatcher) SubmitJob(job Job) error {
	select {
	case <-d.quit:
		return ErrStopped
	default:
	}

	d.pending.Add(1)
	select {
	case d.JobQueue <- job:
		return nil
	default:
		d.pending.Done()
		d.Logger.WithField("job_id", job.ID()).Warn("job queue full")
		return ErrQueueFull
	}
}

// Wait blocks until every submitted job has finished or been dropped.
func (d *Dispatcher) Wait() {
	d.pending.Wait()
}

// Stop shuts down the dispatcher and waits for workers to finish their
// current job. Queued jobs that never started are dropped.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.quit)
		d.wg.Wait()
		d.Logger.Debug("dispatcher stopped")
	})
}
