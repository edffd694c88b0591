package hashfinder

import (
	"fmt"
	"sync"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// A fixed pool of goroutines that run submitted jobs and gather whatever those jobs collect into a
// single buffer, which is handed out one item at a time through Next.

// Job is one unit of work. It reports each match through collect, which is safe to call from any
// worker.
type Job func(collect func(Match))

// Executor runs jobs in parallel and streams whatever they collect. Collector is its only
// implementation.
type Executor interface {
	Sequence
	Execute(job Job) error
	Seal()
}

// Collector owns the worker goroutines and the shared match buffer. Workers are never joined.
// They exit on their own once the collector is exhausted, has failed, or is closed; after Close
// any in-flight job finishes first, so at most one search's worth of workers outlives its
// consumer.
type Collector struct {
	jobs chan Job
	quit chan struct{}
	log  *Logger

	mu       sync.Mutex
	ready    *sync.Cond
	items    []Match
	pending  int /* jobs submitted but not yet finished */
	sealed   bool
	closed   bool
	err      error
	halt     sync.Once
}

// NewCollector starts exactly threads workers, each blocked until a job arrives. Execute does not
// block while fewer than backlog jobs are waiting to be picked up.
func NewCollector(threads, backlog int, log *Logger) *Collector {
	if threads < 1 {
		threads = 1
	}
	if backlog < 0 {
		backlog = 0
	}
	if log == nil {
		log = NoopLogger()
	}
	c := &Collector{
		jobs: make(chan Job, backlog),
		quit: make(chan struct{}),
		log:  log,
	}
	c.ready = sync.NewCond(&c.mu)
	c.initWorkers(threads)
	return c
}

func (c *Collector) initWorkers(threads int) {
	for i := 0; i < threads; i++ {
		go func(log *Logger) {
			for {
				select {
				case <-c.quit:
					return
				case job := <-c.jobs:
					select {
					case <-c.quit: /* Abandoned while this job sat in the queue. */
						return
					default:
					}
					c.run(job, log)
				}
			}
		}(c.log.WithWorker(i))
	}
}

func (c *Collector) run(job Job, log *Logger) {
	start := time.Now()
	var failure error
	defer func() {
		if r := recover(); r != nil {
			failure = fmt.Errorf("%w: %v", ErrWorkerFailed, r)
		}
		c.mu.Lock()
		c.pending--
		if failure != nil && c.err == nil {
			c.err = failure
		}
		log.LogUnit(time.Since(start), c.pending, failure)
		if c.err != nil || (c.sealed && c.pending == 0) {
			c.stop()
		}
		c.ready.Broadcast()
		c.mu.Unlock()
	}()
	job(c.collect)
}

func (c *Collector) collect(m Match) {
	c.mu.Lock()
	if !c.closed {
		c.items = append(c.items, m)
		c.ready.Signal()
	}
	c.mu.Unlock()
}

// Execute queues job for the next idle worker, blocking while the backlog is full.
func (c *Collector) Execute(job Job) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err := c.err; err != nil {
		c.mu.Unlock()
		return err
	}
	c.pending++
	c.mu.Unlock()

	select {
	case c.jobs <- job:
		return nil
	case <-c.quit:
		return ErrClosed
	}
}

// Seal declares that Execute will not be called again, which lets Next report ErrExhausted once
// every job has finished.
func (c *Collector) Seal() {
	c.mu.Lock()
	c.sealed = true
	if c.pending == 0 {
		c.stop()
	}
	c.ready.Broadcast()
	c.mu.Unlock()
}

// Next blocks until a match is available and removes it from the buffer. It returns
// ErrWorkerFailed after any job panicked, ErrExhausted once a sealed collector has nothing left
// to produce, and ErrClosed after Close.
func (c *Collector) Next() (Match, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		switch {
		case c.err != nil:
			return Match{}, c.err
		case len(c.items) > 0:
			m := c.items[0]
			c.items[0] = Match{}
			c.items = c.items[1:]
			return m, nil
		case c.closed:
			return Match{}, ErrClosed
		case c.sealed && c.pending == 0:
			return Match{}, ErrExhausted
		}
		c.ready.Wait()
	}
}

// Close abandons the collector. Queued jobs are dropped and running jobs finish undisturbed;
// matches they collect afterwards are never read.
func (c *Collector) Close() {
	c.mu.Lock()
	c.closed = true
	c.items = nil
	c.stop()
	c.ready.Broadcast()
	c.mu.Unlock()
}

/* stop releases every idle worker; c.mu must be held. */
func (c *Collector) stop() {
	c.halt.Do(func() { close(c.quit) })
}

// Pending returns the number of jobs submitted but not yet finished.
func (c *Collector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Buffered returns the number of matches waiting to be pulled.
func (c *Collector) Buffered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
