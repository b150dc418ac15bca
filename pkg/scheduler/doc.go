// Package scheduler implements the worker pool used to run instance suites in
// parallel.
//
// Each configured instance is submitted as one unit of work. The pool size
// bounds how many instances are driven at the same time (one browser page per
// worker); the rest wait in FIFO order.
//
//	┌──────────────────────────────────────────────────────────────┐
//	│                        Scheduler[T]                          │
//	│                                                              │
//	│   AddWork("staging", fn) ──► work queue ──► dispatch()       │
//	│                                   │                          │
//	│                    ┌──────────────┼──────────────┐           │
//	│                    ▼              ▼              ▼           │
//	│               ┌────────┐     ┌────────┐     ┌────────┐       │
//	│               │worker 1│     │worker 2│     │worker N│       │
//	│               └────────┘     └────────┘     └────────┘       │
//	│                    │                                         │
//	│                    ▼                                         │
//	│            Future[Result[T]] ◄── one result per work         │
//	└──────────────────────────────────────────────────────────────┘
//
// # Futures
//
// AddWork returns immediately with a Future. The result arrives exactly once on
// C(); Wait(ctx) is the blocking form. Stop() cancels the context handed to the
// work function.
//
//	future := sched.AddWork(baseURL, func(ctx context.Context) (models.InstanceRun, error) {
//	    return runner.Run(ctx, baseURL)
//	})
//	res, err := future.Wait(ctx)
//
// # Panics
//
// A panicking work function is recovered, logged and reported as an error
// result; the worker goes back to the pool.
//
// # Cancellation and shutdown
//
// Every work context derives from the parent context given to NewScheduler, so
// an interrupted CLI run cancels all instances. Close() cancels the main
// context, waits for in-flight work and is idempotent. AddWork after Close
// yields a context.Canceled result.
package scheduler
