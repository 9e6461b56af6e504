package aescrypt

import (
	"fmt"
	"runtime"

	"github.com/absfs/absfs"
)

// BatchJob describes one independent encrypt-or-decrypt unit of work to
// run as part of a Batch call.
type BatchJob struct {
	InPath     string
	OutPath    string
	Passphrase string
	Decrypt    bool // if false, encrypt
}

// BatchResult carries the outcome of a single BatchJob, located back to
// its job by index so callers can correlate results with the slice they
// submitted.
type BatchResult struct {
	Index int
	Job   BatchJob
	Err   error
}

// BatchConfig controls how many jobs run concurrently.
type BatchConfig struct {
	// MaxWorkers is the maximum number of worker goroutines. If 0,
	// defaults to runtime.NumCPU().
	MaxWorkers int

	// MinJobsForParallel is the minimum number of jobs before worker
	// goroutines are spun up at all; below this, jobs run sequentially
	// on the calling goroutine. Defaults to 4 when zero.
	MinJobsForParallel int
}

// DefaultBatchConfig returns the default batch concurrency configuration.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxWorkers:         runtime.NumCPU(),
		MinJobsForParallel: 4,
	}
}

// Batch runs every job in jobs against fsys using bufferSize, honoring
// cfg's concurrency limits. Every job's failure is independent: a
// failing job does not cancel the others, and every job gets exactly
// one BatchResult, in the same order as jobs. A worker goroutine that
// panics while processing a job is recovered and the panic is reported
// as that job's error rather than crashing the batch.
func Batch(fsys absfs.FileSystem, jobs []BatchJob, bufferSize int, cfg BatchConfig) []BatchResult {
	results := make([]BatchResult, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	run := func(i int) {
		defer func() {
			if r := recover(); r != nil {
				results[i] = BatchResult{Index: i, Job: jobs[i], Err: fmt.Errorf("panic in batch worker: %v", r)}
			}
		}()
		job := jobs[i]
		var err error
		if job.Decrypt {
			err = Decrypt(fsys, job.InPath, job.OutPath, job.Passphrase, bufferSize)
		} else {
			err = Encrypt(fsys, job.InPath, job.OutPath, job.Passphrase, bufferSize)
		}
		results[i] = BatchResult{Index: i, Job: job, Err: err}
	}

	minParallel := cfg.MinJobsForParallel
	if minParallel <= 0 {
		minParallel = 4
	}
	if len(jobs) < minParallel {
		for i := range jobs {
			run(i)
		}
		return results
	}

	numWorkers := cfg.MaxWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(jobs) {
		numWorkers = len(jobs)
	}

	jobChan := make(chan int, len(jobs))
	done := make(chan struct{})

	for w := 0; w < numWorkers; w++ {
		go func() {
			for i := range jobChan {
				run(i)
			}
			done <- struct{}{}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	for w := 0; w < numWorkers; w++ {
		<-done
	}

	return results
}
