package aescrypt

import (
	"fmt"
	"os"
	"testing"

	"github.com/absfs/absfs"
	"github.com/absfs/memfs"
)

func TestBatchEncryptDecryptIndependentJobs(t *testing.T) {
	fsys := newTestFS(t)
	for i := 0; i < 6; i++ {
		path := fmt.Sprintf("/file%d.txt", i)
		writeFile(t, fsys, path, []byte(fmt.Sprintf("payload number %d", i)))
	}

	jobs := make([]BatchJob, 6)
	for i := range jobs {
		jobs[i] = BatchJob{
			InPath:     fmt.Sprintf("/file%d.txt", i),
			OutPath:    fmt.Sprintf("/file%d.aes", i),
			Passphrase: "batch-pw",
		}
	}

	results := Batch(fsys, jobs, DefaultBufferSize, DefaultBatchConfig())
	if len(results) != len(jobs) {
		t.Fatalf("got %d results, want %d", len(results), len(jobs))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("job %d failed: %v", i, r.Err)
		}
		if r.Index != i {
			t.Fatalf("result %d carries index %d", i, r.Index)
		}
	}

	decryptJobs := make([]BatchJob, 6)
	for i := range decryptJobs {
		decryptJobs[i] = BatchJob{
			InPath:     fmt.Sprintf("/file%d.aes", i),
			OutPath:    fmt.Sprintf("/file%d.out", i),
			Passphrase: "batch-pw",
			Decrypt:    true,
		}
	}
	decResults := Batch(fsys, decryptJobs, DefaultBufferSize, DefaultBatchConfig())
	for i, r := range decResults {
		if r.Err != nil {
			t.Fatalf("decrypt job %d failed: %v", i, r.Err)
		}
		want := fmt.Sprintf("payload number %d", i)
		got := readFile(t, fsys, fmt.Sprintf("/file%d.out", i))
		if string(got) != want {
			t.Fatalf("job %d recovered %q, want %q", i, got, want)
		}
	}
}

func TestBatchOneFailureDoesNotAffectOthers(t *testing.T) {
	fsys := newTestFS(t)
	writeFile(t, fsys, "/good.txt", []byte("fine"))
	// /missing.txt deliberately does not exist.

	jobs := []BatchJob{
		{InPath: "/good.txt", OutPath: "/good.aes", Passphrase: "pw"},
		{InPath: "/missing.txt", OutPath: "/missing.aes", Passphrase: "pw"},
		{InPath: "/good.txt", OutPath: "/good2.aes", Passphrase: "pw"},
	}

	results := Batch(fsys, jobs, DefaultBufferSize, BatchConfig{MaxWorkers: 2, MinJobsForParallel: 1})
	if results[0].Err != nil {
		t.Fatalf("job 0 should have succeeded, got %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Fatal("job 1 should have failed (missing input)")
	}
	if results[2].Err != nil {
		t.Fatalf("job 2 should have succeeded, got %v", results[2].Err)
	}
}

func TestBatchSequentialBelowThreshold(t *testing.T) {
	fsys := newTestFS(t)
	writeFile(t, fsys, "/a.txt", []byte("aaa"))
	writeFile(t, fsys, "/b.txt", []byte("bbb"))

	jobs := []BatchJob{
		{InPath: "/a.txt", OutPath: "/a.aes", Passphrase: "pw"},
		{InPath: "/b.txt", OutPath: "/b.aes", Passphrase: "pw"},
	}

	// MinJobsForParallel above len(jobs) forces the sequential path.
	results := Batch(fsys, jobs, DefaultBufferSize, BatchConfig{MinJobsForParallel: 10})
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("job %d failed: %v", i, r.Err)
		}
	}
}

func TestBatchEmptyJobList(t *testing.T) {
	fsys := newTestFS(t)
	results := Batch(fsys, nil, DefaultBufferSize, DefaultBatchConfig())
	if len(results) != 0 {
		t.Fatalf("expected no results for an empty job list, got %d", len(results))
	}
}

// panicEncryptFS wraps a FileSystem and panics the first time OpenFile
// is called for the given path, to exercise Batch's panic recovery the
// way the teacher's panic_safety_test.go exercises its worker pool.
type panicEncryptFS struct {
	absfs.FileSystem
	panicPath string
	triggered bool
}

func (p *panicEncryptFS) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	if name == p.panicPath && !p.triggered {
		p.triggered = true
		panic("simulated panic during OpenFile")
	}
	return p.FileSystem.OpenFile(name, flag, perm)
}

func TestBatchRecoversWorkerPanic(t *testing.T) {
	base, err := memfs.NewFS()
	if err != nil {
		t.Fatalf("memfs.NewFS: %v", err)
	}
	writeFile(t, base, "/boom.txt", []byte("will panic"))
	writeFile(t, base, "/fine.txt", []byte("will succeed"))

	fsys := &panicEncryptFS{FileSystem: base, panicPath: "/boom.txt"}

	jobs := []BatchJob{
		{InPath: "/boom.txt", OutPath: "/boom.aes", Passphrase: "pw"},
		{InPath: "/fine.txt", OutPath: "/fine.aes", Passphrase: "pw"},
	}

	results := Batch(fsys, jobs, DefaultBufferSize, BatchConfig{MaxWorkers: 2, MinJobsForParallel: 1})
	if results[0].Err == nil {
		t.Fatal("expected the panicking job to surface as an error")
	}
	if results[1].Err != nil {
		t.Fatalf("the other job should be unaffected by job 0's panic, got %v", results[1].Err)
	}
}
