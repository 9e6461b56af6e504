package main

import (
	"os"

	"github.com/absfs/absfs"
	"github.com/schollz/progressbar/v3"
)

// progressFS wraps an absfs.FileSystem so that the single read-only
// file it expects to be opened during one Encrypt/Decrypt call reports
// its progress to a progress bar; every other method (and any other
// open mode) passes straight through. It exists purely to give the CLI
// something to report with, mirroring the progress-reporting reader the
// pack's rescale-int CLI wraps its transfers in.
type progressFS struct {
	absfs.FileSystem
	bar *progressbar.ProgressBar
}

func newProgressFS(fsys absfs.FileSystem, bar *progressbar.ProgressBar) *progressFS {
	return &progressFS{FileSystem: fsys, bar: bar}
}

func (p *progressFS) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	f, err := p.FileSystem.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	if flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		return f, nil
	}
	return &progressFile{File: f, bar: p.bar}, nil
}

// progressFile reports every successful Read to the progress bar; it
// is only ever used for the single input file an Encrypt/Decrypt call
// opens read-only.
type progressFile struct {
	absfs.File
	bar *progressbar.ProgressBar
}

func (f *progressFile) Read(b []byte) (int, error) {
	n, err := f.File.Read(b)
	if n > 0 {
		f.bar.Add(n)
	}
	return n, err
}
