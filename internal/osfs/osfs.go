// Package osfs adapts the os package to the absfs.FileSystem interface,
// generalizing the osTestFS helper the teacher package hand-rolled for
// its own tests (encryptfs_test.go) into a real, production adapter so
// the core codec's EncryptFile/DecryptFile convenience wrappers have
// something to call Encrypt/Decrypt with besides an in-memory
// filesystem.
package osfs

import (
	"os"
	"time"

	"github.com/absfs/absfs"
)

// FS implements absfs.FileSystem by delegating directly to the os
// package; paths are passed through unchanged.
type FS struct {
	cwd string
}

// New returns an FS rooted at the process's current working directory.
func New() *FS {
	wd, err := os.Getwd()
	if err != nil {
		wd = "/"
	}
	return &FS{cwd: wd}
}

func (fs *FS) Separator() uint8     { return os.PathSeparator }
func (fs *FS) ListSeparator() uint8 { return os.PathListSeparator }

func (fs *FS) Chdir(dir string) error {
	if err := os.Chdir(dir); err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	fs.cwd = wd
	return nil
}

func (fs *FS) Getwd() (string, error) { return os.Getwd() }
func (fs *FS) TempDir() string        { return os.TempDir() }

func (fs *FS) Open(name string) (absfs.File, error) {
	return fs.OpenFile(name, os.O_RDONLY, 0)
}

func (fs *FS) Create(name string) (absfs.File, error) {
	return fs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
}

func (fs *FS) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &file{f}, nil
}

func (fs *FS) Mkdir(name string, perm os.FileMode) error    { return os.Mkdir(name, perm) }
func (fs *FS) MkdirAll(name string, perm os.FileMode) error { return os.MkdirAll(name, perm) }
func (fs *FS) Remove(name string) error                     { return os.Remove(name) }
func (fs *FS) RemoveAll(path string) error                  { return os.RemoveAll(path) }
func (fs *FS) Rename(oldpath, newpath string) error          { return os.Rename(oldpath, newpath) }
func (fs *FS) Stat(name string) (os.FileInfo, error)         { return os.Stat(name) }
func (fs *FS) Chmod(name string, mode os.FileMode) error     { return os.Chmod(name, mode) }

func (fs *FS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}

func (fs *FS) Chown(name string, uid, gid int) error { return os.Chown(name, uid, gid) }
func (fs *FS) Truncate(name string, size int64) error { return os.Truncate(name, size) }

// file adapts *os.File to absfs.File. os.File already implements every
// method absfs.File requires (Read, Write, Seek, Close, Name, Sync,
// Stat, Truncate, ReadAt, WriteAt, WriteString, Readdir, Readdirnames)
// with identical signatures, so embedding is enough to satisfy the
// interface.
type file struct {
	*os.File
}
