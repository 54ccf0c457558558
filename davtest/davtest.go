// Package davtest provides a conformance suite for
// [webdavfs.FS] adapters and an in-memory [webdavfs.Client] to back
// them in tests.
//
// Typical usage against a real server:
//
//	func TestMyServer(t *testing.T) {
//		fsys := webdavfs.New(serverURL)
//		davtest.Run(t, fsys)
//	}
//
// The suite exercises every operation through the callback surface,
// so it also validates the adapter's delivery contract: each
// callback must fire exactly once, off the caller's stack.
package davtest

import (
	"bytes"
	"io"
	"testing"
	"time"

	webdavfs "github.com/fyears/webdav-fs"
)

// timeout bounds each awaited callback. Remote-backed suites go
// through real HTTP, so this is generous.
const timeout = 30 * time.Second

// Run exercises fsys with a full create/read/list/rename/delete
// cycle under the /davtest directory, which must not exist yet.
func Run(t *testing.T, fsys *webdavfs.FS) {
	t.Helper()

	const (
		base  = "/davtest"
		hello = base + "/hello.txt"
		moved = base + "/moved.txt"
		sub   = base + "/sub"
	)
	content := []byte("hello from the conformance suite\n")

	if err := Mkdir(t, fsys, base); err != nil {
		t.Fatalf("Mkdir(%q): %v", base, err)
	}
	if err := Mkdir(t, fsys, sub); err != nil {
		t.Fatalf("Mkdir(%q): %v", sub, err)
	}
	if err := WriteFile(t, fsys, hello, content); err != nil {
		t.Fatalf("WriteFile(%q): %v", hello, err)
	}

	data, err := ReadFile(t, fsys, hello)
	if err != nil {
		t.Fatalf("ReadFile(%q): %v", hello, err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("ReadFile(%q) = %q, want %q", hello, data, content)
	}

	names, err := ReaddirNames(t, fsys, base)
	if err != nil {
		t.Fatalf("Readdir(%q): %v", base, err)
	}
	if got, want := len(names), 2; got != want {
		t.Fatalf("Readdir(%q) yielded %d entries (%q), want %d",
			base, got, names, want)
	}

	stats, err := ReaddirStats(t, fsys, base)
	if err != nil {
		t.Fatalf("Readdir(%q, stat): %v", base, err)
	}
	for _, s := range stats {
		switch s.Name {
		case "hello.txt":
			if !s.IsFile() || s.IsDirectory() {
				t.Errorf("%q: IsFile() = %v, IsDirectory() = %v",
					s.Name, s.IsFile(), s.IsDirectory())
			}
			if s.Size != int64(len(content)) {
				t.Errorf("%q: Size = %d, want %d",
					s.Name, s.Size, len(content))
			}
			if s.Mtime == 0 {
				t.Errorf("%q: Mtime = 0, want nonzero", s.Name)
			}
		case "sub":
			if !s.IsDirectory() || s.IsFile() {
				t.Errorf("%q: IsDirectory() = %v, IsFile() = %v",
					s.Name, s.IsDirectory(), s.IsFile())
			}
		default:
			t.Errorf("unexpected entry %q", s.Name)
		}
	}

	info, err := StatPath(t, fsys, hello)
	if err != nil {
		t.Fatalf("Stat(%q): %v", hello, err)
	}
	if info.Name != "hello.txt" || !info.IsFile() {
		t.Errorf("Stat(%q) = %+v, want file named hello.txt",
			hello, info)
	}

	testStreams(t, fsys, base)

	if err := Rename(t, fsys, hello, moved); err != nil {
		t.Fatalf("Rename(%q, %q): %v", hello, moved, err)
	}
	if _, err := StatPath(t, fsys, hello); err == nil {
		t.Errorf("Stat(%q) after rename succeeded, want error",
			hello)
	}
	if err := Unlink(t, fsys, moved); err != nil {
		t.Fatalf("Unlink(%q): %v", moved, err)
	}
	if err := Rmdir(t, fsys, sub); err != nil {
		t.Fatalf("Rmdir(%q): %v", sub, err)
	}
	cleanupStreams(t, fsys, base)
	if err := Rmdir(t, fsys, base); err != nil {
		t.Fatalf("Rmdir(%q): %v", base, err)
	}
}

func testStreams(t *testing.T, fsys *webdavfs.FS, base string) {
	t.Helper()

	name := base + "/alphabet.txt"
	alphabet := []byte("abcdefghijklmnopqrstuvwxyz")

	w := fsys.CreateWriteStream(name)
	if _, err := w.Write(alphabet); err != nil {
		t.Fatalf("write stream Write(): %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("write stream Close(): %v", err)
	}

	r := fsys.CreateReadStream(name)
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if err = r.Close(); err != nil {
		t.Fatalf("read stream Close(): %v", err)
	}
	if !bytes.Equal(got, alphabet) {
		t.Errorf("read stream = %q, want %q", got, alphabet)
	}

	r = fsys.CreateReadStream(name, webdavfs.WithRange(10, 20))
	got, err = io.ReadAll(r)
	if err != nil {
		t.Fatalf("ranged read stream: %v", err)
	}
	r.Close()
	if want := alphabet[10:21]; !bytes.Equal(got, want) {
		t.Errorf("ranged read stream = %q, want %q", got, want)
	}
}

func cleanupStreams(t *testing.T, fsys *webdavfs.FS, base string) {
	t.Helper()
	if err := Unlink(t, fsys, base+"/alphabet.txt"); err != nil {
		t.Fatalf("Unlink(alphabet.txt): %v", err)
	}
}

// The helpers below run one callback operation to completion and
// hand its outcome back to the test.

// Mkdir runs fsys.Mkdir and waits for its callback.
func Mkdir(t *testing.T, fsys *webdavfs.FS, path string) error {
	t.Helper()
	errc := make(chan error, 1)
	fsys.Mkdir(path, func(err error) { errc <- err })
	return waitErr(t, errc, "Mkdir")
}

// WriteFile runs fsys.WriteFile and waits for its callback.
func WriteFile(
	t *testing.T, fsys *webdavfs.FS, path string, data []byte,
) error {
	t.Helper()
	errc := make(chan error, 1)
	fsys.WriteFile(path, data, func(err error) { errc <- err })
	return waitErr(t, errc, "WriteFile")
}

// ReadFile runs fsys.ReadFile and waits for its callback.
func ReadFile(
	t *testing.T, fsys *webdavfs.FS, path string,
) ([]byte, error) {
	t.Helper()
	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	fsys.ReadFile(path, func(err error, data []byte) {
		ch <- result{data, err}
	})
	select {
	case res := <-ch:
		return res.data, res.err
	case <-time.After(timeout):
		t.Fatalf("ReadFile callback not delivered within %v",
			timeout)
		return nil, nil
	}
}

// ReaddirNames runs fsys.Readdir in name mode and waits for its
// callback.
func ReaddirNames(
	t *testing.T, fsys *webdavfs.FS, path string,
) ([]string, error) {
	t.Helper()
	type result struct {
		names []string
		err   error
	}
	ch := make(chan result, 1)
	fsys.Readdir(path, func(err error, names []string) {
		ch <- result{names, err}
	})
	select {
	case res := <-ch:
		return res.names, res.err
	case <-time.After(timeout):
		t.Fatalf("Readdir callback not delivered within %v",
			timeout)
		return nil, nil
	}
}

// ReaddirStats runs fsys.Readdir in stat mode and waits for its
// callback.
func ReaddirStats(
	t *testing.T, fsys *webdavfs.FS, path string,
) ([]*webdavfs.Stat, error) {
	t.Helper()
	type result struct {
		stats []*webdavfs.Stat
		err   error
	}
	ch := make(chan result, 1)
	fsys.Readdir(path, webdavfs.ModeStat,
		func(err error, stats []*webdavfs.Stat) {
			ch <- result{stats, err}
		})
	select {
	case res := <-ch:
		return res.stats, res.err
	case <-time.After(timeout):
		t.Fatalf("Readdir callback not delivered within %v",
			timeout)
		return nil, nil
	}
}

// StatPath runs fsys.Stat and waits for its callback.
func StatPath(
	t *testing.T, fsys *webdavfs.FS, path string,
) (*webdavfs.Stat, error) {
	t.Helper()
	type result struct {
		info *webdavfs.Stat
		err  error
	}
	ch := make(chan result, 1)
	fsys.Stat(path, func(err error, info *webdavfs.Stat) {
		ch <- result{info, err}
	})
	select {
	case res := <-ch:
		return res.info, res.err
	case <-time.After(timeout):
		t.Fatalf("Stat callback not delivered within %v", timeout)
		return nil, nil
	}
}

// Rename runs fsys.Rename and waits for its callback.
func Rename(
	t *testing.T, fsys *webdavfs.FS, oldPath, newPath string,
) error {
	t.Helper()
	errc := make(chan error, 1)
	fsys.Rename(oldPath, newPath, func(err error) { errc <- err })
	return waitErr(t, errc, "Rename")
}

// Unlink runs fsys.Unlink and waits for its callback.
func Unlink(t *testing.T, fsys *webdavfs.FS, path string) error {
	t.Helper()
	errc := make(chan error, 1)
	fsys.Unlink(path, func(err error) { errc <- err })
	return waitErr(t, errc, "Unlink")
}

// Rmdir runs fsys.Rmdir and waits for its callback.
func Rmdir(t *testing.T, fsys *webdavfs.FS, path string) error {
	t.Helper()
	errc := make(chan error, 1)
	fsys.Rmdir(path, func(err error) { errc <- err })
	return waitErr(t, errc, "Rmdir")
}

func waitErr(t *testing.T, errc <-chan error, op string) error {
	t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(timeout):
		t.Fatalf("%s callback not delivered within %v", op, timeout)
		return nil
	}
}
