package webdavfs_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	webdavfs "github.com/fyears/webdav-fs"
	"github.com/fyears/webdav-fs/davtest"
)

func ExampleFS_Readdir() {
	client := davtest.NewMemClient()
	client.AddFile("/music/a.flac", []byte("AAAA"), time.Now())
	client.AddFile("/music/b.flac", []byte("BB"), time.Now())
	fsys := webdavfs.NewWithClient(client)

	done := make(chan struct{})
	fsys.Readdir("/music", func(err error, names []string) {
		for _, name := range names {
			fmt.Println(name)
		}
		close(done)
	})
	<-done
	// Output:
	// a.flac
	// b.flac
}

func newDirClient(t *testing.T) *davtest.MemClient {
	t.Helper()
	client := davtest.NewMemClient()
	mtime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	client.AddFile("/a.txt", []byte("0123456789"), mtime)
	client.AddDir("/sub")
	return client
}

// Readdir with the mode omitted and with the default mode spelled
// out must behave identically.
func TestReaddirDefaultMode(t *testing.T) {
	for _, explicit := range []bool{false, true} {
		client := newDirClient(t)
		fsys := webdavfs.NewWithClient(client)

		var (
			names []string
			err   error
		)
		if explicit {
			names, err = davtest.ReaddirNames(t, fsys, "/")
		} else {
			done := make(chan struct{})
			fsys.Readdir("/", webdavfs.ModeNode,
				func(e error, n []string) {
					err, names = e, n
					close(done)
				})
			<-done
		}
		if err != nil {
			t.Fatalf("Readdir(explicit=%v): %v", explicit, err)
		}
		want := []string{"a.txt", "sub"}
		if len(names) != len(want) {
			t.Fatalf("Readdir(explicit=%v) = %q, want %q",
				explicit, names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("Readdir(explicit=%v)[%d] = %q, want %q",
					explicit, i, names[i], want[i])
			}
		}
	}
}

func TestReaddirStatMode(t *testing.T) {
	fsys := webdavfs.NewWithClient(newDirClient(t))
	stats, err := davtest.ReaddirStats(t, fsys, "/")
	if err != nil {
		t.Fatalf("Readdir(stat): %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Readdir(stat) yielded %d entries, want 2",
			len(stats))
	}

	file, dir := stats[0], stats[1]
	if file.Name != "a.txt" || dir.Name != "sub" {
		t.Fatalf("entries = %q, %q; want a.txt, sub",
			file.Name, dir.Name)
	}
	if !file.IsFile() || file.IsDirectory() {
		t.Errorf("a.txt: IsFile() = %v, IsDirectory() = %v; "+
			"want true, false", file.IsFile(), file.IsDirectory())
	}
	if file.Size != 10 {
		t.Errorf("a.txt: Size = %d, want 10", file.Size)
	}
	wantMtime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).
		UnixMilli()
	if file.Mtime != wantMtime {
		t.Errorf("a.txt: Mtime = %d, want %d",
			file.Mtime, wantMtime)
	}
	if !dir.IsDirectory() || dir.IsFile() {
		t.Errorf("sub: IsDirectory() = %v, IsFile() = %v; "+
			"want true, false", dir.IsDirectory(), dir.IsFile())
	}
	if dir.Size != 0 {
		t.Errorf("sub: Size = %d, want 0", dir.Size)
	}
}

func TestReaddirUnknownMode(t *testing.T) {
	client := newDirClient(t)
	fsys := webdavfs.NewWithClient(client)

	type result struct {
		err   error
		names []string
	}
	ch := make(chan result, 1)
	fsys.Readdir("/", "weird-mode", func(err error, names []string) {
		ch <- result{err, names}
	})
	select {
	case res := <-ch:
		if res.err == nil {
			t.Fatal("Readdir(weird-mode) delivered no error")
		}
		if !errors.Is(res.err, webdavfs.ErrUnknownMode) {
			t.Errorf("error = %v, want ErrUnknownMode", res.err)
		}
		if res.names != nil {
			t.Errorf("names = %q, want nil", res.names)
		}
	case <-time.After(timeout):
		t.Fatal("callback not delivered")
	}
	if got := client.Calls("GetDirectoryContents"); got != 0 {
		t.Errorf("GetDirectoryContents ran %d times, want 0", got)
	}
}

func TestReaddirErrorPassthrough(t *testing.T) {
	client := newDirClient(t)
	boom := errors.New("propfind exploded")
	client.FailWith("GetDirectoryContents", boom)
	fsys := webdavfs.NewWithClient(client)

	_, err := davtest.ReaddirNames(t, fsys, "/")
	if err != boom {
		t.Errorf("Readdir error = %v, want the client's %v",
			err, boom)
	}
}
