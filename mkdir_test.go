package webdavfs_test

import (
	"errors"
	"testing"

	webdavfs "github.com/fyears/webdav-fs"
	"github.com/fyears/webdav-fs/davtest"
)

func TestMkdir(t *testing.T) {
	client := davtest.NewMemClient()
	fsys := webdavfs.NewWithClient(client)

	if err := davtest.Mkdir(t, fsys, "/d"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if got := client.Calls("CreateDirectory"); got != 1 {
		t.Errorf("CreateDirectory ran %d times, want 1", got)
	}
	info, err := davtest.StatPath(t, fsys, "/d")
	if err != nil {
		t.Fatalf("Stat after Mkdir: %v", err)
	}
	if !info.IsDirectory() {
		t.Errorf("IsDirectory() = false, want true")
	}
}

func TestMkdirErrorPassthrough(t *testing.T) {
	client := davtest.NewMemClient()
	boom := errors.New("mkcol exploded")
	client.FailWith("CreateDirectory", boom)
	fsys := webdavfs.NewWithClient(client)

	if err := davtest.Mkdir(t, fsys, "/d"); err != boom {
		t.Errorf("Mkdir error = %v, want the client's %v",
			err, boom)
	}
	if got := client.Calls("CreateDirectory"); got != 1 {
		t.Errorf("CreateDirectory ran %d times, want 1", got)
	}
}
