package webdavfs_test

import (
	"errors"
	"testing"
	"time"

	webdavfs "github.com/fyears/webdav-fs"
	"github.com/fyears/webdav-fs/davtest"
)

// writeFileWith runs WriteFile with the given optional arguments and
// waits for the callback.
func writeFileWith(
	t *testing.T, fsys *webdavfs.FS, path string, data []byte,
	args ...any,
) error {
	t.Helper()
	errc := make(chan error, 1)
	args = append(args, func(err error) { errc <- err })
	fsys.WriteFile(path, data, args...)
	select {
	case err := <-errc:
		return err
	case <-time.After(timeout):
		t.Fatal("WriteFile callback not delivered")
		return nil
	}
}

func TestWriteFile(t *testing.T) {
	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"Text", []byte("plain text payload")},
		{"Binary", []byte{0x00, 0xff, 0x10, 0x80}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			client := davtest.NewMemClient()
			fsys := webdavfs.NewWithClient(client)

			if err := writeFileWith(
				t, fsys, "/f.bin", tc.data,
			); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if got := client.Calls("PutFileContents"); got != 1 {
				t.Errorf("PutFileContents ran %d times, want 1",
					got)
			}
			got, err := davtest.ReadFile(t, fsys, "/f.bin")
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if string(got) != string(tc.data) {
				t.Errorf("stored %q, want %q", got, tc.data)
			}
		})
	}
}

// The encoding argument is accepted but, matching the historical
// behavior of this interface, never reaches the client: the write
// goes through the plain PutFileContents path for every encoding.
// This test pins the gap; if the encoding is ever wired through, it
// should fail and force a deliberate decision.
func TestWriteFileEncodingAcceptedNotForwarded(t *testing.T) {
	for _, encoding := range []string{"text", "utf8", "binary"} {
		client := davtest.NewMemClient()
		fsys := webdavfs.NewWithClient(client)

		err := writeFileWith(
			t, fsys, "/f.txt", []byte("data"), encoding)
		if err != nil {
			t.Fatalf("WriteFile(%q): %v", encoding, err)
		}
		if got := client.Calls("PutFileContents"); got != 1 {
			t.Errorf("WriteFile(%q): PutFileContents ran %d "+
				"times, want 1", encoding, got)
		}
		if got := client.LastFormat(); got != "" {
			t.Errorf("WriteFile(%q): client saw a content "+
				"format %q, want none", encoding, got)
		}
	}
}

func TestWriteFileErrorPassthrough(t *testing.T) {
	client := davtest.NewMemClient()
	boom := errors.New("put exploded")
	client.FailWith("PutFileContents", boom)
	fsys := webdavfs.NewWithClient(client)

	if err := writeFileWith(
		t, fsys, "/f.txt", []byte("x"),
	); err != boom {
		t.Errorf("WriteFile error = %v, want the client's %v",
			err, boom)
	}
}
