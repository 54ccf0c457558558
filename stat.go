package webdavfs

import (
	"net/http"
	"path"
	"time"
)

// A Stat describes one remote entry in the shape callers of a
// conventional stat call expect: a base name, a size, a millisecond
// modification time, and two type queries.
type Stat struct {
	// Name is the entry's base name, never a full path.
	Name string

	// Size is the entry size in bytes, zero when the remote record
	// omits it.
	Size int64

	// Mtime is the modification time in milliseconds since the
	// Unix epoch, zero when the remote timestamp is absent or
	// unparseable.
	Mtime int64

	kind string
}

// IsDirectory reports whether the entry is a collection.
func (s *Stat) IsDirectory() bool { return s.kind == TypeDirectory }

// IsFile reports whether the entry is a regular file.
func (s *Stat) IsFile() bool { return s.kind == TypeFile }

// newStat normalizes a raw remote record.
func newStat(rs RemoteStat) *Stat {
	name := rs.Basename
	if name == "" && rs.Filename != "" {
		name = path.Base(rs.Filename)
	}
	return &Stat{
		Name:  name,
		Size:  rs.Size,
		Mtime: parseModTime(rs.LastMod),
		kind:  rs.Type,
	}
}

// parseModTime parses a WebDAV getlastmodified string. Servers emit
// the HTTP date formats almost universally; RFC 3339 covers the
// rest.
func parseModTime(lastMod string) int64 {
	if lastMod == "" {
		return 0
	}
	if t, err := http.ParseTime(lastMod); err == nil {
		return t.UnixMilli()
	}
	if t, err := time.Parse(time.RFC3339, lastMod); err == nil {
		return t.UnixMilli()
	}
	return 0
}

// Stat describes the remote entry at path.
// Analogous to: [os.Stat], stat, WebDAV PROPFIND depth 0.
//
// On success cb receives (nil, info); on failure it receives the
// client's error unchanged. A nil cb discards the result.
func (fsys *FS) Stat(path string, cb StatCallback) {
	if cb == nil {
		cb = func(error, *Stat) {}
	}
	deliver(func() {
		rs, err := fsys.client.Stat(path)
		if err != nil {
			cb(err, nil)
			return
		}
		cb(nil, newStat(rs))
	})
}
