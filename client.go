package webdavfs

import "io"

// A Client performs the actual WebDAV protocol operations. The
// adapter treats it as a black box: it issues one client call per
// operation and passes any failure through to the caller unchanged.
//
// The two stream constructors return their stream synchronously and
// must report transport failures through the stream itself, not by
// panicking or blocking. All other methods block until the remote
// operation settles.
type Client interface {
	// CreateReadStream opens the named remote file for reading.
	CreateReadStream(path string, opts StreamOptions) io.ReadCloser

	// CreateWriteStream opens the named remote file for writing.
	// The content is committed no later than Close, which reports
	// the upload result.
	CreateWriteStream(path string, opts StreamOptions) io.WriteCloser

	// CreateDirectory creates the named collection.
	CreateDirectory(path string) error

	// GetDirectoryContents lists the entries of the named
	// collection, excluding the collection itself.
	GetDirectoryContents(path string) ([]RemoteStat, error)

	// GetFileContents fetches the named file. The format is
	// FormatText or FormatBinary and selects the caller-side
	// representation of the content.
	GetFileContents(path string, format string) ([]byte, error)

	// PutFileContents replaces the named file with data, using the
	// client's default content format.
	PutFileContents(path string, data []byte) error

	// MoveFile moves or renames a file or collection, replacing any
	// existing destination.
	MoveFile(oldPath, newPath string) error

	// DeleteFile removes the named file or collection.
	DeleteFile(path string) error

	// Stat describes the named entry.
	Stat(path string) (RemoteStat, error)
}

// Remote entry type discriminators as reported by [RemoteStat.Type].
const (
	TypeDirectory = "directory"
	TypeFile      = "file"
)

// RemoteStat is the raw stat record for one remote entry, in the
// shape the WebDAV property set provides it. LastMod is the
// getlastmodified timestamp string, not a parsed time; Size is zero
// when the server omits getcontentlength. Use [Stat] for the
// caller-facing view.
type RemoteStat struct {
	Filename string // full remote path
	Basename string
	LastMod  string // RFC timestamp string, may be empty
	Size     int64
	Type     string // TypeDirectory or TypeFile
	Mime     string
	ETag     string
}

// A Range selects an inclusive byte range of a remote file. End < 0
// means "through end of file".
type Range struct {
	Start int64
	End   int64
}

// StreamOptions carry per-call stream settings in the client's
// shape, built fresh for each call by the adapter's option
// normalization and never retained.
type StreamOptions struct {
	Range   *Range
	Headers map[string]string
}
