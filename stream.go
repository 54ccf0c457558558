package webdavfs

import "io"

// A StreamOption configures one stream constructor call.
type StreamOption func(*streamConfig)

type streamConfig struct {
	headers map[string]string
	start   int64
	end     int64
	ranged  bool
}

// WithRange limits a read stream to the inclusive byte range
// [start, end].
func WithRange(start, end int64) StreamOption {
	return func(c *streamConfig) {
		c.start = start
		c.end = end
		c.ranged = true
	}
}

// WithRangeFrom limits a read stream to the bytes from start
// through end of file.
func WithRangeFrom(start int64) StreamOption {
	return func(c *streamConfig) {
		c.start = start
		c.end = -1
		c.ranged = true
	}
}

// WithHeaders adds headers to the single request backing the
// stream. The map is copied; later mutation has no effect.
func WithHeaders(headers map[string]string) StreamOption {
	return func(c *streamConfig) {
		if len(headers) == 0 {
			return
		}
		if c.headers == nil {
			c.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// clientOptions builds the client-shaped options for one call.
func clientOptions(opts []StreamOption) StreamOptions {
	var cfg streamConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var out StreamOptions
	if cfg.ranged {
		out.Range = &Range{Start: cfg.start, End: cfg.end}
	}
	out.Headers = cfg.headers
	return out
}

// CreateReadStream opens the remote file at path for reading.
// Analogous to: [os.Open], WebDAV GET.
//
// The stream is returned synchronously; no callback is involved.
// Transport failures, including a missing file, surface from Read.
// The caller must close the stream.
func (fsys *FS) CreateReadStream(
	path string, opts ...StreamOption,
) io.ReadCloser {
	return fsys.client.CreateReadStream(path, clientOptions(opts))
}

// CreateWriteStream opens the remote file at path for writing,
// creating it or replacing its contents.
// Analogous to: [os.Create], WebDAV PUT.
//
// The stream is returned synchronously; no callback is involved.
// The content is committed no later than Close, which reports the
// upload result. Range options are meaningless for writes and are
// ignored by the client.
func (fsys *FS) CreateWriteStream(
	path string, opts ...StreamOption,
) io.WriteCloser {
	return fsys.client.CreateWriteStream(path, clientOptions(opts))
}
