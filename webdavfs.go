// Package webdavfs presents a callback-style filesystem surface over
// a remote WebDAV server.
//
// Package webdavfs adapts a [Client], by default one backed by
// [github.com/studio-b12/gowebdav], to the traditional
// callback-based filesystem calling convention: each operation takes
// a remote path and a trailing callback invoked with (error) or
// (nil, result). The two stream constructors return their stream
// synchronously instead; stream failures surface through the
// stream's own Read/Write/Close error channel.
//
// Every callback is delivered asynchronously: it runs on its own
// goroutine and never on the stack of the call that registered it,
// even when the outcome is already known. Callers can rely on an
// operation returning before its callback fires.
//
//	fsys := webdavfs.New("https://dav.example.com",
//		webdavfs.WithBasicAuth("user", "pass"))
//	done := make(chan error, 1)
//	fsys.ReadFile("/notes.txt", func(err error, data []byte) {
//		if err == nil {
//			fmt.Printf("%s", data)
//		}
//		done <- err
//	})
//	err := <-done
//
// The adapter owns no state beyond its client handle: no caching, no
// retries, no open-handle table. Remote failures pass through to the
// callback untouched. Concurrent calls on one FS are safe; each
// issues an independent request.
package webdavfs

import "net/http"

// TypeKey identifies FS values produced by this package. Composing
// tools that accept several filesystem flavors can use it to detect
// a WebDAV-backed adapter. It is metadata only.
const TypeKey = "webdav-fs"

// FS adapts a remote WebDAV client to a callback-style filesystem
// surface.
type FS struct {
	client Client
}

// An Option configures the connection made by New.
type Option func(*config)

type config struct {
	username    string
	password    string
	tokenType   string
	accessToken string
	transport   http.RoundTripper
	headers     map[string]string
}

// WithBasicAuth authenticates every request with HTTP basic auth.
func WithBasicAuth(username, password string) Option {
	return func(c *config) {
		c.username = username
		c.password = password
	}
}

// WithToken authenticates every request with an OAuth bearer-style
// Authorization header built from tokenType and accessToken.
func WithToken(tokenType, accessToken string) Option {
	return func(c *config) {
		c.tokenType = tokenType
		c.accessToken = accessToken
	}
}

// WithTransport overrides the HTTP transport used for all requests,
// e.g. to supply a custom TLS configuration or proxy.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *config) {
		c.transport = rt
	}
}

// WithHeader adds a header to every request made by the adapter.
func WithHeader(key, value string) Option {
	return func(c *config) {
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		c.headers[key] = value
	}
}

// New returns an FS talking to the WebDAV server at endpoint.
// Construction performs no I/O; the first operation does.
func New(endpoint string, opts ...Option) *FS {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewWithClient(newDavClient(endpoint, cfg))
}

// NewWithClient returns an FS backed by a caller-supplied client.
// This is the seam for composing tools and for tests that substitute
// an in-memory client.
func NewWithClient(c Client) *FS {
	return &FS{client: c}
}

// Type reports the adapter flavor marker, [TypeKey].
func (fsys *FS) Type() string { return TypeKey }
