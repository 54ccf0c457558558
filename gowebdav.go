package webdavfs

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/studio-b12/gowebdav"
)

// davClient is the default Client, backed by gowebdav. Stat, listing
// and whole-file transfers delegate to the gowebdav client; streams
// carrying per-call headers issue the GET/PUT directly because
// gowebdav has no per-request header hook.
type davClient struct {
	dav  *gowebdav.Client
	root string
	cfg  config
	http *http.Client
}

var _ Client = (*davClient)(nil)

func newDavClient(endpoint string, cfg config) *davClient {
	dav := gowebdav.NewClient(endpoint, cfg.username, cfg.password)
	if cfg.transport != nil {
		dav.SetTransport(cfg.transport)
	}
	for k, v := range cfg.headers {
		dav.SetHeader(k, v)
	}
	if cfg.accessToken != "" {
		dav.SetHeader("Authorization", bearer(cfg))
	}
	return &davClient{
		dav:  dav,
		root: strings.TrimRight(endpoint, "/"),
		cfg:  cfg,
		http: &http.Client{Transport: cfg.transport},
	}
}

func bearer(cfg config) string {
	tokenType := cfg.tokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return tokenType + " " + cfg.accessToken
}

func (c *davClient) CreateDirectory(p string) error {
	return c.dav.Mkdir(p, 0755)
}

func (c *davClient) GetDirectoryContents(
	dir string,
) ([]RemoteStat, error) {
	infos, err := c.dav.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]RemoteStat, 0, len(infos))
	for _, info := range infos {
		name := path.Base(info.Name())
		entries = append(entries,
			remoteStat(path.Join(dir, name), info))
	}
	return entries, nil
}

func (c *davClient) GetFileContents(
	p string, format string,
) ([]byte, error) {
	// Both formats carry the raw bytes; the format selects the
	// caller-side representation. Anything else is rejected here,
	// as the protocol client would.
	if format != FormatText && format != FormatBinary {
		return nil, fmt.Errorf(
			"unknown file content format: %q", format)
	}
	return c.dav.Read(p)
}

func (c *davClient) PutFileContents(p string, data []byte) error {
	return c.dav.Write(p, data, 0644)
}

func (c *davClient) MoveFile(oldPath, newPath string) error {
	return c.dav.Rename(oldPath, newPath, true)
}

func (c *davClient) DeleteFile(p string) error {
	return c.dav.Remove(p)
}

func (c *davClient) Stat(p string) (RemoteStat, error) {
	info, err := c.dav.Stat(p)
	if err != nil {
		return RemoteStat{}, err
	}
	return remoteStat(p, info), nil
}

// remoteStat shapes a gowebdav stat result into the raw record the
// adapter consumes.
func remoteStat(fullPath string, info os.FileInfo) RemoteStat {
	rs := RemoteStat{
		Filename: fullPath,
		Basename: path.Base(fullPath),
		Size:     info.Size(),
		Type:     TypeFile,
	}
	if info.IsDir() {
		rs.Type = TypeDirectory
	}
	if !info.ModTime().IsZero() {
		rs.LastMod = info.ModTime().UTC().Format(http.TimeFormat)
	}
	if f, ok := info.(*gowebdav.File); ok {
		rs.Mime = f.ContentType()
		rs.ETag = f.ETag()
	}
	return rs
}

// CreateReadStream returns a lazy stream: the GET is issued on the
// first Read so the constructor can return synchronously and report
// failures through the stream itself.
func (c *davClient) CreateReadStream(
	p string, opts StreamOptions,
) io.ReadCloser {
	return &readStream{open: func() (io.ReadCloser, error) {
		return c.openRead(p, opts)
	}}
}

func (c *davClient) openRead(
	p string, opts StreamOptions,
) (io.ReadCloser, error) {
	if len(opts.Headers) > 0 {
		return c.rawRead(p, opts)
	}
	if r := opts.Range; r != nil {
		var length int64
		if r.End >= 0 {
			length = r.End - r.Start + 1
		}
		return c.dav.ReadStreamRange(p, r.Start, length)
	}
	return c.dav.ReadStream(p)
}

// CreateWriteStream pipes writes into one PUT running on its own
// goroutine. Close reports the upload result.
func (c *davClient) CreateWriteStream(
	p string, opts StreamOptions,
) io.WriteCloser {
	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		var err error
		if len(opts.Headers) > 0 {
			err = c.rawWrite(p, pr, opts.Headers)
		} else {
			err = c.dav.WriteStream(p, pr, 0644)
		}
		pr.CloseWithError(err)
		done <- err
	}()
	return &writeStream{pw: pw, done: done}
}

// rawRead issues a GET outside gowebdav so per-call headers and the
// range can ride on the request.
func (c *davClient) rawRead(
	p string, opts StreamOptions,
) (io.ReadCloser, error) {
	req, err := http.NewRequest(http.MethodGet, c.url(p), nil)
	if err != nil {
		return nil, err
	}
	c.prepare(req, opts.Headers)
	if r := opts.Range; r != nil {
		if r.End >= 0 {
			req.Header.Set("Range", fmt.Sprintf(
				"bytes=%d-%d", r.Start, r.End))
		} else {
			req.Header.Set("Range", fmt.Sprintf(
				"bytes=%d-", r.Start))
		}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("get %s: %s", p, resp.Status)
	}
	return resp.Body, nil
}

// rawWrite issues a PUT outside gowebdav, for the same reason as
// rawRead.
func (c *davClient) rawWrite(
	p string, body io.Reader, headers map[string]string,
) error {
	req, err := http.NewRequest(http.MethodPut, c.url(p), body)
	if err != nil {
		return err
	}
	c.prepare(req, headers)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("put %s: %s", p, resp.Status)
	}
	return nil
}

func (c *davClient) prepare(
	req *http.Request, headers map[string]string,
) {
	for k, v := range c.cfg.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if c.cfg.accessToken != "" {
		req.Header.Set("Authorization", bearer(c.cfg))
	} else if c.cfg.username != "" || c.cfg.password != "" {
		req.SetBasicAuth(c.cfg.username, c.cfg.password)
	}
}

func (c *davClient) url(p string) string {
	esc := (&url.URL{Path: p}).EscapedPath()
	if !strings.HasPrefix(esc, "/") {
		esc = "/" + esc
	}
	return c.root + esc
}

// readStream defers the request to the first Read.
type readStream struct {
	sync.Mutex
	open func() (io.ReadCloser, error)

	r       io.ReadCloser
	err     error
	started bool
	closed  bool
}

func (rs *readStream) Read(p []byte) (int, error) {
	rs.Lock()
	if rs.closed {
		rs.Unlock()
		return 0, os.ErrClosed
	}
	if !rs.started {
		rs.started = true
		rs.r, rs.err = rs.open()
	}
	rs.Unlock()

	if rs.err != nil {
		return 0, rs.err
	}
	return rs.r.Read(p)
}

func (rs *readStream) Close() error {
	rs.Lock()
	if rs.closed {
		rs.Unlock()
		return nil
	}
	rs.closed = true
	started := rs.started
	rs.Unlock()

	if started && rs.r != nil {
		return rs.r.Close()
	}
	return nil
}

// writeStream feeds the PUT goroutine through a pipe.
type writeStream struct {
	pw   *io.PipeWriter
	done chan error

	once sync.Once
	err  error
}

func (ws *writeStream) Write(p []byte) (int, error) {
	return ws.pw.Write(p)
}

func (ws *writeStream) Close() error {
	ws.once.Do(func() {
		ws.pw.Close()
		ws.err = <-ws.done
	})
	return ws.err
}
