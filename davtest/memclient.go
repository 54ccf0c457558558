package davtest

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	webdavfs "github.com/fyears/webdav-fs"
)

// node represents a file or directory in the remote tree.
type node struct {
	data    []byte
	dir     bool
	modTime time.Time
}

// MemClient implements webdavfs.Client over an in-memory tree. It
// records per-operation call counts, the last content format and
// stream options it received, and can be primed to fail, which makes
// it the double for adapter tests as well as the backing of the
// conformance suite.
type MemClient struct {
	mu        sync.Mutex
	nodes     map[string]*node
	calls     map[string]int
	errs      map[string]error
	format    string
	readOpts  webdavfs.StreamOptions
	writeOpts webdavfs.StreamOptions
}

var _ webdavfs.Client = (*MemClient)(nil)

// NewMemClient returns a client holding only an empty root
// collection.
func NewMemClient() *MemClient {
	return &MemClient{
		nodes: map[string]*node{
			"/": {dir: true, modTime: time.Now()},
		},
		calls: make(map[string]int),
		errs:  make(map[string]error),
	}
}

// AddFile places a file in the tree without counting as a call.
// Missing parents are created.
func (m *MemClient) AddFile(
	p string, data []byte, modTime time.Time,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = clean(p)
	m.mkdirAll(path.Dir(p))
	m.nodes[p] = &node{
		data:    append([]byte(nil), data...),
		modTime: modTime,
	}
}

// AddDir places a directory in the tree without counting as a call.
// Missing parents are created.
func (m *MemClient) AddDir(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirAll(clean(p))
}

// FailWith primes the named operation ("Stat", "DeleteFile", ...)
// to return err. Stream operations surface err through the stream.
func (m *MemClient) FailWith(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[op] = err
}

// Calls reports how many times the named operation ran.
func (m *MemClient) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// LastFormat reports the content format of the most recent
// GetFileContents call.
func (m *MemClient) LastFormat() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.format
}

// LastReadOptions reports the options of the most recent
// CreateReadStream call.
func (m *MemClient) LastReadOptions() webdavfs.StreamOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readOpts
}

// LastWriteOptions reports the options of the most recent
// CreateWriteStream call.
func (m *MemClient) LastWriteOptions() webdavfs.StreamOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeOpts
}

func clean(p string) string {
	p = path.Clean("/" + p)
	return p
}

func (m *MemClient) mkdirAll(p string) {
	if p == "/" {
		return
	}
	m.mkdirAll(path.Dir(p))
	if _, ok := m.nodes[p]; !ok {
		m.nodes[p] = &node{dir: true, modTime: time.Now()}
	}
}

// begin counts the call and returns any primed failure. Callers
// hold mu.
func (m *MemClient) begin(op string) error {
	m.calls[op]++
	return m.errs[op]
}

func (m *MemClient) CreateDirectory(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("CreateDirectory"); err != nil {
		return err
	}
	p = clean(p)
	if _, ok := m.nodes[p]; ok {
		return os.ErrExist
	}
	parent, ok := m.nodes[path.Dir(p)]
	if !ok || !parent.dir {
		return os.ErrNotExist
	}
	m.nodes[p] = &node{dir: true, modTime: time.Now()}
	return nil
}

func (m *MemClient) GetDirectoryContents(
	dir string,
) ([]webdavfs.RemoteStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("GetDirectoryContents"); err != nil {
		return nil, err
	}
	dir = clean(dir)
	n, ok := m.nodes[dir]
	if !ok || !n.dir {
		return nil, os.ErrNotExist
	}
	var names []string
	for p := range m.nodes {
		if p != dir && path.Dir(p) == dir {
			names = append(names, p)
		}
	}
	sort.Strings(names)
	entries := make([]webdavfs.RemoteStat, 0, len(names))
	for _, p := range names {
		entries = append(entries, m.remoteStat(p))
	}
	return entries, nil
}

func (m *MemClient) GetFileContents(
	p string, format string,
) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.format = format
	if err := m.begin("GetFileContents"); err != nil {
		return nil, err
	}
	n, ok := m.nodes[clean(p)]
	if !ok || n.dir {
		return nil, os.ErrNotExist
	}
	return append([]byte(nil), n.data...), nil
}

func (m *MemClient) PutFileContents(p string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("PutFileContents"); err != nil {
		return err
	}
	p = clean(p)
	parent, ok := m.nodes[path.Dir(p)]
	if !ok || !parent.dir {
		return os.ErrNotExist
	}
	m.nodes[p] = &node{
		data:    append([]byte(nil), data...),
		modTime: time.Now(),
	}
	return nil
}

func (m *MemClient) MoveFile(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("MoveFile"); err != nil {
		return err
	}
	oldPath, newPath = clean(oldPath), clean(newPath)
	if _, ok := m.nodes[oldPath]; !ok {
		return os.ErrNotExist
	}
	moved := make(map[string]*node)
	for p, n := range m.nodes {
		if p == oldPath || strings.HasPrefix(p, oldPath+"/") {
			moved[newPath+strings.TrimPrefix(p, oldPath)] = n
			delete(m.nodes, p)
		}
	}
	for p, n := range moved {
		m.nodes[p] = n
	}
	return nil
}

func (m *MemClient) DeleteFile(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("DeleteFile"); err != nil {
		return err
	}
	p = clean(p)
	if _, ok := m.nodes[p]; !ok {
		return os.ErrNotExist
	}
	for q := range m.nodes {
		if q == p || strings.HasPrefix(q, p+"/") {
			delete(m.nodes, q)
		}
	}
	return nil
}

func (m *MemClient) Stat(p string) (webdavfs.RemoteStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("Stat"); err != nil {
		return webdavfs.RemoteStat{}, err
	}
	p = clean(p)
	if _, ok := m.nodes[p]; !ok {
		return webdavfs.RemoteStat{}, os.ErrNotExist
	}
	return m.remoteStat(p), nil
}

// remoteStat builds the raw record for an existing node. Callers
// hold mu.
func (m *MemClient) remoteStat(p string) webdavfs.RemoteStat {
	n := m.nodes[p]
	rs := webdavfs.RemoteStat{
		Filename: p,
		Basename: path.Base(p),
		Size:     int64(len(n.data)),
		Type:     webdavfs.TypeFile,
	}
	if n.dir {
		rs.Type = webdavfs.TypeDirectory
	}
	if !n.modTime.IsZero() {
		rs.LastMod = n.modTime.UTC().Format(http.TimeFormat)
	}
	return rs
}

func (m *MemClient) CreateReadStream(
	p string, opts webdavfs.StreamOptions,
) io.ReadCloser {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readOpts = opts
	m.calls["CreateReadStream"]++
	err := m.errs["CreateReadStream"]
	return &memReadStream{m: m, path: clean(p), opts: opts, err: err}
}

// memReadStream resolves the file on first Read, like a deferred
// GET.
type memReadStream struct {
	m    *MemClient
	path string
	opts webdavfs.StreamOptions
	err  error

	r      io.Reader
	opened bool
}

func (s *memReadStream) Read(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if !s.opened {
		s.opened = true
		s.m.mu.Lock()
		n, ok := s.m.nodes[s.path]
		s.m.mu.Unlock()
		if !ok || n.dir {
			s.err = os.ErrNotExist
			return 0, s.err
		}
		data := n.data
		if r := s.opts.Range; r != nil {
			data = sliceRange(data, r)
		}
		s.r = bytes.NewReader(data)
	}
	return s.r.Read(p)
}

func (s *memReadStream) Close() error { return nil }

func sliceRange(data []byte, r *webdavfs.Range) []byte {
	start := min(r.Start, int64(len(data)))
	end := int64(len(data)) - 1
	if r.End >= 0 {
		end = min(r.End, end)
	}
	if start > end {
		return nil
	}
	return data[start : end+1]
}

func (m *MemClient) CreateWriteStream(
	p string, opts webdavfs.StreamOptions,
) io.WriteCloser {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeOpts = opts
	m.calls["CreateWriteStream"]++
	return &memWriteStream{
		m:    m,
		path: clean(p),
		err:  m.errs["CreateWriteStream"],
	}
}

// memWriteStream buffers writes and commits the file on Close.
type memWriteStream struct {
	m    *MemClient
	path string
	buf  bytes.Buffer
	err  error
}

func (s *memWriteStream) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.buf.Write(p)
}

func (s *memWriteStream) Close() error {
	if s.err != nil {
		return s.err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.nodes[s.path] = &node{
		data:    append([]byte(nil), s.buf.Bytes()...),
		modTime: time.Now(),
	}
	return nil
}
