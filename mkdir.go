package webdavfs

// Mkdir creates the remote directory at path.
// Analogous to: [os.Mkdir], mkdir, WebDAV MKCOL.
//
// Parent directories are not created; the server rejects a missing
// parent. On success cb receives nil, on failure the client's error
// unchanged. A nil cb discards the result.
func (fsys *FS) Mkdir(path string, cb CompleteCallback) {
	if cb == nil {
		cb = func(error) {}
	}
	deliver(func() {
		cb(fsys.client.CreateDirectory(path))
	})
}
