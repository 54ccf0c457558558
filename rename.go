package webdavfs

// Rename moves the remote entry at oldPath to newPath, replacing
// any existing destination.
// Analogous to: [os.Rename], mv, WebDAV MOVE.
//
// On success cb receives nil, on failure the client's error
// unchanged. A nil cb discards the result.
func (fsys *FS) Rename(oldPath, newPath string, cb CompleteCallback) {
	if cb == nil {
		cb = func(error) {}
	}
	deliver(func() {
		cb(fsys.client.MoveFile(oldPath, newPath))
	})
}
