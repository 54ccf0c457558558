package webdavfs

// Rmdir removes the remote directory at path.
// Analogous to: [os.Remove], rmdir, WebDAV DELETE.
//
// Rmdir does not verify that the target is a directory before
// deleting it; it shares one delete primitive with [FS.Unlink] and a
// file passed to either is deleted all the same. This is a
// documented limitation of the interface, kept as is.
func (fsys *FS) Rmdir(path string, cb CompleteCallback) {
	fsys.remove(path, cb)
}

// Unlink removes the remote file at path.
// Analogous to: [os.Remove], rm, WebDAV DELETE.
//
// Unlink shares its delete primitive with [FS.Rmdir]; see the note
// there.
func (fsys *FS) Unlink(path string, cb CompleteCallback) {
	fsys.remove(path, cb)
}

func (fsys *FS) remove(path string, cb CompleteCallback) {
	if cb == nil {
		cb = func(error) {}
	}
	deliver(func() {
		cb(fsys.client.DeleteFile(path))
	})
}
