package webdavfs

// WriteFile writes data to the remote file at path, creating it or
// replacing its contents.
// Analogous to: [os.WriteFile], WebDAV PUT.
//
// The encoding argument is optional and follows the same rules as
// [FS.ReadFile]. It is accepted and normalized but not forwarded:
// the write always uses the client's default content format. This
// mirrors the historical behavior of the interface and is pinned by
// a test rather than corrected.
//
//	fsys.WriteFile("/notes.txt", []byte("hi"),
//		func(err error) { ... })
//
// The callback is a [CompleteCallback]; a missing callback discards
// the result.
func (fsys *FS) WriteFile(path string, data []byte, args ...any) {
	_, rest := resolveFormat(args)
	cb := completeCallback(rest)
	deliver(func() {
		cb(fsys.client.PutFileContents(path, data))
	})
}
