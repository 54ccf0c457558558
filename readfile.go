package webdavfs

// File content formats accepted by ReadFile and WriteFile.
const (
	// FormatText requests text content.
	FormatText = "text"

	// FormatUTF8 is an alias for FormatText and is collapsed to it
	// before the client sees the format.
	FormatUTF8 = "utf8"

	// FormatBinary requests raw binary content.
	FormatBinary = "binary"
)

// resolveFormat splits an optional leading encoding string off args
// and collapses the utf8 alias. Unrecognized strings are passed
// through to the client unvalidated.
func resolveFormat(args []any) (string, []any) {
	format, given, rest := stringArg(args)
	if !given {
		return FormatText, rest
	}
	if format == FormatUTF8 {
		format = FormatText
	}
	return format, rest
}

// ReadFile reads the remote file at path in full.
// Analogous to: [os.ReadFile], cat, WebDAV GET.
//
// The encoding argument is optional and defaults to FormatText;
// FormatUTF8 is equivalent:
//
//	fsys.ReadFile("/notes.txt", func(err error, data []byte) { ... })
//	fsys.ReadFile("/img.png", "binary",
//		func(err error, data []byte) { ... })
//
// The callback is a [ContentsCallback]. On failure it receives the
// client's error unchanged. A missing callback discards the result.
func (fsys *FS) ReadFile(path string, args ...any) {
	format, rest := resolveFormat(args)
	cb := contentsCallback(rest)
	deliver(func() {
		data, err := fsys.client.GetFileContents(path, format)
		if err != nil {
			cb(err, nil)
			return
		}
		cb(nil, data)
	})
}
