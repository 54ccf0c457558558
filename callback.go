package webdavfs

// Callback signatures accepted by the operations in this package.
// Either the named type or a bare function of the same signature may
// be passed where an operation takes variadic arguments.
type (
	// CompleteCallback reports completion of an operation with no
	// result payload.
	CompleteCallback func(err error)

	// StatCallback receives the stat record for one entry.
	StatCallback func(err error, info *Stat)

	// NamesCallback receives directory entries as base names.
	NamesCallback func(err error, names []string)

	// StatsCallback receives directory entries as stat records.
	StatsCallback func(err error, entries []*Stat)

	// ContentsCallback receives file contents.
	ContentsCallback func(err error, data []byte)
)

// deliver runs fn on its own goroutine. Callbacks must never fire on
// the stack of the call that registered them, even when the outcome
// is known before the call returns.
func deliver(fn func()) {
	go fn()
}

// stringArg splits a leading mode/encoding string off args. The
// disambiguation rule: a position that could hold either an option
// string or the callback holds the callback exactly when it is a
// function.
func stringArg(args []any) (string, bool, []any) {
	if len(args) == 0 {
		return "", false, args
	}
	if s, ok := args[0].(string); ok {
		return s, true, args[1:]
	}
	return "", false, args
}

// A missing or foreign-typed callback resolves to a no-op rather
// than a panic, so the helpers below always return callable values.

func completeCallback(args []any) CompleteCallback {
	for _, arg := range args {
		switch fn := arg.(type) {
		case CompleteCallback:
			return fn
		case func(error):
			return fn
		}
	}
	return func(error) {}
}

func statCallback(args []any) StatCallback {
	for _, arg := range args {
		switch fn := arg.(type) {
		case StatCallback:
			return fn
		case func(error, *Stat):
			return fn
		}
	}
	return func(error, *Stat) {}
}

func namesCallback(args []any) NamesCallback {
	for _, arg := range args {
		switch fn := arg.(type) {
		case NamesCallback:
			return fn
		case func(error, []string):
			return fn
		}
	}
	return func(error, []string) {}
}

func statsCallback(args []any) StatsCallback {
	for _, arg := range args {
		switch fn := arg.(type) {
		case StatsCallback:
			return fn
		case func(error, []*Stat):
			return fn
		}
	}
	return func(error, []*Stat) {}
}

func contentsCallback(args []any) ContentsCallback {
	for _, arg := range args {
		switch fn := arg.(type) {
		case ContentsCallback:
			return fn
		case func(error, []byte):
			return fn
		}
	}
	return func(error, []byte) {}
}

// failAny reports err to whichever callback shape is present in
// args. Used when an operation fails before its result shape is
// known, e.g. an unrecognized readdir mode.
func failAny(args []any, err error) {
	for _, arg := range args {
		switch fn := arg.(type) {
		case CompleteCallback:
			deliver(func() { fn(err) })
			return
		case func(error):
			deliver(func() { fn(err) })
			return
		case StatCallback:
			deliver(func() { fn(err, nil) })
			return
		case func(error, *Stat):
			deliver(func() { fn(err, nil) })
			return
		case NamesCallback:
			deliver(func() { fn(err, nil) })
			return
		case func(error, []string):
			deliver(func() { fn(err, nil) })
			return
		case StatsCallback:
			deliver(func() { fn(err, nil) })
			return
		case func(error, []*Stat):
			deliver(func() { fn(err, nil) })
			return
		case ContentsCallback:
			deliver(func() { fn(err, nil) })
			return
		case func(error, []byte):
			deliver(func() { fn(err, nil) })
			return
		}
	}
}
