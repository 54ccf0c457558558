package webdavfs

import (
	"errors"
	"fmt"
)

// Readdir result modes.
const (
	// ModeNode lists entries as base-name strings.
	ModeNode = "node"

	// ModeStat lists entries as [Stat] records.
	ModeStat = "stat"
)

// ErrUnknownMode reports a Readdir mode that is neither ModeNode nor
// ModeStat.
var ErrUnknownMode = errors.New("unknown readdir mode")

// Readdir lists the remote directory at path.
// Analogous to: [os.ReadDir], ls, WebDAV PROPFIND depth 1.
//
// The mode argument is optional and defaults to ModeNode:
//
//	fsys.Readdir("/photos", func(err error, names []string) { ... })
//	fsys.Readdir("/photos", "stat",
//		func(err error, entries []*webdavfs.Stat) { ... })
//
// In ModeNode the callback is a [NamesCallback] and receives base
// names in the order the server returned them. In ModeStat it is a
// [StatsCallback] and receives one [Stat] per entry. Any other mode
// delivers [ErrUnknownMode] to the callback. A missing callback
// discards the result.
func (fsys *FS) Readdir(path string, args ...any) {
	mode, given, rest := stringArg(args)
	if !given {
		mode = ModeNode
	}
	switch mode {
	case ModeNode:
		cb := namesCallback(rest)
		deliver(func() {
			entries, err := fsys.client.GetDirectoryContents(path)
			if err != nil {
				cb(err, nil)
				return
			}
			names := make([]string, 0, len(entries))
			for _, rs := range entries {
				names = append(names, newStat(rs).Name)
			}
			cb(nil, names)
		})
	case ModeStat:
		cb := statsCallback(rest)
		deliver(func() {
			entries, err := fsys.client.GetDirectoryContents(path)
			if err != nil {
				cb(err, nil)
				return
			}
			stats := make([]*Stat, 0, len(entries))
			for _, rs := range entries {
				stats = append(stats, newStat(rs))
			}
			cb(nil, stats)
		})
	default:
		failAny(rest, fmt.Errorf("%w: %q", ErrUnknownMode, mode))
	}
}
