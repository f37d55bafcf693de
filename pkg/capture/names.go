package capture

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/user/kinectlapse/pkg/ports"
)

// FileTimeLayout names saved images after their capture time.
const FileTimeLayout = "2006-01-02_15-04-05"

// maxSuffix bounds the search for a free name within one second.
const maxSuffix = 100

// namer hands out filenames for one run. Several captures inside the same
// second get _1, _2, ... suffixes unless overwrite is set. A name whose
// existence cannot be checked counts as taken.
type namer struct {
	fs        ports.FileSystem
	logger    ports.Logger
	dir       string
	ext       string
	overwrite bool
	used      map[string]bool
}

func newNamer(fs ports.FileSystem, logger ports.Logger, dir, ext string, overwrite bool) *namer {
	return &namer{
		fs:        fs,
		logger:    logger,
		dir:       dir,
		ext:       ext,
		overwrite: overwrite,
		used:      make(map[string]bool),
	}
}

// next returns the name for a capture at t and whether it had to be renamed.
func (n *namer) next(t time.Time) (name string, renamed bool, err error) {
	base := t.Format(FileTimeLayout)
	name = base + "." + n.ext
	if !n.overwrite {
		for k := 1; n.taken(name); k++ {
			if k > maxSuffix {
				return "", false, fmt.Errorf("no free name for %s after %d attempts", base, maxSuffix)
			}
			name = fmt.Sprintf("%s_%d.%s", base, k, n.ext)
			renamed = true
		}
	}
	n.used[name] = true
	return name, renamed, nil
}

func (n *namer) taken(name string) bool {
	if n.used[name] {
		return true
	}
	exists, err := n.fs.Exists(filepath.Join(n.dir, name))
	if err != nil {
		n.logger.Debug("Cannot check %s: %s", name, err)
		return true
	}
	return exists
}
