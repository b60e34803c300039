package pack

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Entry is one child of a directory being packed.
type Entry struct {
	Name string
	Dir  bool
}

// Hidden reports whether name is always left out of a packed directory:
// dot files and editor backups ending in '~'.
func Hidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~")
}

// excluded applies Hidden and the configured ignore globs.
func (p *Packer) excluded(name string) bool {
	if Hidden(name) {
		return true
	}
	for _, pattern := range p.opts.Ignore {
		// Patterns are validated up front; a bad one never matches.
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// list returns the retained children of dir sorted by name. Symlinks are
// classified by their target; a dangling link counts as a file.
func (p *Packer) list(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		name := de.Name()
		if p.excluded(name) {
			p.log.Debug("Skipping %s", filepath.Join(dir, name))
			continue
		}
		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			if fi, err := os.Stat(filepath.Join(dir, name)); err == nil {
				isDir = fi.IsDir()
			}
		}
		entries = append(entries, Entry{name, isDir})
	}
	return entries, nil
}

func sameEntries(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
