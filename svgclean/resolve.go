package svgclean

import (
	"os"
	"path/filepath"
	"strings"
)

// PathResolver is the host capability used to turn a relative image
// reference into an absolute one. Implementations must be quick and
// must not block: a reference that cannot be resolved immediately is
// declined with ok == false and the caller leaves it untouched.
type PathResolver interface {
	Resolve(ref string) (resolved string, ok bool)
}

// DirResolver resolves plain relative paths against a base directory,
// producing file URIs for files that exist. Anything already carrying a
// scheme, a data URI or an absolute path is declined.
type DirResolver struct {
	Base string
}

func (d DirResolver) Resolve(ref string) (string, bool) {
	if ref == "" ||
		strings.Contains(ref, "://") ||
		strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, "#") ||
		filepath.IsAbs(ref) {
		return "", false
	}
	p := filepath.Join(d.Base, filepath.FromSlash(ref))
	if info, err := os.Stat(p); err != nil || info.IsDir() {
		return "", false
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", false
	}
	return "file://" + filepath.ToSlash(abs), true
}
