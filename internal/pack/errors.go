package pack

import "fmt"

// Kind classifies a packing failure. Its value is the process exit code
// opack uses for it.
type Kind int

const (
	OutputError Kind = 2 // generated code could not be written
	FileError   Kind = 3 // an input file could not be read
	DirError    Kind = 4 // an input directory could not be listed
)

func (k Kind) String() string {
	switch k {
	case OutputError:
		return "output error"
	case FileError:
		return "file error"
	case DirError:
		return "directory error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned for any failure that stops packing.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case FileError:
		return fmt.Sprintf("could not open file %s: %v", e.Path, e.Err)
	case DirError:
		return fmt.Sprintf("could not open directory %s, check permissions: %v", e.Path, e.Err)
	default:
		return e.Err.Error()
	}
}

// Cause lets github.com/pkg/errors unwrap the error.
func (e *Error) Cause() error { return e.Err }

func (e *Error) Unwrap() error { return e.Err }

// ExitCode returns the process exit status for this error.
func (e *Error) ExitCode() int { return int(e.Kind) }
