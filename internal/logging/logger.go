package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/fatih/color"
)

type Logger struct {
	// The level at which this logger logs. Any log messages intended for a higher
	// (more verbose) log level are ignored.
	Level

	// Tag used to filter and classify log messages.
	Tag string

	out     io.Writer
	colored bool

	// Shared by all derived loggers so lines from different tags never interleave.
	mu *sync.Mutex
}

// Write to stderr by default.
var DefaultLogger = &Logger{defaultLevel, "", os.Stderr, !color.NoColor, new(sync.Mutex)}

// SetDestination overrides the destination for this logger. Color is turned
// off, since the new destination is usually not a terminal.
func (log *Logger) SetDestination(out io.Writer) {
	log.out = out
	log.colored = false
}

// WithTag derives a new logger with the given tag. The level is looked up
// from LOGLEVEL directives, falling back to the parent's level.
func (log *Logger) WithTag(tag string) *Logger {
	return &Logger{determineLevel(tag, log.Level), tag, log.out, log.colored, log.mu}
}

// Enabled reports whether messages at the given level would be written.
func (log *Logger) Enabled(level Level) bool {
	return level <= log.Level
}

// Wrapper for []byte that implements io.Writer.
type buffer []byte

func (b *buffer) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}

func (b *buffer) writeString(s string) {
	*b = append(*b, s...)
}

func (b *buffer) writeByte(c byte) {
	*b = append(*b, c)
}

var bufPool = sync.Pool{
	New: func() interface{} {
		return make(buffer, 0, 256)
	},
}

// Log a message at the given level. Debug and more verbose lines include the file
// and line number from 'calldepth' steps up the call stack.
func (log *Logger) Log(level Level, calldepth int, format string, a ...interface{}) {
	if !log.Enabled(level) {
		return
	}

	buf := bufPool.Get().(buffer)
	defer func() { bufPool.Put(buf[:0]) }()

	prefix := string([]byte{level.letter(), '/'}) + log.Tag
	if log.colored {
		prefix = level.color().Sprint(prefix)
	}
	buf.writeString(prefix)

	if level >= Debug {
		_, file, line, ok := runtime.Caller(calldepth + 1)
		if !ok {
			file = "?"
		}
		fmt.Fprintf(&buf, "[%s:%d]", filepath.Base(file), line)
	}
	buf.writeString(": ")

	fmt.Fprintf(&buf, format, a...)

	if n := len(buf); n == 0 || buf[n-1] != '\n' {
		buf.writeByte('\n')
	}

	log.mu.Lock()
	defer log.mu.Unlock()
	// A broken stderr is not worth failing a build over.
	_, _ = log.out.Write(buf)
}

func (log *Logger) Error(format string, a ...interface{}) {
	log.Log(Error, 1, format, a...)
}

func (log *Logger) Warn(format string, a ...interface{}) {
	log.Log(Warn, 1, format, a...)
}

func (log *Logger) Info(format string, a ...interface{}) {
	log.Log(Info, 1, format, a...)
}

func (log *Logger) Debug(format string, a ...interface{}) {
	log.Log(Debug, 1, format, a...)
}
