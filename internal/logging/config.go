package logging

import (
	"fmt"
	"os"
	"strings"
)

const envVar = "LOGLEVEL"

type tagLevel struct {
	tag   string
	level Level
}

var tagLevels []tagLevel

func init() {
	if err := Configure(os.Getenv(envVar)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid %s: %s\n", envVar, err)
	}
}

// Configure applies comma-separated "tag=level" directives. A directive
// without "tag=" sets the default level. Valid directives are applied even if
// a later one fails to parse.
func Configure(directives string) error {
	var bad []string
	for _, d := range strings.Split(directives, ",") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		v := strings.SplitN(d, "=", 2)
		level, err := ParseLevel(v[len(v)-1])
		if err != nil {
			bad = append(bad, d)
			continue
		}
		if len(v) == 1 {
			defaultLevel = level
			DefaultLogger.Level = level
		} else {
			tagLevels = append(tagLevels, tagLevel{v[0], level})
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("bad directives: %s", strings.Join(bad, ", "))
	}
	return nil
}

func determineLevel(tag string, fallback Level) Level {
	// Later directives win.
	for i := len(tagLevels) - 1; i >= 0; i-- {
		if tagLevels[i].tag == tag {
			return tagLevels[i].level
		}
	}
	return fallback
}

// resetDirectives forgets all tag directives. Used by tests.
func resetDirectives() {
	tagLevels = nil
	defaultLevel = Info
	DefaultLogger.Level = Info
}
