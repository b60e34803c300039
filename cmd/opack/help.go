package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Populated via -ldflags="-X main.GitRevisionId=...".
var GitRevisionId = "dev"

const helpString = `Packs files and directories into C handlers for the onion HTTP server

Usage: opack [OPTION]... PATH...
       opack <file1> <file2> -o <outfile.c>
       opack <dir1> <dir2> <file3> -o <outfile.c>

Every file becomes a handler with the signature

   onion_connection_status opack_<name>(void *_, onion_request *req, onion_response *res);

plus a constant opack_<name>_length holding its size. A directory becomes a
handler that dispatches on the remaining request path, one path element at a
time: packing static/ holding jquery.min.js serves it as jquery.min.js from
opack_static. Directories are packed recursively; names starting with '.'
or ending with '~' are ignored.

Output:
  -o, --output=FILE      Write generated code to FILE (default: stdout)
  -c, --config=FILE      Read settings from a TOML file

Packing:
      --seed=MODE        Name directory inputs after the first input (first)
                           or after themselves (own) (default: first)
      --ignore=GLOB      Also ignore directory entries matching GLOB; repeatable
      --max-depth=NUM    Refuse directories nested deeper than NUM (default: 0,
                           unlimited)
      --strict           Fail when two paths fold to the same identifier

Miscellaneous:
  -q, --quiet            Only report warnings and errors
  -h, --help             Prints this help message and exits
  -v, --version          Prints version information and exits

Settings may also come from OPACK_OUTPUT, OPACK_INPUTS, OPACK_SEED,
OPACK_IGNORE, OPACK_MAX_DEPTH, OPACK_STRICT and OPACK_QUIET. Flags win over
the environment, which wins over the config file. LOGLEVEL sets log
verbosity, e.g. LOGLEVEL=debug or LOGLEVEL=pack=warn.
`

// help prints usage to w. Callers exit with status 1, as opack always has.
func help(w io.Writer) {
	color.New(color.FgCyan, color.Bold).Fprint(w, "opack")
	fmt.Fprintf(w, " %s\n\n", GitRevisionId)
	fmt.Fprint(w, helpString)
}

// version prints version information. Callers exit with status 0 (GNU convention).
func version(w io.Writer) {
	fmt.Fprintln(w, "opack", GitRevisionId)
}
