// Package pack turns files and directory trees into onion handlers.
//
// A file becomes a handler that serves its bytes from a static array. A
// directory becomes a dispatch handler that matches the remaining request
// path against its children: "<dir>/" prefixes are consumed and delegated to
// the child directory's handler, exact "<file>" names go to the file's
// handler, and anything else returns OCS_NOT_PROCESSED. Children are always
// written before their parent, so no forward declarations are needed.
package pack

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/lanikai/opack/internal/cgen"
	"github.com/lanikai/opack/internal/ident"
	"github.com/lanikai/opack/internal/logging"
)

// Size of the read buffer used while streaming a file into its array.
const readBufferSize = 4096

// SeedMode selects the prefix a top-level directory starts with.
type SeedMode string

const (
	// SeedFirst names every directory input after the first input, the
	// way opack always has.
	SeedFirst SeedMode = "first"

	// SeedOwn names each directory input after itself.
	SeedOwn SeedMode = "own"
)

type Options struct {
	Seed SeedMode

	// Extra path.Match patterns for directory children to leave out, on
	// top of dot files and names ending in '~'.
	Ignore []string

	// Maximum directory nesting, counting the top-level directory as 1.
	// Zero means unlimited.
	MaxDepth int

	// Fail on identifier collisions instead of warning.
	Strict bool

	// Defaults to the "pack" tag of logging.DefaultLogger.
	Log *logging.Logger
}

type Packer struct {
	w    *cgen.Writer
	opts Options
	log  *logging.Logger
	reg  ident.Registry
}

func New(out io.Writer, opts Options) *Packer {
	if opts.Seed == "" {
		opts.Seed = SeedFirst
	}
	log := opts.Log
	if log == nil {
		log = logging.DefaultLogger.WithTag("pack")
	}
	return &Packer{w: cgen.NewWriter(out), opts: opts, log: log}
}

// Run writes the header, then packs each input in order.
func (p *Packer) Run(inputs []string) error {
	if len(inputs) == 0 {
		return errors.New("nothing to pack")
	}
	p.w.WriteHeader()
	if err := p.writeErr(); err != nil {
		return err
	}
	for _, input := range inputs {
		if err := p.Pack(input, inputs[0]); err != nil {
			return err
		}
	}
	return nil
}

// Pack packs a single input. Directories are seeded according to
// Options.Seed; first is the first input of the run.
func (p *Packer) Pack(input, first string) error {
	fi, err := os.Stat(input)
	if err != nil || !fi.IsDir() {
		// Unreadable paths are reported when the file is opened.
		return p.File(nil, input)
	}

	seed := filepath.Base(first)
	if p.opts.Seed == SeedOwn {
		seed = filepath.Base(input)
	}
	return p.Directory(ident.Prefix{seed}, input)
}

// File writes the handler and length constant for the file at path.
func (p *Packer) File(prefix ident.Prefix, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &Error{FileError, path, err}
	}
	defer f.Close()

	// The handler and its length constant share one C namespace with every
	// other handler, so a file named "a_length" next to "a" is a collision.
	name := ident.Derive(prefix, filepath.Base(path))
	if err := p.claim(name, path); err != nil {
		return err
	}
	if err := p.claim(name+cgen.LengthSuffix, path+" (length)"); err != nil {
		return err
	}
	p.log.Info("Parsing: %s to '%s;'.", path, cgen.Signature(name))

	p.w.BeginFile(name)
	data := p.w.ByteArray()
	if _, err := io.CopyBuffer(data, f, make([]byte, readBufferSize)); err != nil {
		if werr := p.writeErr(); werr != nil {
			return werr
		}
		return &Error{FileError, path, errors.Wrap(err, "read")}
	}
	if err := data.Close(); err != nil {
		return &Error{Kind: OutputError, Err: err}
	}
	p.w.EndFile(name, data.Len())
	return p.writeErr()
}

// Directory packs every retained child of path, then writes the dispatch
// handler for path itself.
func (p *Packer) Directory(prefix ident.Prefix, path string) error {
	return p.directory(prefix, path, 1)
}

func (p *Packer) directory(prefix ident.Prefix, path string, depth int) error {
	if p.opts.MaxDepth > 0 && depth > p.opts.MaxDepth {
		return &Error{DirError, path, errors.Errorf("deeper than %d levels", p.opts.MaxDepth)}
	}

	entries, err := p.list(path)
	if err != nil {
		return &Error{DirError, path, err}
	}

	for _, e := range entries {
		child := filepath.Join(path, e.Name)
		if e.Dir {
			err = p.directory(prefix.Append(e.Name), child, depth+1)
		} else {
			err = p.File(prefix, child)
		}
		if err != nil {
			return err
		}
	}

	// List again for the dispatch rules. Anything that appeared or vanished
	// meanwhile has no handler, so refuse rather than emit a dangling call.
	again, err := p.list(path)
	if err != nil {
		return &Error{DirError, path, err}
	}
	if !sameEntries(entries, again) {
		return &Error{DirError, path, errors.New("directory changed while packing")}
	}

	name := ident.Derive(prefix, "")
	if err := p.claim(name, path); err != nil {
		return err
	}
	p.log.Info("Parsing directory: %s to '%s;'.", path, cgen.Signature(name))

	p.w.BeginDir(name)
	for _, e := range entries {
		if e.Dir {
			p.w.DirBranch(e.Name, ident.Derive(prefix.Append(e.Name), ""))
		} else {
			p.w.FileBranch(e.Name, ident.Derive(prefix, e.Name))
		}
	}
	p.w.EndDir()
	return p.writeErr()
}

func (p *Packer) claim(name, path string) error {
	err := p.reg.Claim(name, path)
	if err == nil {
		return nil
	}
	if p.opts.Strict {
		return err
	}
	p.log.Warn("%v", err)
	return nil
}

func (p *Packer) writeErr() error {
	if err := p.w.Err(); err != nil {
		return &Error{Kind: OutputError, Err: err}
	}
	return nil
}
