package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Handle is an open flat file. Changes are held in memory until Close, which writes the file
// back only if something was added.
//
// A handle assumes it is the only writer of its path for as long as it is open. Nothing stops
// two processes from opening the same wallet; when they do, the last Close wins and updates
// made by the other are lost.
type Handle interface {
	Path() string
	Dirty() bool
	Close() error
}

// IOError is returned for any failure to read, decode, encode or write a flat file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Option configures a handle.
type Option func(*file)

// WithLogger sets the logger used by the handle.
func WithLogger(l zerolog.Logger) Option {
	return func(f *file) {
		f.log = l
	}
}

// WithClock replaces time.Now for the timestamps written into month files.
func WithClock(now func() time.Time) Option {
	return func(f *file) {
		f.now = now
	}
}

type file struct {
	path  string
	dirty bool
	log   zerolog.Logger
	now   func() time.Time
}

func newFile(path string, opts []Option) file {
	f := file{
		path: path,
		log:  zerolog.Nop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(&f)
	}
	f.log = f.log.With().Str("file", path).Logger()
	return f
}

func (f *file) Path() string {
	return f.path
}

func (f *file) Dirty() bool {
	return f.dirty
}

// read decodes the file into v. It returns false, without error, when the path is not a
// regular file and the caller should start from a skeleton.
func (f *file) read(v interface{}) (bool, error) {
	info, err := os.Stat(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, &IOError{Op: "stat", Path: f.path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return false, &IOError{Op: "read", Path: f.path, Err: err}
	}

	err = yaml.Unmarshal(data, v)
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		// fields of the wrong type are left at their zero value
		f.log.Warn().Strs("problems", typeErr.Errors).Msg("unexpected values in file")
	} else if err != nil {
		return false, &IOError{Op: "decode", Path: f.path, Err: err}
	}

	f.log.Debug().Msg("read file")
	return true, nil
}

// open reads the file, or marks the handle dirty so that the skeleton gets written.
func (f *file) open(v interface{}) error {
	ok, err := f.read(v)
	if err != nil {
		return err
	}
	if !ok {
		f.log.Debug().Msg("create new file")
		f.dirty = true
	}
	return nil
}

func (f *file) write(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return &IOError{Op: "encode", Path: f.path, Err: err}
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return &IOError{Op: "write", Path: f.path, Err: err}
	}
	f.dirty = false

	f.log.Debug().Int("bytes", len(data)).Msg("wrote file")
	return nil
}

// CloseAll closes every handle, even after a failure, and returns the joined errors.
func CloseAll(handles ...Handle) error {
	var errs []error
	for _, h := range handles {
		if h == nil {
			continue
		}
		if err := h.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
