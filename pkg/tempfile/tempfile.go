// Package tempfile stages uploaded or generated bytes on disk for the duration of one call.
package tempfile

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Scope writes data to a new file in dir, passes its path to fn and removes the file
// afterwards, whether fn succeeds, fails or panics.
func Scope(fs afero.Fs, dir, pattern string, data []byte, fn func(path string) error) (err error) {
	f, err := afero.TempFile(fs, dir, pattern)
	if err != nil {
		return errors.Wrap(err, "error creating temp file")
	}
	path := f.Name()
	defer func() {
		if rmErr := fs.Remove(path); rmErr != nil && err == nil {
			err = errors.Wrapf(rmErr, "error removing temp file %v", path)
		}
	}()

	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return errors.Wrap(err, "error writing temp file")
	}

	return fn(path)
}

// Create runs fn with the path of a new empty file and returns the bytes fn left in it.
// The file is removed before Create returns.
func Create(fs afero.Fs, dir, pattern string, fn func(path string) error) (data []byte, err error) {
	err = Scope(fs, dir, pattern, nil, func(path string) error {
		if err := fn(path); err != nil {
			return err
		}
		var readErr error
		data, readErr = afero.ReadFile(fs, path)
		return errors.Wrap(readErr, "error reading temp file")
	})
	return data, err
}
