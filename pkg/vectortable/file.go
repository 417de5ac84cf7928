package vectortable

import (
	"os"

	"github.com/pkg/errors"
)

// LoadImage reads the whole file at path.
func LoadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input file")
	}
	return data, nil
}

// WriteImage creates or truncates path and writes image to it, syncing
// before close.
func WriteImage(path string, image []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close output file")
		}
	}()
	if _, err = f.Write(image); err != nil {
		return errors.Wrap(err, "failed to write output file")
	}
	if err = f.Sync(); err != nil {
		return errors.Wrap(err, "failed to flush output file")
	}
	return nil
}
