package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// atomicWriteFile writes data to a temp file next to path, syncs it and
// moves it over path, so readers see either the old or the new content.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if err := writeAndClose(f, data, perm); err != nil {
		return err
	}
	if err := replaceFile(tmp, path); err != nil {
		return errors.Wrap(err, "replace file")
	}
	return nil
}

func writeAndClose(f *os.File, data []byte, perm os.FileMode) (err error) {
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close temp file")
		}
	}()
	if err := chmodTemp(f, perm); err != nil {
		return errors.Wrap(err, "chmod temp file")
	}
	if _, err := f.Write(data); err != nil {
		return errors.Wrap(err, "write temp file")
	}
	if err := f.Sync(); err != nil {
		return errors.Wrap(err, "sync temp file")
	}
	return nil
}
