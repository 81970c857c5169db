package filesystem

import (
	"io/fs"

	"github.com/spf13/afero"

	"github.com/maltpkg/malt/pkg/types"
)

// aferoFS implements types.FS using afero
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if lr, ok := a.fs.(afero.LinkReader); ok {
		return lr.ReadlinkIfPossible(name)
	}
	// MemMapFs does not support symlinks. Tests simulate a link by
	// writing a regular file whose content is the target path.
	content, err := afero.ReadFile(a.fs, name)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if lsf, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lsf.LstatIfPossible(name)
		return info, err
	}
	return a.fs.Stat(name)
}
