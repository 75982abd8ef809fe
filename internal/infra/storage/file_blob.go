package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBlob guarda el roster en un archivo JSON (data.json por defecto).
type FileBlob struct{ path string }

func NewFileBlob(path string) *FileBlob { return &FileBlob{path: path} }

func (b *FileBlob) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Write escribe a un temporal y renombra: si algo falla el archivo anterior
// queda intacto.
func (b *FileBlob) Write(ctx context.Context, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(b.path), "."+filepath.Base(b.path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.path)
}
