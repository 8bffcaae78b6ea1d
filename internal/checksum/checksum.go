// Package checksum computes BLAKE2b-256 digests of written data files.
package checksum

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// ErrMismatch возвращается, когда файл изменился после расчета суммы
var ErrMismatch = errors.New("checksum mismatch")

// Bytes возвращает hex-encoded BLAKE2b-256 от данных
func Bytes(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Reader считает сумму всего потока
func Reader(r io.Reader) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to read data: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// File считает сумму файла
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sum, err := Reader(f)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return sum, nil
}

// Verify сверяет сумму файла с сохраненной
func Verify(path, want string) error {
	if want == "" {
		return fmt.Errorf("expected checksum cannot be empty")
	}

	got, err := File(path)
	if err != nil {
		return err
	}

	if got != want {
		return fmt.Errorf("%s: %w", path, ErrMismatch)
	}

	return nil
}
