// Package storage содержит хранилища изображений профиля: локальный диск и S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"simplylife/internal/cms/domain/services"
	svc "simplylife/internal/cms/ports/services"
	"simplylife/pkg/logger"
)

// ErrInvalidKey возвращается для ключа, выходящего за пределы хранилища.
var ErrInvalidKey = errors.New("invalid storage key")

// LocalStore хранит файлы в каталоге, раздаваемом по publicPath.
type LocalStore struct {
	dir        string
	publicPath string
}

// NewLocalStore создает локальное хранилище.
func NewLocalStore(dir, publicPath string) svc.ImageStore {
	return &LocalStore{dir: dir, publicPath: "/" + strings.Trim(publicPath, "/")}
}

// cleanKey приводит ключ к относительному пути без выхода из каталога.
func cleanKey(key string) (string, error) {
	clean := path.Clean("/" + key)[1:]
	if clean == "" || clean == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return clean, nil
}

// Save записывает изображение и возвращает путь вида /media/<key>.
func (s *LocalStore) Save(ctx context.Context, key string, image services.Image) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	target := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", services.ErrStoreFailed, err)
	}
	if err := os.WriteFile(target, image.Content, 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", services.ErrStoreFailed, err)
	}

	logger.Log(ctx).Debug(ctx, "image stored", zap.String("path", target), zap.Int("size", len(image.Content)))
	return s.publicPath + "/" + clean, nil
}

// Delete удаляет файл по публичному пути. Отсутствующий файл не считается ошибкой.
func (s *LocalStore) Delete(_ context.Context, publicPath string) error {
	rel, ok := strings.CutPrefix(publicPath, s.publicPath+"/")
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidKey, publicPath)
	}
	clean, err := cleanKey(rel)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.dir, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing image: %w", err)
	}
	return nil
}
