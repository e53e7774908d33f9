package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/annel0/voxel-game/internal/world"
)

// SaveWorld атомарно записывает сохранение мира в файл.
// Данные пишутся во временный файл рядом с целевым и переименовываются
// после успешной записи, поэтому сбой не повреждает прежнее сохранение.
func SaveWorld(path string, seed int64, chunks []*world.Chunk) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("создание директории сохранения: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("создание временного файла: %w", err)
	}
	tmpPath := tmp.Name()

	if err := Encode(tmp, seed, chunks); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("сброс сохранения на диск: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("закрытие временного файла: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("замена файла сохранения: %w", err)
	}

	return nil
}

// LoadWorld читает сохранение мира из файла.
// Отсутствие файла возвращается как os.ErrNotExist: вызывающий код
// трактует его как «начать свежий мир».
func LoadWorld(path string) (seed int64, chunks []*world.Chunk, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()

	return Decode(f)
}
