package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/voxel-game/internal/vec"
	"github.com/annel0/voxel-game/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadWorld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves", "world.dat")
	chunks := sampleChunks(t)

	require.NoError(t, SaveWorld(path, 777, chunks))

	seed, loaded, err := LoadWorld(path)
	require.NoError(t, err)
	assert.Equal(t, int64(777), seed)
	require.Len(t, loaded, len(chunks))
	for i := range chunks {
		assert.True(t, chunks[i].Equal(loaded[i]))
	}
}

func TestLoadWorldMissingFile(t *testing.T) {
	_, _, err := LoadWorld(filepath.Join(t.TempDir(), "нет-такого.dat"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "Отсутствие файла должно быть отличимо от повреждения")
}

func TestSaveWorldAtomicOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.dat")

	first := []*world.Chunk{world.NewChunk(vec.Vec2{X: 1, Z: 1})}
	require.NoError(t, SaveWorld(path, 1, first))

	second := sampleChunks(t)
	require.NoError(t, SaveWorld(path, 777, second))

	// Файл полностью заменён новым содержимым
	seed, loaded, err := LoadWorld(path)
	require.NoError(t, err)
	assert.Equal(t, int64(777), seed)
	assert.Len(t, loaded, len(second))

	// Временных файлов после записи не остаётся
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "В директории должен остаться только файл сохранения")
}
