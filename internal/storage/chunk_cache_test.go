package storage

import (
	"testing"

	"github.com/annel0/voxel-game/internal/vec"
	"github.com/annel0/voxel-game/internal/world"
	"github.com/annel0/voxel-game/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkCacheStoreLoad(t *testing.T) {
	cache, err := NewChunkCache(t.TempDir(), 5)
	require.NoError(t, err)
	defer cache.Close()

	chunk := world.NewWorldGenerator(5).GenerateChunk(vec.Vec2{X: 2, Z: -9})
	chunk.Set(1, 45, 1, block.GlassBlockID)

	require.NoError(t, cache.Store(chunk))

	loaded, err := cache.Load(vec.Vec2{X: 2, Z: -9})
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, chunk.Equal(loaded), "Чанк должен восстановиться из кеша без потерь")
}

func TestChunkCacheMiss(t *testing.T) {
	cache, err := NewChunkCache(t.TempDir(), 5)
	require.NoError(t, err)
	defer cache.Close()

	loaded, err := cache.Load(vec.Vec2{X: 100, Z: 100})
	require.NoError(t, err)
	assert.Nil(t, loaded, "Отсутствующий чанк не является ошибкой")
}

func TestChunkCacheOverwrite(t *testing.T) {
	cache, err := NewChunkCache(t.TempDir(), 5)
	require.NoError(t, err)
	defer cache.Close()

	chunk := world.NewChunk(vec.Vec2{X: 0, Z: 0})
	require.NoError(t, cache.Store(chunk))

	chunk.Set(0, 0, 0, block.StoneBlockID)
	require.NoError(t, cache.Store(chunk))

	loaded, err := cache.Load(vec.Vec2{X: 0, Z: 0})
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, block.StoneBlockID, loaded.Get(0, 0, 0), "Повторная запись должна заменить старую")
}

func TestChunkCacheIsolatesWorlds(t *testing.T) {
	dataPath := t.TempDir()

	first, err := NewChunkCache(dataPath, 111)
	require.NoError(t, err)

	chunk := world.NewChunk(vec.Vec2{X: 0, Z: 0})
	chunk.Set(0, 0, 0, block.StoneBlockID)
	require.NoError(t, first.Store(chunk))
	require.NoError(t, first.Close())

	// Та же директория данных, другое зерно: чужие чанки невидимы
	second, err := NewChunkCache(dataPath, 222)
	require.NoError(t, err)

	loaded, err := second.Load(vec.Vec2{X: 0, Z: 0})
	require.NoError(t, err)
	assert.Nil(t, loaded, "Смена зерна не должна воскрешать чанки прежнего мира")
	require.NoError(t, second.Close())

	// Возврат к исходному зерну снова видит свою запись
	third, err := NewChunkCache(dataPath, 111)
	require.NoError(t, err)
	defer third.Close()

	loaded, err = third.Load(vec.Vec2{X: 0, Z: 0})
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, chunk.Equal(loaded))
}

func TestChunkCacheClosed(t *testing.T) {
	cache, err := NewChunkCache(t.TempDir(), 5)
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	assert.Error(t, cache.Store(world.NewChunk(vec.Vec2{})))
	_, err = cache.Load(vec.Vec2{})
	assert.Error(t, err)
}
