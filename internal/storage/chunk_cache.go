package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/badger/v3"

	"github.com/annel0/voxel-game/internal/vec"
	"github.com/annel0/voxel-game/internal/world"
	"github.com/annel0/voxel-game/internal/world/block"
)

// ChunkCache хранит выгруженные чанки в BadgerDB между запусками.
// Мир пишет сюда чанк при каждой выгрузке, поэтому правки переживают
// аварийное завершение между автосохранениями; при возврате игрока чанк
// читается отсюда раньше, чем вызывается генератор. Записи привязаны
// к идентификатору мира: смена зерна на той же директории данных не
// воскрешает чанки чужого мира.
type ChunkCache struct {
	db       *badger.DB
	worldKey string
	mu       sync.RWMutex
	isReady  bool
}

// NewChunkCache открывает кеш чанков мира с указанным зерном
// в поддиректории dataPath
func NewChunkCache(dataPath string, seed int64) (*ChunkCache, error) {
	dbPath := filepath.Join(dataPath, "chunks")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	return &ChunkCache{
		db:       db,
		worldKey: WorldID(seed).String(),
		isReady:  true,
	}, nil
}

// Close закрывает кеш
func (cc *ChunkCache) Close() error {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if !cc.isReady {
		return nil
	}
	cc.isReady = false
	return cc.db.Close()
}

// chunkKey формирует ключ записи для координат чанка в пределах мира
func (cc *ChunkCache) chunkKey(coords vec.Vec2) []byte {
	return []byte(fmt.Sprintf("chunk:%s:%d:%d", cc.worldKey, coords.X, coords.Z))
}

// Store сохраняет чанк в кеш
func (cc *ChunkCache) Store(chunk *world.Chunk) error {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	if !cc.isReady {
		return fmt.Errorf("кеш чанков не готов")
	}

	value := make([]byte, world.ChunkVolume)
	for i, id := range chunk.Blocks {
		value[i] = byte(id)
	}

	err := cc.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cc.chunkKey(chunk.Coords), value)
	})
	if err != nil {
		return fmt.Errorf("ошибка записи чанка (%d, %d): %w", chunk.Coords.X, chunk.Coords.Z, err)
	}

	return nil
}

// Load возвращает чанк из кеша или nil, если он там не сохранён
func (cc *ChunkCache) Load(coords vec.Vec2) (*world.Chunk, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	if !cc.isReady {
		return nil, fmt.Errorf("кеш чанков не готов")
	}

	var value []byte
	err := cc.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cc.chunkKey(coords))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения чанка (%d, %d): %w", coords.X, coords.Z, err)
	}
	if len(value) != world.ChunkVolume {
		return nil, fmt.Errorf("повреждённая запись чанка (%d, %d): %d байт", coords.X, coords.Z, len(value))
	}

	chunk := world.NewChunk(coords)
	for i, code := range value {
		id := block.BlockID(code)
		if !block.IsValid(id) {
			return nil, fmt.Errorf("повреждённая запись чанка (%d, %d): код блока %d", coords.X, coords.Z, code)
		}
		chunk.Blocks[i] = id
	}

	return chunk, nil
}
