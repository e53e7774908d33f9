package world

import (
	"fmt"

	"github.com/annel0/voxel-game/internal/vec"
	"github.com/annel0/voxel-game/internal/world/block"
)

// Размеры чанка. Мир делится на вертикальные столбы 16x16 блоков
// высотой 64; по вертикали чанки не складываются.
const (
	ChunkSize   = 16 // Горизонтальный размер чанка в блоках
	ChunkHeight = 64 // Высота чанка в блоках
	ChunkVolume = ChunkSize * ChunkSize * ChunkHeight
)

// Chunk представляет участок мира размером 16x16x64 блоков.
// Каждая ячейка всегда содержит ровно один тип блока (Air является допустимым
// значение, не отсутствие). Флаг dirty отмечает, что меш чанка устарел
// относительно данных блоков.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в горизонтальной сетке

	// Blocks хранит плотный массив блоков в порядке x + z*16 + y*256.
	// Поле открыто для чтения: мешер обходит массив напрямую,
	// чтобы построение меша оставалось линейным по объёму чанка.
	Blocks []block.BlockID

	dirty bool
}

// NewChunk создаёт новый чанк, заполненный воздухом
func NewChunk(coords vec.Vec2) *Chunk {
	return &Chunk{
		Coords: coords,
		Blocks: make([]block.BlockID, ChunkVolume),
		dirty:  true,
	}
}

// BlockIndex возвращает индекс ячейки в плоском массиве блоков.
// Порядок линеаризации фиксирован, он же используется форматом сохранения.
func BlockIndex(x, y, z int) int {
	return x + z*ChunkSize + y*ChunkSize*ChunkSize
}

// checkBounds паникует при выходе локальных координат за границы чанка.
// Выход за границы является дефектом вызывающего кода, а не обрабатываемой ошибкой.
func checkBounds(x, y, z int) {
	if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkHeight || z < 0 || z >= ChunkSize {
		panic(fmt.Sprintf("chunk: локальные координаты (%d, %d, %d) вне границ %dx%dx%d",
			x, y, z, ChunkSize, ChunkHeight, ChunkSize))
	}
}

// Get возвращает блок по локальным координатам
func (c *Chunk) Get(x, y, z int) block.BlockID {
	checkBounds(x, y, z)
	return c.Blocks[BlockIndex(x, y, z)]
}

// Set устанавливает блок по локальным координатам и помечает чанк
// грязным. Запись того же значения ничего не меняет.
func (c *Chunk) Set(x, y, z int, id block.BlockID) {
	checkBounds(x, y, z)
	idx := BlockIndex(x, y, z)
	if c.Blocks[idx] == id {
		return
	}
	c.Blocks[idx] = id
	c.dirty = true
}

// IsDirty возвращает true, если меш чанка устарел
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// MarkDirty помечает меш чанка устаревшим
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// MarkClean снимает отметку после перестроения меша
func (c *Chunk) MarkClean() {
	c.dirty = false
}

// Clone создаёт глубокую копию чанка
func (c *Chunk) Clone() *Chunk {
	blocks := make([]block.BlockID, ChunkVolume)
	copy(blocks, c.Blocks)
	return &Chunk{
		Coords: c.Coords,
		Blocks: blocks,
		dirty:  c.dirty,
	}
}

// Equal сравнивает содержимое блоков двух чанков
func (c *Chunk) Equal(other *Chunk) bool {
	if c.Coords != other.Coords {
		return false
	}
	for i := range c.Blocks {
		if c.Blocks[i] != other.Blocks[i] {
			return false
		}
	}
	return true
}
