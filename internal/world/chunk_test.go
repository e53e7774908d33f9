package world

import (
	"testing"

	"github.com/annel0/voxel-game/internal/vec"
	"github.com/annel0/voxel-game/internal/world/block"
)

func TestChunkCreateAndGetBlock(t *testing.T) {
	coords := vec.Vec2{X: 5, Z: 10}
	chunk := NewChunk(coords)

	if chunk.Coords.X != 5 || chunk.Coords.Z != 10 {
		t.Errorf("Ожидались координаты {5,10}, получено {%d,%d}", chunk.Coords.X, chunk.Coords.Z)
	}

	// Новый чанк заполнен воздухом
	if id := chunk.Get(3, 4, 7); id != block.AirBlockID {
		t.Errorf("Ожидался пустой блок (AirBlockID), получен %d", id)
	}

	chunk.Set(3, 4, 7, block.StoneBlockID)
	if id := chunk.Get(3, 4, 7); id != block.StoneBlockID {
		t.Errorf("Ожидался StoneBlockID, получен %d", id)
	}
}

func TestChunkBlockIndexOrder(t *testing.T) {
	// Порядок линеаризации x + z*16 + y*256 фиксирован форматом сохранения
	if idx := BlockIndex(0, 0, 0); idx != 0 {
		t.Errorf("Ожидался индекс 0, получен %d", idx)
	}
	if idx := BlockIndex(1, 0, 0); idx != 1 {
		t.Errorf("Ожидался индекс 1, получен %d", idx)
	}
	if idx := BlockIndex(0, 0, 1); idx != 16 {
		t.Errorf("Ожидался индекс 16, получен %d", idx)
	}
	if idx := BlockIndex(0, 1, 0); idx != 256 {
		t.Errorf("Ожидался индекс 256, получен %d", idx)
	}
	if idx := BlockIndex(15, 63, 15); idx != ChunkVolume-1 {
		t.Errorf("Ожидался индекс %d, получен %d", ChunkVolume-1, idx)
	}
}

func TestChunkDirtyFlag(t *testing.T) {
	chunk := NewChunk(vec.Vec2{})
	chunk.MarkClean()

	if chunk.IsDirty() {
		t.Error("Чанк не должен быть грязным после MarkClean")
	}

	chunk.Set(0, 0, 0, block.DirtBlockID)
	if !chunk.IsDirty() {
		t.Error("Чанк должен стать грязным после изменения блока")
	}

	chunk.MarkClean()

	// Запись того же значения не помечает чанк
	chunk.Set(0, 0, 0, block.DirtBlockID)
	if chunk.IsDirty() {
		t.Error("Запись того же значения не должна помечать чанк грязным")
	}
}

func TestChunkOutOfBoundsPanics(t *testing.T) {
	chunk := NewChunk(vec.Vec2{})

	cases := [][3]int{
		{-1, 0, 0},
		{16, 0, 0},
		{0, -1, 0},
		{0, 64, 0},
		{0, 0, 16},
	}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Ожидалась паника для координат (%d, %d, %d)", c[0], c[1], c[2])
				}
			}()
			chunk.Get(c[0], c[1], c[2])
		}()
	}
}

func TestChunkCloneIndependent(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: 1, Z: 2})
	chunk.Set(5, 5, 5, block.GlassBlockID)

	clone := chunk.Clone()
	if !chunk.Equal(clone) {
		t.Error("Клон должен совпадать с оригиналом")
	}

	clone.Set(5, 5, 5, block.SandBlockID)
	if chunk.Get(5, 5, 5) != block.GlassBlockID {
		t.Error("Изменение клона не должно затрагивать оригинал")
	}
}
