package world

import (
	"testing"

	"github.com/annel0/voxel-game/internal/vec"
	"github.com/annel0/voxel-game/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorDeterministic(t *testing.T) {
	coords := vec.Vec2{X: 3, Z: -7}

	a := NewWorldGenerator(12345).GenerateChunk(coords)
	b := NewWorldGenerator(12345).GenerateChunk(coords)

	// Два независимых генератора с одним сидом дают побитово идентичный чанк
	require.True(t, a.Equal(b), "Чанки с одинаковым сидом должны совпадать побитово")
}

func TestGeneratorSeedChangesTerrain(t *testing.T) {
	coords := vec.Vec2{X: 0, Z: 0}

	a := NewWorldGenerator(12345).GenerateChunk(coords)
	b := NewWorldGenerator(54321).GenerateChunk(coords)

	assert.False(t, a.Equal(b), "Разные сиды должны давать разный ландшафт")
}

func TestGeneratorHeightBand(t *testing.T) {
	wg := NewWorldGenerator(12345)

	for gx := -64; gx < 64; gx += 7 {
		for gz := -64; gz < 64; gz += 7 {
			h := wg.HeightAt(gx, gz)
			assert.GreaterOrEqual(t, h, 1, "Высота не может опускаться ниже 1")
			assert.LessOrEqual(t, h, ChunkHeight-5, "Высота не может превышать %d", ChunkHeight-5)
		}
	}
}

func TestGeneratorColumnLayers(t *testing.T) {
	wg := NewWorldGenerator(12345)
	chunk := wg.GenerateChunk(vec.Vec2{X: 0, Z: 0})

	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			h := wg.HeightAt(x, z)

			top := chunk.Get(x, h-1, z)
			if h <= BeachMax {
				// Низины становятся пляжем, под которым продолжается песок
				assert.Equal(t, block.SandBlockID, top, "Поверхность на высоте %d должна быть песком", h)
			} else if top != block.WoodBlockID && top != block.LeavesBlockID {
				assert.Equal(t, block.GrassBlockID, top, "Поверхность на высоте %d должна быть травой", h)
			}

			// Глубокие слои всегда камень
			if h-9 >= 0 {
				assert.Equal(t, block.StoneBlockID, chunk.Get(x, h-9, z), "Глубина ниже h-8 должна быть камнем")
			}

			// Над низкой поверхностью до уровня моря стоит вода
			if h < WaterLevel {
				assert.Equal(t, block.WaterBlockID, chunk.Get(x, h, z), "Колонка (%d, %d) должна быть затоплена до уровня моря", x, z)
				assert.Equal(t, block.WaterBlockID, chunk.Get(x, WaterLevel-1, z))
			}
			assert.Equal(t, block.AirBlockID, chunk.Get(x, ChunkHeight-1, z), "Верх мира всегда воздух")
		}
	}
}

func TestGeneratorSeamlessBorders(t *testing.T) {
	wg := NewWorldGenerator(999)

	// Высота вычисляется в глобальных координатах: колонки по обе стороны
	// границы чанков берутся из одного непрерывного поля шума
	for gz := -16; gz < 16; gz++ {
		left := wg.HeightAt(15, gz)
		right := wg.HeightAt(16, gz)
		diff := left - right
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, 4, "Скачок высоты %d -> %d на границе чанков в gz=%d", left, right, gz)
	}
}

func TestGeneratorBorderTreesConsistent(t *testing.T) {
	wg := NewWorldGenerator(12345)

	// Ищем дерево, чья крона пересекает границу чанков, и проверяем,
	// что оба чанка записали совпадающие блоки на своей стороне
	found := false
	for cx := -4; cx <= 4 && !found; cx++ {
		for cz := -4; cz <= 4 && !found; cz++ {
			a := wg.GenerateChunk(vec.Vec2{X: cx, Z: cz})
			b := wg.GenerateChunk(vec.Vec2{X: cx + 1, Z: cz})

			gx := (cx+1)*16 - canopyRadius // Корень у границы: крона достает в соседний чанк
			if gx%minTreeDistance != 0 {
				continue
			}
			for gz := cz * 16; gz < (cz+1)*16; gz++ {
				if !wg.shouldPlaceTree(gx, gz) {
					continue
				}
				found = true

				// Листья в соседнем чанке присутствуют на высоте кроны
				baseY := wg.HeightAt(gx, gz)
				leafY := baseY + trunkHeight - 1
				lz := gz - cz*16
				assert.Equal(t, block.LeavesBlockID, b.Get(0, leafY, lz),
					"Сосед должен восстановить листья пограничного дерева")
				assert.Equal(t, block.WoodBlockID, a.Get(ChunkSize-canopyRadius, baseY, lz),
					"Ствол должен стоять в родном чанке")
			}
		}
	}
	if !found {
		t.Skip("В просмотренной области нет деревьев у границы")
	}
}

func TestGeneratorTreeSpacing(t *testing.T) {
	wg := NewWorldGenerator(12345)

	// Деревья растут только на узлах сетки с шагом minTreeDistance
	for gx := -48; gx < 48; gx++ {
		for gz := -48; gz < 48; gz++ {
			if gx%minTreeDistance != 0 || gz%minTreeDistance != 0 {
				assert.False(t, wg.shouldPlaceTree(gx, gz),
					"Дерево вне узла сетки в (%d, %d)", gx, gz)
			}
			if wg.shouldPlaceTree(gx, gz) {
				assert.Greater(t, wg.HeightAt(gx, gz), BeachMax,
					"Дерево на пляже в (%d, %d)", gx, gz)
			}
		}
	}
}
