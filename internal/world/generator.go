package world

import (
	"github.com/annel0/voxel-game/internal/util"
	"github.com/annel0/voxel-game/internal/vec"
	"github.com/annel0/voxel-game/internal/world/block"
)

// Параметры фрактального шума (FBM) для рельефа
const (
	numOctaves    = 4     // Количество октав шума
	baseFrequency = 0.008 // Частота первой октавы
	persistence   = 0.5   // Затухание амплитуды по октавам
	lacunarity    = 2.0   // Рост частоты по октавам
)

// Общие параметры генерации
const (
	// WaterLevel задаёт высоту поверхности воды
	WaterLevel = 40

	// BeachMax задаёт максимальную высоту, на которой поверхность остаётся песком
	BeachMax = WaterLevel + 2

	minTreeDistance    = 6    // Минимальный шаг сетки деревьев
	treeNoiseScale     = 0.05 // Масштаб шума для решения о дереве
	treeNoiseThreshold = 0.6  // Порог шума, выше которого растёт дерево
	trunkHeight        = 4    // Высота ствола в блоках
	canopyRadius       = 2    // Максимальный радиус кроны
)

// WorldGenerator детерминированно генерирует ландшафт мира.
// Одинаковая пара (сид, координаты чанка) всегда даёт побитово
// идентичный чанк: никакой внешней случайности в генерации нет.
type WorldGenerator struct {
	seed    int64
	terrain *util.FractalNoise
}

// NewWorldGenerator создаёт генератор мира с указанным сидом
func NewWorldGenerator(seed int64) *WorldGenerator {
	return &WorldGenerator{
		seed:    seed,
		terrain: util.NewFractalNoise(seed, numOctaves, baseFrequency, persistence, lacunarity),
	}
}

// Seed возвращает сид генератора
func (wg *WorldGenerator) Seed() int64 {
	return wg.seed
}

// HeightAt возвращает высоту рельефа в глобальной колонке (gx, gz).
// Шум вычисляется в глобальных координатах, поэтому высота непрерывна
// через границы чанков и швов не возникает.
func (wg *WorldGenerator) HeightAt(gx, gz int) int {
	normalized := wg.terrain.At(float64(gx), float64(gz))

	// Базовая высота WaterLevel+15, амплитуда 15: диапазон примерно 40..70
	// до ограничения сверху высотой чанка.
	height := int(normalized*15.0 + float64(WaterLevel)+15.0)

	if height > ChunkHeight-5 {
		height = ChunkHeight - 5
	}
	if height < 1 {
		height = 1
	}
	return height
}

// surfaceBlock возвращает тип верхнего слоя для указанной высоты
func surfaceBlock(height int) block.BlockID {
	if height <= BeachMax {
		return block.SandBlockID // Низины у воды становятся пляжем
	}
	return block.GrassBlockID
}

// subsurfaceBlock возвращает тип слоя под поверхностью
func subsurfaceBlock(surface block.BlockID) block.BlockID {
	if surface == block.SandBlockID {
		return block.SandBlockID // Под пляжем продолжается песок
	}
	return block.DirtBlockID
}

// GenerateChunk генерирует чанк по его координатам: сначала рельеф
// по колонкам, затем деревья. Функция чистая по отношению к (сид, координаты).
func (wg *WorldGenerator) GenerateChunk(coords vec.Vec2) *Chunk {
	chunk := NewChunk(coords)

	globalStartX := coords.X << 4 // chunkX * 16
	globalStartZ := coords.Z << 4

	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			gx := globalStartX + x
			gz := globalStartZ + z

			height := wg.HeightAt(gx, gz)
			top := surfaceBlock(height)
			sub := subsurfaceBlock(top)

			for y := 0; y < ChunkHeight; y++ {
				var id block.BlockID
				switch {
				case y < height-8:
					id = block.StoneBlockID // Скальное основание
				case y < height-3:
					id = sub
				case y < height:
					id = top
				case y < WaterLevel:
					id = block.WaterBlockID // Вода до уровня моря
				default:
					id = block.AirBlockID
				}
				chunk.Set(x, y, z, id)
			}
		}
	}

	wg.placeTrees(chunk)

	return chunk
}

// shouldPlaceTree решает, растёт ли дерево с корнем в глобальной колонке.
// Решение зависит только от сида и глобальных координат, поэтому соседние
// чанки приходят к одинаковому выводу о деревьях на своей границе.
func (wg *WorldGenerator) shouldPlaceTree(gx, gz int) bool {
	// Сетка с шагом minTreeDistance не даёт деревьям скучиваться
	if gx%minTreeDistance != 0 || gz%minTreeDistance != 0 {
		return false
	}

	height := wg.HeightAt(gx, gz)
	if height <= BeachMax {
		return false // На пляже и под водой деревья не растут
	}

	treeNoise := wg.terrain.Raw(float64(gx)*treeNoiseScale, float64(gz)*treeNoiseScale)
	return treeNoise > treeNoiseThreshold
}

// placeTrees вписывает в чанк деревья, чьи корни лежат в нём самом или
// достаточно близко за его границей, чтобы крона доставала внутрь.
// Каждый чанк самостоятельно восстанавливает форму пограничных деревьев,
// поэтому результат не зависит от порядка генерации соседей.
func (wg *WorldGenerator) placeTrees(chunk *Chunk) {
	globalStartX := chunk.Coords.X << 4
	globalStartZ := chunk.Coords.Z << 4

	for gx := globalStartX - canopyRadius; gx < globalStartX+ChunkSize+canopyRadius; gx++ {
		for gz := globalStartZ - canopyRadius; gz < globalStartZ+ChunkSize+canopyRadius; gz++ {
			if !wg.shouldPlaceTree(gx, gz) {
				continue
			}
			wg.writeTree(chunk, gx, gz)
		}
	}
}

// writeTree записывает в чанк те блоки дерева с корнем (gx, gz),
// которые попадают в границы этого чанка
func (wg *WorldGenerator) writeTree(chunk *Chunk, gx, gz int) {
	baseY := wg.HeightAt(gx, gz) // Ствол начинается над верхним блоком рельефа
	topY := baseY + trunkHeight

	// Ствол
	for y := baseY; y < topY && y < ChunkHeight; y++ {
		wg.setInChunk(chunk, gx, y, gz, block.WoodBlockID, false)
	}

	// Крона: слои относительно вершины ствола, сужающиеся кверху
	for dy := -2; dy <= 1; dy++ {
		leafY := topY + dy
		if leafY < 0 || leafY >= ChunkHeight {
			continue
		}

		var radius int
		switch dy {
		case 1:
			radius = 0
		case 0:
			radius = 1
		default:
			radius = canopyRadius
		}

		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				// Углы нижних слоёв кроны срезаются
				if radius == canopyRadius && abs(dx) == canopyRadius && abs(dz) == canopyRadius {
					continue
				}
				// Ячейки ствола листьями не заменяются
				if dx == 0 && dz == 0 && leafY >= baseY && leafY < topY {
					continue
				}
				wg.setInChunk(chunk, gx+dx, leafY, gz+dz, block.LeavesBlockID, true)
			}
		}
	}
}

// setInChunk записывает блок по глобальным координатам, если ячейка лежит
// в границах чанка. При leavesOnly запись не затирает дерево другого ствола.
func (wg *WorldGenerator) setInChunk(chunk *Chunk, gx, y, gz int, id block.BlockID, leavesOnly bool) {
	globalStartX := chunk.Coords.X << 4
	globalStartZ := chunk.Coords.Z << 4

	lx := gx - globalStartX
	lz := gz - globalStartZ
	if lx < 0 || lx >= ChunkSize || lz < 0 || lz >= ChunkSize {
		return
	}

	if leavesOnly && chunk.Get(lx, y, lz) == block.WoodBlockID {
		return
	}
	chunk.Set(lx, y, lz, id)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
