package world

import (
	"sort"
	"sync"

	"github.com/annel0/voxel-game/internal/logging"
	"github.com/annel0/voxel-game/internal/metrics"
	"github.com/annel0/voxel-game/internal/vec"
	"github.com/annel0/voxel-game/internal/world/block"
)

// ChunkCache представляет долговременный кеш выгруженных чанков.
// Менеджер пишет в него чанки при выгрузке и читает при возврате
// игрока, если чанк не найден в памяти.
type ChunkCache interface {
	// Store сохраняет чанк в кеш
	Store(chunk *Chunk) error
	// Load возвращает чанк из кеша или nil, если его там нет
	Load(coords vec.Vec2) (*Chunk, error)
}

// Manager владеет всеми чанками мира и координирует их жизненный цикл.
// Чанк находится в одном из двух состояний: Resident (в окне видимости,
// участвует в симуляции) или Absent. Однажды созданный чанк при выгрузке
// переходит в удержанный снимок и никогда не генерируется заново:
// повторная генерация могла бы молча расходиться с накопленными правками.
//
// Все мутации мира сериализуются через методы менеджера.
type Manager struct {
	mu sync.RWMutex

	seed         int64
	generator    *WorldGenerator
	viewDistance int

	resident map[vec.Vec2]*Chunk // Чанки в окне видимости
	retained map[vec.Vec2]*Chunk // Выгруженные, но сохранённые в памяти чанки

	cache ChunkCache // Долговременный кеш выгруженных чанков (опционально)
}

// NewManager создаёт менеджер мира с указанным сидом и радиусом видимости
func NewManager(seed int64, viewDistance int) *Manager {
	return &Manager{
		seed:         seed,
		generator:    NewWorldGenerator(seed),
		viewDistance: viewDistance,
		resident:     make(map[vec.Vec2]*Chunk),
		retained:     make(map[vec.Vec2]*Chunk),
	}
}

// SetChunkCache подключает долговременный кеш выгруженных чанков
func (m *Manager) SetChunkCache(cache ChunkCache) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = cache
}

// Seed возвращает сид мира
func (m *Manager) Seed() int64 {
	return m.seed
}

// ViewDistance возвращает радиус видимости в чанках
func (m *Manager) ViewDistance() int {
	return m.viewDistance
}

// Generator возвращает генератор мира
func (m *Manager) Generator() *WorldGenerator {
	return m.generator
}

// RestoreSnapshot устанавливает чанки, прочитанные из сохранения.
// Все они начинают как удержанные: EnsureResident переведёт нужные
// в резидентное состояние при первом же тике.
func (m *Manager) RestoreSnapshot(chunks []*Chunk) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, chunk := range chunks {
		m.retained[chunk.Coords] = chunk
	}
}

// EnsureResident приводит резидентное множество к шару Чебышёва радиуса
// viewDistance вокруг чанка игрока: недостающие чанки восстанавливаются
// или генерируются, а вышедшие из окна выгружаются в удержанный снимок.
// Возвращает списки добавленных и выгруженных координат.
func (m *Manager) EnsureResident(playerChunk vec.Vec2) (added, removed []vec.Vec2) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.viewDistance
	want := make(map[vec.Vec2]struct{}, (2*r+1)*(2*r+1))
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			want[vec.Vec2{X: playerChunk.X + dx, Z: playerChunk.Z + dz}] = struct{}{}
		}
	}

	// Выгружаем чанки, вышедшие из окна видимости
	for coords, chunk := range m.resident {
		if _, ok := want[coords]; ok {
			continue
		}
		m.retained[coords] = chunk
		if m.cache != nil {
			if err := m.cache.Store(chunk); err != nil {
				logging.Warn("Не удалось записать чанк (%d, %d) в кеш: %v", coords.X, coords.Z, err)
			}
		}
		delete(m.resident, coords)
		removed = append(removed, coords)
	}

	// Загружаем недостающие чанки
	for coords := range want {
		if _, ok := m.resident[coords]; ok {
			continue
		}
		chunk := m.obtainChunk(coords)
		chunk.MarkDirty()
		m.resident[coords] = chunk
		added = append(added, coords)
	}

	// Меши соседей новых чанков устарели: видимость граней на границе
	// зависит от блоков соседнего чанка
	for _, coords := range added {
		m.markResidentNeighborsDirty(coords)
	}

	metrics.ResidentChunks.Set(float64(len(m.resident)))

	sortCoords(added)
	sortCoords(removed)
	return added, removed
}

// obtainChunk возвращает чанк для координат: из удержанного снимка,
// из долговременного кеша или от генератора. Вызывается под mu.
func (m *Manager) obtainChunk(coords vec.Vec2) *Chunk {
	if chunk, ok := m.retained[coords]; ok {
		delete(m.retained, coords)
		metrics.ChunksRestored.Inc()
		return chunk
	}

	if m.cache != nil {
		chunk, err := m.cache.Load(coords)
		if err != nil {
			logging.Warn("Ошибка чтения чанка (%d, %d) из кеша: %v", coords.X, coords.Z, err)
		} else if chunk != nil {
			metrics.ChunksRestored.Inc()
			return chunk
		}
	}

	metrics.ChunksGenerated.Inc()
	return m.generator.GenerateChunk(coords)
}

// markResidentNeighborsDirty помечает меши соседних резидентных чанков
// устаревшими. Вызывается под mu.
func (m *Manager) markResidentNeighborsDirty(coords vec.Vec2) {
	for _, d := range [4]vec.Vec2{{X: 1}, {X: -1}, {Z: 1}, {Z: -1}} {
		if neighbor, ok := m.resident[coords.Add(d)]; ok {
			neighbor.MarkDirty()
		}
	}
}

// Chunk возвращает резидентный чанк по координатам
func (m *Manager) Chunk(coords vec.Vec2) (*Chunk, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	chunk, ok := m.resident[coords]
	return chunk, ok
}

// ResidentCoords возвращает отсортированный список резидентных координат
func (m *Manager) ResidentCoords() []vec.Vec2 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	coords := make([]vec.Vec2, 0, len(m.resident))
	for c := range m.resident {
		coords = append(coords, c)
	}
	sortCoords(coords)
	return coords
}

// ProbeBlock возвращает блок по глобальным координатам и признак того,
// что владеющий чанк резидентен. Вертикальный выход за пределы мира
// считается воздухом в резидентном чанке.
func (m *Manager) ProbeBlock(pos vec.Vec3) (block.BlockID, bool) {
	chunkCoords := pos.ToVec2().ToChunkCoords()

	m.mu.RLock()
	chunk, ok := m.resident[chunkCoords]
	m.mu.RUnlock()

	if !ok {
		return block.AirBlockID, false
	}
	if pos.Y < 0 || pos.Y >= ChunkHeight {
		return block.AirBlockID, true
	}

	local := pos.ToVec2().LocalInChunk()
	return chunk.Get(local.X, pos.Y, local.Z), true
}

// BlockAt возвращает блок по глобальным координатам.
// Незагруженное пространство условно считается воздухом: для коллизий
// и лучей отсутствие чанка не является ошибкой.
func (m *Manager) BlockAt(pos vec.Vec3) block.BlockID {
	id, _ := m.ProbeBlock(pos)
	return id
}

// SetBlock устанавливает блок по глобальным координатам.
// Возвращает false, если владеющий чанк не резидентен или координата
// вне вертикальных границ мира: правка отклоняется без создания чанка.
func (m *Manager) SetBlock(pos vec.Vec3, id block.BlockID) bool {
	if pos.Y < 0 || pos.Y >= ChunkHeight {
		metrics.EditsRejected.Inc()
		return false
	}

	chunkCoords := pos.ToVec2().ToChunkCoords()

	m.mu.Lock()
	defer m.mu.Unlock()

	chunk, ok := m.resident[chunkCoords]
	if !ok {
		metrics.EditsRejected.Inc()
		return false
	}

	local := pos.ToVec2().LocalInChunk()
	if chunk.Get(local.X, pos.Y, local.Z) == id {
		// Значение не меняется: правка принята, но меши соседей
		// перестраивать не нужно
		return true
	}
	chunk.Set(local.X, pos.Y, local.Z, id)
	metrics.BlocksEdited.Inc()

	// Правка на границе затрагивает видимость граней соседнего чанка
	if local.X == 0 {
		m.markNeighborDirty(chunkCoords, vec.Vec2{X: -1})
	}
	if local.X == ChunkSize-1 {
		m.markNeighborDirty(chunkCoords, vec.Vec2{X: 1})
	}
	if local.Z == 0 {
		m.markNeighborDirty(chunkCoords, vec.Vec2{Z: -1})
	}
	if local.Z == ChunkSize-1 {
		m.markNeighborDirty(chunkCoords, vec.Vec2{Z: 1})
	}

	return true
}

// markNeighborDirty помечает соседний резидентный чанк. Вызывается под mu.
func (m *Manager) markNeighborDirty(coords, delta vec.Vec2) {
	if neighbor, ok := m.resident[coords.Add(delta)]; ok {
		neighbor.MarkDirty()
	}
}

// DirtyResident возвращает резидентные чанки с устаревшими мешами
func (m *Manager) DirtyResident() []*Chunk {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var dirty []*Chunk
	for _, chunk := range m.resident {
		if chunk.IsDirty() {
			dirty = append(dirty, chunk)
		}
	}
	sort.Slice(dirty, func(i, j int) bool {
		return coordsLess(dirty[i].Coords, dirty[j].Coords)
	})
	return dirty
}

// KnownChunks возвращает все чанки, известные миру (резидентные и
// удержанные), в детерминированном порядке. Именно это множество
// попадает в сохранение; никогда не посещённые координаты
// восстанавливаются генератором при следующей загрузке.
func (m *Manager) KnownChunks() []*Chunk {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chunks := make([]*Chunk, 0, len(m.resident)+len(m.retained))
	for _, chunk := range m.resident {
		chunks = append(chunks, chunk)
	}
	for _, chunk := range m.retained {
		chunks = append(chunks, chunk)
	}
	sort.Slice(chunks, func(i, j int) bool {
		return coordsLess(chunks[i].Coords, chunks[j].Coords)
	})
	return chunks
}

func coordsLess(a, b vec.Vec2) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Z < b.Z
}

func sortCoords(coords []vec.Vec2) {
	sort.Slice(coords, func(i, j int) bool {
		return coordsLess(coords[i], coords[j])
	})
}
