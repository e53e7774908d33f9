package mesh

import (
	"github.com/annel0/voxel-game/internal/vec"
	"github.com/annel0/voxel-game/internal/world"
	"github.com/annel0/voxel-game/internal/world/block"
)

// Vertex представляет вершину меша: позиция в локальных координатах чанка,
// затенённый цвет и текстурные координаты в атласе
type Vertex struct {
	Position [3]float32
	Color    [3]float32
	UV       [2]float32
}

// Mesh представляет геометрию одного чанка: список вершин и индексы
// треугольников. Меш неизменяем после построения и не хранит ссылку на
// исходный чанк; при изменении блоков он строится заново целиком.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// FaceCount возвращает количество видимых граней
func (m *Mesh) FaceCount() int {
	return len(m.Vertices) / 4
}

// TriangleCount возвращает количество треугольников
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// NeighborLookup возвращает блок по глобальным координатам и признак
// резидентности владеющего чанка. Мешер обращается к нему только за
// блоками вне собственного чанка.
type NeighborLookup func(pos vec.Vec3) (block.BlockID, bool)

// atlasTiles задаёт размер текстурного атласа в тайлах по каждой оси
const atlasTiles = 16

// faceSpec описывает одну из шести граней блока: смещение к соседу,
// начальный угол квада, два направляющих ребра и коэффициент затенения
type faceSpec struct {
	delta  vec.Vec3   // Направление к соседнему блоку
	origin [3]float32 // Угол квада относительно блока
	u      [3]float32 // Первое ребро квада
	v      [3]float32 // Второе ребро квада
	shade  float32    // Фиксированное затенение грани
}

// Затенение по направлению грани передаёт объём без настоящего освещения:
// верх ярче боков, бока ярче низа.
var faces = [6]faceSpec{
	{delta: vec.Vec3{Y: 1}, origin: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}, shade: 1.0},   // Верх
	{delta: vec.Vec3{Y: -1}, origin: [3]float32{0, 0, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}, shade: 0.5},  // Низ
	{delta: vec.Vec3{Z: 1}, origin: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}, shade: 0.8},   // +Z
	{delta: vec.Vec3{Z: -1}, origin: [3]float32{0, 0, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}, shade: 0.8},  // -Z
	{delta: vec.Vec3{X: 1}, origin: [3]float32{1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}, shade: 0.7},   // +X
	{delta: vec.Vec3{X: -1}, origin: [3]float32{0, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}, shade: 0.7},  // -X
}

// Build строит меш чанка со скрытием невидимых граней. Грань не-воздушного
// блока попадает в меш, только если соседняя ячейка (в том числе лежащая
// в соседнем чанке, доступном через lookup) отсутствует, воздух или
// прозрачна. Функция чистая: одинаковое состояние чанка и соседей всегда
// даёт одинаковое множество граней и число треугольников.
func Build(chunk *world.Chunk, lookup NeighborLookup) *Mesh {
	m := &Mesh{}

	globalStartX := chunk.Coords.X << 4
	globalStartZ := chunk.Coords.Z << 4

	for x := 0; x < world.ChunkSize; x++ {
		for y := 0; y < world.ChunkHeight; y++ {
			for z := 0; z < world.ChunkSize; z++ {
				id := chunk.Blocks[world.BlockIndex(x, y, z)]
				if id == block.AirBlockID {
					continue
				}

				for _, face := range faces {
					nx, ny, nz := x+face.delta.X, y+face.delta.Y, z+face.delta.Z
					if !occludes(chunk, lookup, globalStartX, globalStartZ, nx, ny, nz) {
						m.addFace(x, y, z, id, face)
					}
				}
			}
		}
	}

	return m
}

// occludes возвращает true, если ячейка с локальными координатами
// (nx, ny, nz) скрывает прилегающую грань соседа
func occludes(chunk *world.Chunk, lookup NeighborLookup, globalStartX, globalStartZ, nx, ny, nz int) bool {
	// Над и под миром блоков нет
	if ny < 0 || ny >= world.ChunkHeight {
		return false
	}

	var id block.BlockID
	if nx >= 0 && nx < world.ChunkSize && nz >= 0 && nz < world.ChunkSize {
		id = chunk.Blocks[world.BlockIndex(nx, ny, nz)]
	} else {
		global := vec.Vec3{X: globalStartX + nx, Y: ny, Z: globalStartZ + nz}
		neighbor, ok := lookup(global)
		if !ok {
			return false // Незагруженный чанк не скрывает грани
		}
		id = neighbor
	}

	return id != block.AirBlockID && !id.IsTransparent()
}

// addFace добавляет квад грани: четыре вершины и два треугольника
func (m *Mesh) addFace(x, y, z int, id block.BlockID, face faceSpec) {
	base := [3]float32{
		float32(x) + face.origin[0],
		float32(y) + face.origin[1],
		float32(z) + face.origin[2],
	}

	baseColor := id.Color()
	color := [3]float32{
		baseColor[0] * face.shade,
		baseColor[1] * face.shade,
		baseColor[2] * face.shade,
	}

	col, row := id.AtlasCoords()
	tile := float32(1) / atlasTiles
	u0 := float32(col) * tile
	v0 := float32(row) * tile

	baseIdx := uint32(len(m.Vertices))

	// Углы квада: origin, origin+u, origin+u+v, origin+v
	corners := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, c := range corners {
		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32{
				base[0] + face.u[0]*c[0] + face.v[0]*c[1],
				base[1] + face.u[1]*c[0] + face.v[1]*c[1],
				base[2] + face.u[2]*c[0] + face.v[2]*c[1],
			},
			Color: color,
			UV:    [2]float32{u0 + c[0]*tile, v0 + c[1]*tile},
		})
	}

	m.Indices = append(m.Indices,
		baseIdx, baseIdx+1, baseIdx+2,
		baseIdx, baseIdx+2, baseIdx+3,
	)
}
