package physics

import (
	"github.com/annel0/voxel-game/internal/vec"
)

const raycastStep = 0.1

// RaycastResult описывает результат трассировки луча по блокам
type RaycastResult struct {
	Hit      bool
	Position vec.Vec3 // Координаты найденного твердого блока
	Normal   vec.Vec3 // Нормаль грани, через которую луч вошёл в блок
}

// Raycast пошагово трассирует луч из origin в направлении dir (должно
// быть нормализовано) на расстояние до maxDist. Нормаль выводится из
// последней пустой ячейки перед попаданием, поэтому установка блока по
// Position.Add(Normal) всегда кладёт его в свободную ячейку.
func Raycast(origin, dir vec.Vec3Float, maxDist float64, solidAt SolidChecker) RaycastResult {
	prev := origin.Floor()
	for t := 0.0; t <= maxDist; t += raycastStep {
		point := origin.Add(dir.Scale(t))
		cell := point.Floor()
		if cell.Equals(prev) {
			continue
		}
		if solidAt(cell) {
			return RaycastResult{
				Hit:      true,
				Position: cell,
				Normal:   vec.Vec3{X: prev.X - cell.X, Y: prev.Y - cell.Y, Z: prev.Z - cell.Z},
			}
		}
		prev = cell
	}
	return RaycastResult{}
}
