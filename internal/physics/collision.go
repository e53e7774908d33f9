package physics

import (
	"math"

	"github.com/annel0/voxel-game/internal/vec"
)

// Константы движения игрока
const (
	PlayerHalfWidth = 0.3 // Половина ширины игрока в блоках
	PlayerHeight    = 1.8 // Высота игрока в блоках
	EyeHeight       = 1.6 // Высота глаз над ногами

	gravity          = -25.0 // Ускорение свободного падения, блоков/с²
	terminalVelocity = -50.0 // Предельная скорость падения
	jumpVelocity     = 8.5   // Начальная скорость прыжка
	epsilon          = 0.001
)

// SolidChecker возвращает true, если блок по глобальным координатам твердый.
// Физика не знает о чанках: мир передаёт замыкание над своим состоянием.
type SolidChecker func(pos vec.Vec3) bool

// AABB представляет осевыравненный ограничивающий параллелепипед
type AABB struct {
	Min vec.Vec3Float
	Max vec.Vec3Float
}

// AABBFromPosition строит параллелепипед сущности по позиции её ног
func AABBFromPosition(pos vec.Vec3Float, halfWidth, height float64) AABB {
	return AABB{
		Min: vec.Vec3Float{X: pos.X - halfWidth, Y: pos.Y, Z: pos.Z - halfWidth},
		Max: vec.Vec3Float{X: pos.X + halfWidth, Y: pos.Y + height, Z: pos.Z + halfWidth},
	}
}

// Intersects проверяет пересечение двух параллелепипедов
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y &&
		a.Min.Z < b.Max.Z && a.Max.Z > b.Min.Z
}

// collidesWithBlocks проверяет, пересекает ли параллелепипед хотя бы
// один твердый блок
func collidesWithBlocks(box AABB, solidAt SolidChecker) bool {
	minX := int(math.Floor(box.Min.X))
	maxX := int(math.Floor(box.Max.X - epsilon))
	minY := int(math.Floor(box.Min.Y))
	maxY := int(math.Floor(box.Max.Y - epsilon))
	minZ := int(math.Floor(box.Min.Z))
	maxZ := int(math.Floor(box.Max.Z - epsilon))

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if solidAt(vec.Vec3{X: x, Y: y, Z: z}) {
					return true
				}
			}
		}
	}
	return false
}

// highestSupportTop ищет верхнюю грань самого высокого твердого блока
// под площадью игрока среди слоев [lowY, highY]. Возвращает уровень ног
// после приземления на этот блок.
func highestSupportTop(pos vec.Vec3Float, lowY, highY int, solidAt SolidChecker) (int, bool) {
	minX := int(math.Floor(pos.X - PlayerHalfWidth))
	maxX := int(math.Floor(pos.X + PlayerHalfWidth - epsilon))
	minZ := int(math.Floor(pos.Z - PlayerHalfWidth))
	maxZ := int(math.Floor(pos.Z + PlayerHalfWidth - epsilon))

	for y := highY; y >= lowY; y-- {
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				if solidAt(vec.Vec3{X: x, Y: y, Z: z}) {
					return y + 1, true
				}
			}
		}
	}
	return 0, false
}

// Player представляет физическое тело игрока
type Player struct {
	Position vec.Vec3Float // Позиция ног
	Velocity vec.Vec3Float
	OnGround bool
}

// NewPlayer создаёт игрока в указанной позиции
func NewPlayer(pos vec.Vec3Float) *Player {
	return &Player{Position: pos}
}

// EyePosition возвращает позицию глаз игрока
func (p *Player) EyePosition() vec.Vec3Float {
	return vec.Vec3Float{X: p.Position.X, Y: p.Position.Y + EyeHeight, Z: p.Position.Z}
}

// Jump задаёт вертикальную скорость прыжка, если игрок стоит на земле
func (p *Player) Jump() {
	if p.OnGround {
		p.Velocity.Y = jumpVelocity
		p.OnGround = false
	}
}

// ApplyPhysics продвигает игрока на dt секунд: гравитация, затем
// поосевое перемещение с разрешением столкновений. Движение по каждой
// оси откатывается независимо, поэтому скольжение вдоль стен сохраняется.
func (p *Player) ApplyPhysics(dt float64, solidAt SolidChecker) {
	if !p.OnGround {
		p.Velocity.Y += gravity * dt
		if p.Velocity.Y < terminalVelocity {
			p.Velocity.Y = terminalVelocity
		}
	}

	// Ось X
	if p.Velocity.X != 0 {
		next := p.Position
		next.X += p.Velocity.X * dt
		if collidesWithBlocks(AABBFromPosition(next, PlayerHalfWidth, PlayerHeight), solidAt) {
			p.Velocity.X = 0
		} else {
			p.Position = next
		}
	}

	// Ось Z
	if p.Velocity.Z != 0 {
		next := p.Position
		next.Z += p.Velocity.Z * dt
		if collidesWithBlocks(AABBFromPosition(next, PlayerHalfWidth, PlayerHeight), solidAt) {
			p.Velocity.Z = 0
		} else {
			p.Position = next
		}
	}

	// Ось Y, падение. За тик ноги могут пройти больше одного блока,
	// поэтому опора ищется развёрткой по всем слоям между старой и новой
	// позициями: проверка только конечной точки пропустила бы тонкую
	// платформу и оставила игрока внутри пола.
	if p.Velocity.Y < 0 {
		next := p.Position
		next.Y += p.Velocity.Y * dt
		lowY := int(math.Floor(next.Y))
		highY := int(math.Floor(p.Position.Y - epsilon))
		if top, ok := highestSupportTop(p.Position, lowY, highY, solidAt); ok {
			// Приземление: выравниваем ноги по верхней грани опоры
			p.Position.Y = float64(top)
			p.OnGround = true
			p.Velocity.Y = 0
		} else {
			p.Position = next
			p.OnGround = false
		}
	}

	// Ось Y, подъем
	if p.Velocity.Y > 0 {
		next := p.Position
		next.Y += p.Velocity.Y * dt
		if collidesWithBlocks(AABBFromPosition(next, PlayerHalfWidth, PlayerHeight), solidAt) {
			p.Velocity.Y = 0
		} else {
			p.Position = next
			p.OnGround = false
		}
	}

	// Потеря опоры: блок под ногами мог быть разрушен
	if p.OnGround {
		support := AABB{
			Min: vec.Vec3Float{X: p.Position.X - PlayerHalfWidth, Y: p.Position.Y - 0.05, Z: p.Position.Z - PlayerHalfWidth},
			Max: vec.Vec3Float{X: p.Position.X + PlayerHalfWidth, Y: p.Position.Y, Z: p.Position.Z + PlayerHalfWidth},
		}
		if !collidesWithBlocks(support, solidAt) {
			p.OnGround = false
		}
	}
}
