package vec

import "math"

// Vec3 представляет трехмерный вектор с целочисленными координатами блока
type Vec3 struct {
	X int
	Y int
	Z int
}

// ToVec2 преобразует Vec3 в Vec2, отбрасывая вертикальную координату
func (v Vec3) ToVec2() Vec2 {
	return Vec2{X: v.X, Z: v.Z}
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Vec3Float представляет трехмерный вектор с плавающими координатами.
// Применяется для позиций и скоростей сущностей, не привязанных к сетке блоков.
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Scale умножает вектор на скаляр
func (v Vec3Float) Scale(s float64) Vec3Float {
	return Vec3Float{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Floor возвращает координаты блока, содержащего точку
func (v Vec3Float) Floor() Vec3 {
	return Vec3{
		X: int(math.Floor(v.X)),
		Y: int(math.Floor(v.Y)),
		Z: int(math.Floor(v.Z)),
	}
}

// Length возвращает длину вектора
func (v Vec3Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized возвращает вектор единичной длины того же направления.
// Нулевой вектор возвращается без изменений.
func (v Vec3Float) Normalized() Vec3Float {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}
