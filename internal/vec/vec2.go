package vec

// Vec2 представляет координаты в горизонтальной плоскости мира (X, Z).
// Используется и для глобальных координат колонок, и для координат чанков.
type Vec2 struct {
	X, Z int
}

// ToChunkCoords преобразует глобальные координаты колонки в координаты чанка
func (v Vec2) ToChunkCoords() Vec2 {
	return Vec2{X: v.X >> 4, Z: v.Z >> 4} // Деление на 16 с округлением вниз
}

// LocalInChunk возвращает локальные координаты внутри чанка
func (v Vec2) LocalInChunk() Vec2 {
	return Vec2{X: v.X & 0xF, Z: v.Z & 0xF} // Модуль 16
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Z: v.Z + other.Z}
}

// ChebyshevDistanceTo возвращает расстояние Чебышёва до другой точки.
// Именно эта метрика определяет квадратное окно видимости вокруг игрока.
func (v Vec2) ChebyshevDistanceTo(other Vec2) int {
	dx := v.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dz := v.Z - other.Z
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}
