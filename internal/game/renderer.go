package game

import (
	"github.com/annel0/voxel-game/internal/mesh"
	"github.com/annel0/voxel-game/internal/vec"
)

// Renderer получает готовую геометрию чанков. Игровой цикл не знает,
// что за ним стоит: GPU, сетевой клиент или заглушка в тестах.
type Renderer interface {
	// UploadMesh передаёт геометрию чанка. Вершины заданы в локальных
	// координатах, origin указывает мировое смещение чанка.
	UploadMesh(coords vec.Vec2, m *mesh.Mesh, origin vec.Vec3)

	// DropMesh освобождает геометрию выгруженного чанка
	DropMesh(coords vec.Vec2)
}

// NullRenderer игнорирует всю геометрию. Используется в headless-режиме
// и в тестах игрового цикла.
type NullRenderer struct{}

func (NullRenderer) UploadMesh(vec.Vec2, *mesh.Mesh, vec.Vec3) {}
func (NullRenderer) DropMesh(vec.Vec2)                         {}
