package block

import "fmt"

// BlockID представляет тип блока. Набор типов закрыт и фиксирован:
// новые блоки добавляются расширением перечисления и таблицы свойств,
// динамической регистрации нет. Порядковые номера стабильны, они же
// являются кодами блоков в формате сохранения.
type BlockID uint8

// Типы блоков
const (
	AirBlockID BlockID = iota
	DirtBlockID
	SandBlockID
	GrassBlockID
	WoodBlockID
	LeavesBlockID
	PlanksBlockID
	GlassBlockID
	WaterBlockID
	StoneBlockID

	blockCount // всегда последний: количество типов
)

// Count возвращает количество типов блоков
func Count() int {
	return int(blockCount)
}

// Properties содержит статические свойства типа блока
type Properties struct {
	Name        string     // Имя для логов и отладки
	Solid       bool       // Участвует ли блок в коллизиях и окклюзии
	Transparent bool       // Прозрачный блок не скрывает грани соседей
	Color       [3]float32 // Базовый цвет RGB в диапазоне [0, 1]
	AtlasCol    uint8      // Колонка тайла в текстурном атласе
	AtlasRow    uint8      // Строка тайла в текстурном атласе
}

// Таблица свойств, индексируемая порядковым номером блока.
// Цвета и координаты атласа фиксированы на уровне таблицы.
var properties = [blockCount]Properties{
	AirBlockID:    {Name: "air", Solid: false, Transparent: true, Color: [3]float32{0.0, 0.0, 0.0}},
	DirtBlockID:   {Name: "dirt", Solid: true, Transparent: false, Color: [3]float32{0.55, 0.27, 0.07}, AtlasCol: 0, AtlasRow: 0},
	SandBlockID:   {Name: "sand", Solid: true, Transparent: false, Color: [3]float32{0.76, 0.70, 0.50}, AtlasCol: 1, AtlasRow: 0},
	GrassBlockID:  {Name: "grass", Solid: true, Transparent: false, Color: [3]float32{0.13, 0.55, 0.13}, AtlasCol: 2, AtlasRow: 0},
	WoodBlockID:   {Name: "wood", Solid: true, Transparent: false, Color: [3]float32{0.40, 0.26, 0.13}, AtlasCol: 3, AtlasRow: 0},
	LeavesBlockID: {Name: "leaves", Solid: true, Transparent: true, Color: [3]float32{0.0, 0.39, 0.0}, AtlasCol: 4, AtlasRow: 0},
	PlanksBlockID: {Name: "planks", Solid: true, Transparent: false, Color: [3]float32{0.72, 0.52, 0.04}, AtlasCol: 5, AtlasRow: 0},
	GlassBlockID:  {Name: "glass", Solid: true, Transparent: true, Color: [3]float32{0.8, 0.9, 1.0}, AtlasCol: 6, AtlasRow: 0},
	WaterBlockID:  {Name: "water", Solid: true, Transparent: true, Color: [3]float32{0.0, 0.4, 0.8}, AtlasCol: 7, AtlasRow: 0},
	StoneBlockID:  {Name: "stone", Solid: true, Transparent: false, Color: [3]float32{0.5, 0.5, 0.5}, AtlasCol: 8, AtlasRow: 0},
}

// IsValid проверяет, является ли код допустимым типом блока.
// Используется при разборе сохранений.
func IsValid(id BlockID) bool {
	return id < blockCount
}

// Get возвращает свойства блока. Полная функция над закрытым перечислением:
// рассматривать недопустимый код как ошибку программирования.
func Get(id BlockID) Properties {
	if !IsValid(id) {
		panic(fmt.Sprintf("block: недопустимый тип блока %d", id))
	}
	return properties[id]
}

// IsSolid возвращает true, если блок твердый
func (id BlockID) IsSolid() bool {
	return Get(id).Solid
}

// IsTransparent возвращает true, если блок прозрачный
func (id BlockID) IsTransparent() bool {
	return Get(id).Transparent
}

// Color возвращает базовый цвет блока
func (id BlockID) Color() [3]float32 {
	return Get(id).Color
}

// AtlasCoords возвращает координаты тайла блока в текстурном атласе
func (id BlockID) AtlasCoords() (col, row uint8) {
	p := Get(id)
	return p.AtlasCol, p.AtlasRow
}

// Name возвращает имя блока
func (id BlockID) Name() string {
	return Get(id).Name
}
