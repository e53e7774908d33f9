package game

import (
	"context"
	"fmt"
	"time"

	"github.com/annel0/voxel-game/internal/config"
	"github.com/annel0/voxel-game/internal/logging"
	"github.com/annel0/voxel-game/internal/mesh"
	"github.com/annel0/voxel-game/internal/metrics"
	"github.com/annel0/voxel-game/internal/physics"
	"github.com/annel0/voxel-game/internal/storage"
	"github.com/annel0/voxel-game/internal/vec"
	"github.com/annel0/voxel-game/internal/world"
	"github.com/annel0/voxel-game/internal/world/block"
)

// TickRate определяет частоту обновления игрового цикла
const TickRate = 20

const reachDistance = 5.0 // Дальность взаимодействия с блоками

// Game связывает мир, физику игрока, построение геометрии и сохранение
// в один последовательный игровой цикл. Все изменения мира происходят
// внутри тика, поэтому геометрия всегда согласована с данными чанков.
type Game struct {
	cfg      *config.GameConfig
	world    *world.Manager
	renderer Renderer
	player   *physics.Player

	uploaded    map[vec.Vec2]bool // Чанки с загруженной геометрией
	lastChunk   vec.Vec2
	initialized bool

	lastSave     time.Time
	lastTickTime time.Duration
}

// NewGame создает игру поверх подготовленного менеджера мира
func NewGame(cfg *config.GameConfig, wm *world.Manager, renderer Renderer) *Game {
	if renderer == nil {
		renderer = NullRenderer{}
	}

	spawn := spawnPosition(wm)
	return &Game{
		cfg:      cfg,
		world:    wm,
		renderer: renderer,
		player:   physics.NewPlayer(spawn),
		uploaded: make(map[vec.Vec2]bool),
		lastSave: time.Now(),
	}
}

// spawnPosition подбирает точку появления над поверхностью в начале координат
func spawnPosition(wm *world.Manager) vec.Vec3Float {
	h := wm.Generator().HeightAt(8, 8)
	return vec.Vec3Float{X: 8.5, Y: float64(h) + 1.0, Z: 8.5}
}

// Player возвращает физическое тело игрока
func (g *Game) Player() *physics.Player {
	return g.player
}

// World возвращает менеджер мира
func (g *Game) World() *world.Manager {
	return g.world
}

// solidAt сообщает физике и трассировке, твердый ли блок
func (g *Game) solidAt(pos vec.Vec3) bool {
	return g.world.BlockAt(pos).IsSolid()
}

// Move задаёт горизонтальную скорость ходьбы по направлению взгляда.
// Вертикальная составляющая направления отбрасывается, скорость берётся
// из конфигурации. Нулевое направление останавливает игрока.
func (g *Game) Move(dir vec.Vec3Float) {
	flat := vec.Vec3Float{X: dir.X, Z: dir.Z}.Normalized().Scale(g.cfg.WalkSpeed)
	g.player.Velocity.X = flat.X
	g.player.Velocity.Z = flat.Z
}

// Tick выполняет один шаг игрового цикла: физика игрока, прописка
// чанков вокруг него и перестроение геометрии изменившихся чанков.
func (g *Game) Tick(dt float64) {
	start := time.Now()

	g.player.ApplyPhysics(dt, g.solidAt)

	playerChunk := g.player.Position.Floor().ToVec2().ToChunkCoords()
	if !g.initialized || playerChunk != g.lastChunk {
		added, removed := g.world.EnsureResident(playerChunk)
		g.lastChunk = playerChunk
		g.initialized = true

		for _, coords := range removed {
			if g.uploaded[coords] {
				g.renderer.DropMesh(coords)
				delete(g.uploaded, coords)
			}
		}
		if len(added) > 0 || len(removed) > 0 {
			logging.Debug("Прописка чанков: +%d, -%d (игрок в %v)", len(added), len(removed), playerChunk)
		}
	}

	g.rebuildDirtyMeshes()

	g.lastTickTime = time.Since(start)
	metrics.TickDuration.Observe(g.lastTickTime.Seconds())
}

// rebuildDirtyMeshes перестраивает геометрию всех изменившихся чанков
func (g *Game) rebuildDirtyMeshes() {
	for _, ch := range g.world.DirtyResident() {
		coords := ch.Coords
		m := mesh.Build(ch, g.world.ProbeBlock)
		origin := vec.Vec3{X: coords.X * world.ChunkSize, Y: 0, Z: coords.Z * world.ChunkSize}
		g.renderer.UploadMesh(coords, m, origin)
		g.uploaded[coords] = true
		ch.MarkClean()
		metrics.MeshesBuilt.Inc()
	}
}

// TargetBlock трассирует луч из глаз игрока по направлению dir
func (g *Game) TargetBlock(dir vec.Vec3Float) physics.RaycastResult {
	return physics.Raycast(g.player.EyePosition(), dir.Normalized(), reachDistance, g.solidAt)
}

// BreakBlock разрушает блок под прицелом. Возвращает true при успехе.
func (g *Game) BreakBlock(dir vec.Vec3Float) bool {
	hit := g.TargetBlock(dir)
	if !hit.Hit {
		return false
	}
	return g.world.SetBlock(hit.Position, block.AirBlockID)
}

// PlaceBlock ставит блок на грань блока под прицелом. Блок не ставится
// внутрь тела игрока.
func (g *Game) PlaceBlock(dir vec.Vec3Float, id block.BlockID) bool {
	hit := g.TargetBlock(dir)
	if !hit.Hit {
		return false
	}
	target := hit.Position.Add(hit.Normal)

	playerBox := physics.AABBFromPosition(g.player.Position, physics.PlayerHalfWidth, physics.PlayerHeight)
	blockBox := physics.AABB{
		Min: vec.Vec3Float{X: float64(target.X), Y: float64(target.Y), Z: float64(target.Z)},
		Max: vec.Vec3Float{X: float64(target.X) + 1, Y: float64(target.Y) + 1, Z: float64(target.Z) + 1},
	}
	if playerBox.Intersects(blockBox) {
		return false
	}
	return g.world.SetBlock(target, id)
}

// Save записывает все известные чанки в файл мира
func (g *Game) Save() error {
	chunks := g.world.KnownChunks()
	if err := storage.SaveWorld(g.cfg.SavePath, g.world.Seed(), chunks); err != nil {
		return fmt.Errorf("ошибка сохранения мира: %w", err)
	}
	g.lastSave = time.Now()
	logging.Info("Мир сохранен: %d чанков в %s", len(chunks), g.cfg.SavePath)
	return nil
}

// SaveArchive записывает сжатую архивную копию мира
func (g *Game) SaveArchive() (string, error) {
	chunks := g.world.KnownChunks()
	path, err := storage.WriteArchive(g.cfg.DataPath, g.world.Seed(), chunks)
	if err != nil {
		return "", fmt.Errorf("ошибка архивации мира: %w", err)
	}
	logging.Info("Архив мира записан: %s", path)
	return path, nil
}

// Run запускает игровой цикл с фиксированным шагом до отмены контекста.
// Автосохранение выполняется с интервалом из конфигурации.
func (g *Game) Run(ctx context.Context) error {
	tickInterval := time.Second / TickRate
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	autosave := time.Duration(g.cfg.AutosaveSec) * time.Second

	var debugTicker *time.Ticker
	if g.cfg.ShowDebug {
		debugTicker = time.NewTicker(time.Second)
		defer debugTicker.Stop()
	}

	logging.Info("Игровой цикл запущен: %d тиков/с", TickRate)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Игровой цикл останавливается...")
			return g.Save()

		case <-ticker.C:
			g.Tick(tickInterval.Seconds())

			if autosave > 0 && time.Since(g.lastSave) >= autosave {
				if err := g.Save(); err != nil {
					logging.Error("Автосохранение не удалось: %v", err)
				}
			}

		case <-debugChan(debugTicker):
			g.logDebugStats()
		}
	}
}

// debugChan возвращает канал тикера отладки или nil-канал, если
// отладка выключена. Чтение из nil-канала блокируется вечно.
func debugChan(t *time.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// logDebugStats пишет сводку состояния в журнал
func (g *Game) logDebugStats() {
	pos := g.player.Position
	resident := len(g.world.ResidentCoords())
	logging.Info("Отладка: тик=%s, позиция=(%.1f, %.1f, %.1f), чанков=%d, мешей=%d, на земле=%v",
		g.lastTickTime, pos.X, pos.Y, pos.Z, resident, len(g.uploaded), g.player.OnGround)
}
