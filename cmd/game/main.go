package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/annel0/voxel-game/internal/config"
	"github.com/annel0/voxel-game/internal/game"
	"github.com/annel0/voxel-game/internal/logging"
	"github.com/annel0/voxel-game/internal/metrics"
	"github.com/annel0/voxel-game/internal/storage"
	"github.com/annel0/voxel-game/internal/world"
)

func main() {
	configPath := flag.String("config", "", "путь к файлу конфигурации (по умолчанию $GAME_CONFIG или встроенные значения)")
	seedFlag := flag.Int64("seed", 0, "зерно генерации мира (переопределяет конфигурацию)")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("game"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🧱 Запуск воксельного мира...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка загрузки конфигурации: %v", err)
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	logging.Info("📋 Конфигурация: зерно=%d, дальность=%d чанков, сохранение=%s",
		cfg.Seed, cfg.ViewDistance, cfg.SavePath)

	// === ЗАГРУЗКА МИРА ===
	// Поврежденный или отсутствующий файл сохранения не препятствует
	// запуску: мир в этом случае генерируется заново.
	seed := cfg.Seed
	savedSeed, restored, err := storage.LoadWorld(cfg.SavePath)
	switch {
	case err == nil:
		seed = savedSeed
		logging.Info("💾 Мир загружен: зерно=%d, чанков=%d", seed, len(restored))
	case errors.Is(err, os.ErrNotExist):
		logging.Info("🌍 Файл сохранения не найден, генерируется новый мир (зерно=%d)", seed)
	default:
		logging.Error("⚠️  Файл сохранения поврежден (%v), генерируется новый мир", err)
	}

	wm := world.NewManager(seed, cfg.ViewDistance)
	if len(restored) > 0 {
		wm.RestoreSnapshot(restored)
	}

	// Кеш чанков на диске переживает аварийное завершение. Его отказ
	// не критичен, мир продолжит работать только в памяти.
	cache, err := storage.NewChunkCache(cfg.DataPath, seed)
	if err != nil {
		logging.Error("⚠️  Кеш чанков недоступен: %v", err)
	} else {
		wm.SetChunkCache(cache)
		defer cache.Close()
	}

	// === МЕТРИКИ ===
	if cfg.ShowDebug {
		addr := fmt.Sprintf(":%d", cfg.MetricsPort)
		metrics.Serve(addr)
		logging.Info("📊 Метрики: http://localhost%s/metrics", addr)
	}

	// === ИГРОВОЙ ЦИКЛ ===
	g := game.NewGame(cfg, wm, game.NullRenderer{})
	logging.Info("✅ Мир готов, идентификатор: %s", storage.WorldID(seed))

	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
		cancel()
	}()

	if err := g.Run(ctx); err != nil {
		logging.Error("❌ Ошибка при остановке: %v", err)
		os.Exit(1)
	}

	logging.Info("👋 Мир успешно сохранен и остановлен")
}
