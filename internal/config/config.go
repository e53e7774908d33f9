package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig содержит настройки игры.
// Значения считаются уже проверенными: симуляция доверяет этой структуре
// и не выполняет повторную валидацию.
type GameConfig struct {
	Sensitivity  float64 `yaml:"sensitivity"`    // Чувствительность мыши
	WalkSpeed    float64 `yaml:"walk_speed"`     // Скорость ходьбы, блоков/с
	ViewDistance int     `yaml:"view_distance"`  // Радиус видимости в чанках (метрика Чебышёва)
	FOV          float64 `yaml:"fov"`            // Поле зрения в градусах
	ShowDebug    bool    `yaml:"show_debug"`     // Вывод отладочной статистики
	Seed         int64   `yaml:"seed"`           // Сид для нового мира
	SavePath     string  `yaml:"save_path"`      // Путь к файлу сохранения мира
	DataPath     string  `yaml:"data_path"`      // Директория для кеша чанков и архивов
	AutosaveSec  int     `yaml:"autosave_seconds"` // Интервал автосохранения
	MetricsPort  int     `yaml:"metrics_port"`   // Порт Prometheus метрик (при show_debug)
}

// Default возвращает конфигурацию по умолчанию
func Default() *GameConfig {
	return &GameConfig{
		Sensitivity:  0.005,
		WalkSpeed:    4.3,
		ViewDistance: 6,
		FOV:          70.0,
		ShowDebug:    false,
		Seed:         12345,
		SavePath:     "world.dat",
		DataPath:     "data",
		AutosaveSec:  300,
		MetricsPort:  2112,
	}
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV GAME_CONFIG;
// отсутствующий файл не является ошибкой, возвращаются значения по умолчанию.
func Load(path string) (*GameConfig, error) {
	if path == "" {
		path = os.Getenv("GAME_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
	}

	return cfg, nil
}

// Save записывает конфигурацию в YAML файл
func (c *GameConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("ошибка сериализации конфигурации: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи конфигурации %s: %w", path, err)
	}

	return nil
}
