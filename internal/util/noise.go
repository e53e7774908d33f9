package util

import (
	"github.com/aquilax/go-perlin"
)

// FractalNoise генерирует фрактальный шум (FBM) на основе шума Перлина.
// Несколько октав базового шума складываются с убывающей амплитудой и
// растущей частотой, что даёт ландшафт с крупными формами и мелкими деталями.
// Генератор детерминирован: одинаковый сид всегда даёт одинаковые значения.
type FractalNoise struct {
	noise       *perlin.Perlin
	octaves     int
	baseFreq    float64
	persistence float64
	lacunarity  float64
}

// NewFractalNoise создаёт фрактальный генератор шума с указанным сидом
func NewFractalNoise(seed int64, octaves int, baseFreq, persistence, lacunarity float64) *FractalNoise {
	alpha := 2.0 // Сглаживание базового шума
	beta := 2.0  // Частота базового шума
	return &FractalNoise{
		noise:       perlin.NewPerlin(alpha, beta, 1, seed),
		octaves:     octaves,
		baseFreq:    baseFreq,
		persistence: persistence,
		lacunarity:  lacunarity,
	}
}

// At возвращает значение фрактального шума в точке, нормированное в [-1, 1]
func (fn *FractalNoise) At(x, z float64) float64 {
	amplitude := 1.0
	frequency := fn.baseFreq
	totalNoise := 0.0
	totalAmplitude := 0.0

	for i := 0; i < fn.octaves; i++ {
		totalNoise += fn.noise.Noise2D(x*frequency, z*frequency) * amplitude
		totalAmplitude += amplitude

		amplitude *= fn.persistence
		frequency *= fn.lacunarity
	}

	return totalNoise / totalAmplitude
}

// Raw возвращает одну октаву базового шума в [-1, 1].
// Используется для вторичных решений генерации (например, размещения деревьев).
func (fn *FractalNoise) Raw(x, z float64) float64 {
	return fn.noise.Noise2D(x, z)
}
