package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/annel0/voxel-game/internal/logging"
)

// Метрики симуляции мира
var (
	ChunksGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voxel_chunks_generated_total",
		Help: "Количество сгенерированных чанков",
	})

	ChunksRestored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voxel_chunks_restored_total",
		Help: "Количество чанков, восстановленных из кеша или сохранения",
	})

	MeshesBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voxel_meshes_built_total",
		Help: "Количество построенных мешей чанков",
	})

	BlocksEdited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voxel_blocks_edited_total",
		Help: "Количество изменённых блоков",
	})

	EditsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voxel_edits_rejected_total",
		Help: "Количество отклонённых правок вне загруженной области",
	})

	ResidentChunks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voxel_resident_chunks",
		Help: "Количество чанков в памяти в пределах радиуса видимости",
	})

	TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voxel_tick_duration_seconds",
		Help:    "Длительность тика симуляции",
		Buckets: prometheus.DefBuckets,
	})

	ProcessMemoryMB = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voxel_process_memory_mb",
		Help: "Резидентная память процесса в мегабайтах",
	})
)

// Serve запускает HTTP сервер метрик Prometheus на указанном адресе
// и фоновый сбор метрик процесса
func Serve(addr string) {
	go collectProcessMetrics()

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(addr, mux); err != nil {
			logging.Error("Сервер метрик остановлен: %v", err)
		}
	}()
}

// collectProcessMetrics периодически обновляет метрики процесса через gopsutil
func collectProcessMetrics() {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logging.Warn("Не удалось получить информацию о процессе: %v", err)
		return
	}

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if mem, err := proc.MemoryInfo(); err == nil {
			ProcessMemoryMB.Set(float64(mem.RSS) / 1024 / 1024)
		}
	}
}
