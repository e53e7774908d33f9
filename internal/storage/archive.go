package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/annel0/voxel-game/internal/world"
)

// ArchiveHeader описывает резервную копию мира
type ArchiveHeader struct {
	Version   uint32    `json:"version"`
	WorldID   uuid.UUID `json:"world_id"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}

// WorldID детерминированно выводит идентификатор мира из его сида.
// Один и тот же мир получает один и тот же идентификатор между запусками.
func WorldID(seed int64) uuid.UUID {
	name := fmt.Sprintf("voxel-world-%d", seed)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
}

// WriteArchive записывает сжатую резервную копию мира в директорию dir.
// Содержимое: JSON-заголовок одной строкой и обычное бинарное сохранение,
// обёрнутые в zstd. Возвращает путь к созданному файлу.
func WriteArchive(dir string, seed int64, chunks []*world.Chunk) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("создание директории архивов: %w", err)
	}

	header := ArchiveHeader{
		Version:   formatVersion,
		WorldID:   WorldID(seed),
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
	}

	name := fmt.Sprintf("world_%s_%s.vxa", header.WorldID, header.CreatedAt.Format("2006-01-02_15-04-05"))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("создание файла архива: %w", err)
	}
	defer f.Close()

	if err := encodeArchive(f, header, seed, chunks); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("закрытие файла архива: %w", err)
	}

	return path, nil
}

// encodeArchive пишет сжатый поток архива: JSON-заголовок одной строкой,
// затем бинарное сохранение. Сброс буфера и завершение zstd выполняются
// явно, их ошибки означают урезанный архив.
func encodeArchive(w io.Writer, header ArchiveHeader, seed int64, chunks []*world.Chunk) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("инициализация zstd: %w", err)
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)

	hb, _ := json.Marshal(header)
	if _, err := bw.Write(hb); err != nil {
		return fmt.Errorf("запись заголовка архива: %w", err)
	}
	if err := bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("запись заголовка архива: %w", err)
	}
	if err := Encode(bw, seed, chunks); err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("запись архива: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("завершение zstd: %w", err)
	}
	return nil
}

// ReadArchive читает резервную копию мира
func ReadArchive(path string) (ArchiveHeader, int64, []*world.Chunk, error) {
	var header ArchiveHeader

	f, err := os.Open(path)
	if err != nil {
		return header, 0, nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return header, 0, nil, fmt.Errorf("инициализация zstd: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	line, err := br.ReadBytes('\n')
	if err != nil {
		return header, 0, nil, fmt.Errorf("чтение заголовка архива: %w", err)
	}
	if err := json.Unmarshal(line, &header); err != nil {
		return header, 0, nil, fmt.Errorf("разбор заголовка архива: %w", err)
	}

	seed, chunks, err := Decode(br)
	if err != nil {
		return header, 0, nil, err
	}

	return header, seed, chunks, nil
}
