package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/annel0/voxel-game/internal/vec"
	"github.com/annel0/voxel-game/internal/world"
	"github.com/annel0/voxel-game/internal/world/block"
)

// Бинарный формат сохранения мира (little-endian):
//
//	magic         u32  : метка формата "VXLW"
//	version       u32  : версия формата
//	seed          u64  : сид генерации (биты int64)
//	chunk_count   u32
//	далее chunk_count записей:
//	  cx          i32
//	  cz          i32
//	  blocks      16*16*64 байт : коды блоков в порядке x + z*16 + y*256
//
// Коды блоков совпадают с порядковыми номерами закрытого перечисления;
// изменение нумерации требует поднятия версии формата.
const (
	saveMagic     uint32 = 0x564C5857 // "VXLW"
	formatVersion uint32 = 1
)

// Ошибки разбора сохранения
var (
	ErrTruncated          = errors.New("storage: сохранение обрезано")
	ErrMalformedHeader    = errors.New("storage: повреждённый заголовок сохранения")
	ErrUnsupportedVersion = errors.New("storage: неподдерживаемая версия формата")
	ErrMalformedChunk     = errors.New("storage: повреждённая запись чанка")
	ErrIOFailure          = errors.New("storage: ошибка ввода-вывода")
)

// Encode сериализует мир в бинарный поток.
// Записываются все переданные чанки, включая ячейки воздуха:
// формат цельный, без дельт и сжатия, и обязан восстанавливаться побайтно.
func Encode(w io.Writer, seed int64, chunks []*world.Chunk) error {
	bw := bufio.NewWriterSize(w, 256*1024)

	if err := binary.Write(bw, binary.LittleEndian, saveMagic); err != nil {
		return fmt.Errorf("запись заголовка: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, formatVersion); err != nil {
		return fmt.Errorf("запись заголовка: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint64(seed)); err != nil {
		return fmt.Errorf("запись заголовка: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(chunks))); err != nil {
		return fmt.Errorf("запись количества чанков: %w", err)
	}

	buf := make([]byte, world.ChunkVolume)
	for _, chunk := range chunks {
		if err := binary.Write(bw, binary.LittleEndian, int32(chunk.Coords.X)); err != nil {
			return fmt.Errorf("запись чанка (%d, %d): %w", chunk.Coords.X, chunk.Coords.Z, err)
		}
		if err := binary.Write(bw, binary.LittleEndian, int32(chunk.Coords.Z)); err != nil {
			return fmt.Errorf("запись чанка (%d, %d): %w", chunk.Coords.X, chunk.Coords.Z, err)
		}
		for i, id := range chunk.Blocks {
			buf[i] = byte(id)
		}
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("запись чанка (%d, %d): %w", chunk.Coords.X, chunk.Coords.Z, err)
		}
	}

	return bw.Flush()
}

// Decode читает мир из бинарного потока. Возвращает отдельные ошибки
// для обрезанных данных, повреждённого заголовка и чужой версии формата.
func Decode(r io.Reader) (seed int64, chunks []*world.Chunk, err error) {
	br := bufio.NewReaderSize(r, 256*1024)

	var magic, version uint32
	if err := readLE(br, &magic); err != nil {
		return 0, nil, errTrunc(err)
	}
	if magic != saveMagic {
		return 0, nil, ErrMalformedHeader
	}
	if err := readLE(br, &version); err != nil {
		return 0, nil, errTrunc(err)
	}
	if version != formatVersion {
		return 0, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	var rawSeed uint64
	if err := readLE(br, &rawSeed); err != nil {
		return 0, nil, errTrunc(err)
	}
	seed = int64(rawSeed)

	var count uint32
	if err := readLE(br, &count); err != nil {
		return 0, nil, errTrunc(err)
	}

	chunks = make([]*world.Chunk, 0, count)
	buf := make([]byte, world.ChunkVolume)
	for i := uint32(0); i < count; i++ {
		var cx, cz int32
		if err := readLE(br, &cx); err != nil {
			return 0, nil, errTrunc(err)
		}
		if err := readLE(br, &cz); err != nil {
			return 0, nil, errTrunc(err)
		}
		if _, err := io.ReadFull(br, buf); err != nil {
			return 0, nil, errTrunc(err)
		}

		chunk := world.NewChunk(vec.Vec2{X: int(cx), Z: int(cz)})
		for j, code := range buf {
			id := block.BlockID(code)
			if !block.IsValid(id) {
				return 0, nil, fmt.Errorf("%w: недопустимый код блока %d", ErrMalformedChunk, code)
			}
			chunk.Blocks[j] = id
		}
		chunks = append(chunks, chunk)
	}

	// Лишние байты после последней записи означают повреждение
	if _, err := br.ReadByte(); err != io.EOF {
		return 0, nil, ErrMalformedChunk
	}

	return seed, chunks, nil
}

// readLE читает одно значение little-endian
func readLE(r io.Reader, v interface{}) error {
	return binary.Read(r, binary.LittleEndian, v)
}

// errTrunc сводит ошибки чтения к таксономии формата: неожиданный конец
// потока означает обрезанное сохранение, прочие ошибки приходят от
// носителя и считаются отказом ввода-вывода.
func errTrunc(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return fmt.Errorf("%w: %v", ErrIOFailure, err)
}
