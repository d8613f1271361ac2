package storage

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"

	"delve/internal/domain"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SaveMagic - сигнатура файла сейва
var SaveMagic = [4]byte{'D', 'L', 'V', 'S'}

const (
	// SaveVersion - текущая версия формата. Другая версия при загрузке отвергается.
	SaveVersion uint32 = 1

	// maxBodyLen - верхняя граница тела, чтобы битый заголовок не заставил выделить гигабайты
	maxBodyLen = 64 << 20
)

// SaveFileHeader - бинарный заголовок (little endian)
type SaveFileHeader struct {
	Magic    [4]byte
	Version  uint32
	BodyLen  uint32
	Checksum uint32 // CRC-32 IEEE сжатого тела
}

var headerSize = binary.Size(SaveFileHeader{})

var (
	ErrTruncated = errors.New("truncated")
	ErrBadMagic  = errors.New("bad magic")
	ErrVersion   = errors.New("unsupported version")
	ErrChecksum  = errors.New("checksum mismatch")
	ErrCorrupt   = errors.New("corrupt body")
)

// Стадии декодирования, по которым можно понять, где сейв был отвергнут
const (
	StageHeader     = "header"
	StageLength     = "length"
	StageChecksum   = "checksum"
	StageDecompress = "decompress"
	StageJSON       = "json"
	StageSchema     = "schema"
	StageWorld      = "world"
	StageInvariants = "invariants"
)

//go:embed save.schema.json
var saveSchemaJSON string

// Codec переводит GameState в байты сейва и обратно.
// Безопасен для конкурентного использования.
type Codec struct {
	enc    *zstd.Encoder
	dec    *zstd.Decoder
	schema *jsonschema.Schema
}

func NewCodec() (*Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	schema, err := jsonschema.CompileString("delve/save.schema.json", saveSchemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compile save schema: %w", err)
	}
	return &Codec{enc: enc, dec: dec, schema: schema}, nil
}

// Encode сериализует состояние. Невалидный мир не сохраняется.
func (c *Codec) Encode(state *domain.GameState) ([]byte, error) {
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to save: %w", err)
	}

	raw, err := json.Marshal(toSaveV1(state))
	if err != nil {
		return nil, fmt.Errorf("marshal save: %w", err)
	}
	body := c.enc.EncodeAll(raw, make([]byte, 0, len(raw)/2))

	header := SaveFileHeader{
		Magic:    SaveMagic,
		Version:  SaveVersion,
		BodyLen:  uint32(len(body)),
		Checksum: crc32.ChecksumIEEE(body),
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + len(body))
	if err := binary.Write(&buf, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	buf.Write(body)
	return buf.Bytes(), nil
}

// Decode восстанавливает состояние. Любая ошибка - *domain.SaveFormatError,
// мир при этом не возвращается вовсе.
func (c *Codec) Decode(data []byte) (*domain.GameState, error) {
	// 1. Заголовок
	var header SaveFileHeader
	if len(data) < headerSize {
		return nil, formatErr(StageHeader, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data)))
	}
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &header); err != nil {
		return nil, formatErr(StageHeader, err)
	}
	if header.Magic != SaveMagic {
		return nil, formatErr(StageHeader, fmt.Errorf("%w: %q", ErrBadMagic, header.Magic[:]))
	}
	if header.Version != SaveVersion {
		return nil, formatErr(StageHeader, fmt.Errorf("%w: %d, want %d", ErrVersion, header.Version, SaveVersion))
	}

	// 2. Длина тела
	body := data[headerSize:]
	if header.BodyLen > maxBodyLen {
		return nil, formatErr(StageLength, fmt.Errorf("%w: body length %d", ErrCorrupt, header.BodyLen))
	}
	if uint32(len(body)) < header.BodyLen {
		return nil, formatErr(StageLength, fmt.Errorf("%w: body has %d of %d bytes", ErrTruncated, len(body), header.BodyLen))
	}
	if uint32(len(body)) > header.BodyLen {
		return nil, formatErr(StageLength, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, uint32(len(body))-header.BodyLen))
	}

	// 3. Контрольная сумма
	if sum := crc32.ChecksumIEEE(body); sum != header.Checksum {
		return nil, formatErr(StageChecksum, fmt.Errorf("%w: %08x, want %08x", ErrChecksum, sum, header.Checksum))
	}

	// 4. Распаковка
	raw, err := c.dec.DecodeAll(body, nil)
	if err != nil {
		return nil, formatErr(StageDecompress, fmt.Errorf("%w: %v", ErrCorrupt, err))
	}

	// 5. Схема проверяется по дереву значений, затем то же тело раскладывается в структуру
	var tree any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return nil, formatErr(StageJSON, fmt.Errorf("%w: %v", ErrCorrupt, err))
	}
	if err := c.schema.Validate(tree); err != nil {
		return nil, formatErr(StageSchema, err)
	}
	var doc SaveV1
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, formatErr(StageJSON, fmt.Errorf("%w: %v", ErrCorrupt, err))
	}

	// 6. Мир
	state, err := fromSaveV1(&doc)
	if err != nil {
		return nil, formatErr(StageWorld, err)
	}
	if err := state.Validate(); err != nil {
		return nil, formatErr(StageInvariants, err)
	}
	return state, nil
}

func formatErr(stage string, err error) error {
	return &domain.SaveFormatError{Stage: stage, Err: err}
}
