package history

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// MaxFileEntries is the most positions a history file keeps.
const MaxFileEntries = 100

// nearby is the distance in both axes under which two positions are
// considered the same target.
const nearby = 30

// ErrCorrupt is returned when a history file does not match its header.
var ErrCorrupt = errors.New("corrupt history file")

// File is a persisted list of positions, oldest first.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a store backed by path. Nothing is read or created until
// first use.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Entries returns the stored positions, oldest first. A missing file is an
// empty history.
func (f *File) Entries() ([]Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.readLocked()
}

// Add records x, y. Stored entries within the nearby distance are dropped,
// and the oldest entry is evicted when the file is full.
func (f *File) Add(x, y int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.readLocked()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if abs(e.X-x) < nearby && abs(e.Y-y) < nearby {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) >= MaxFileEntries {
		kept = kept[len(kept)-MaxFileEntries+1:]
	}
	kept = append(kept, Position{X: x, Y: y})

	return f.writeLocked(kept)
}

func (f *File) readLocked() ([]Position, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return decode(data)
}

func (f *File) writeLocked(entries []Position) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".history-*")
	if err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encode(entries)); err != nil {
		tmp.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

type record struct {
	X, Y int32
}

func encode(entries []Position) []byte {
	var buf bytes.Buffer
	recs := make([]record, len(entries))
	for i, e := range entries {
		recs[i] = record{X: int32(e.X), Y: int32(e.Y)}
	}
	// Writes to a bytes.Buffer cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, int32(len(recs)))
	_ = binary.Write(&buf, binary.LittleEndian, recs)
	return buf.Bytes()
}

func decode(data []byte) ([]Position, error) {
	r := bytes.NewReader(data)

	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: short header", ErrCorrupt)
	}
	if count < 0 || count > MaxFileEntries {
		return nil, fmt.Errorf("%w: count %d", ErrCorrupt, count)
	}

	recs := make([]record, count)
	if err := binary.Read(r, binary.LittleEndian, recs); err != nil {
		return nil, fmt.Errorf("%w: %d entries declared, %d bytes present", ErrCorrupt, count, len(data)-4)
	}

	out := make([]Position, len(recs))
	for i, rec := range recs {
		out[i] = Position{X: int(rec.X), Y: int(rec.Y)}
	}
	return out, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
