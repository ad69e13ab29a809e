// Package mem provides the emulated DRAM backing an RV32I core: a
// contiguous, bounds-checked, little-endian byte-addressable region
// mapped at a configurable base address.
package mem

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// DefaultBase is the base address used when no WithBase option is
// supplied, matching RV32I's conventional DRAM mapping.
const DefaultBase = 0x8000_0000

// ErrOutOfBounds indicates an access address (plus its width) falls
// outside the memory region. It is the only error kind this package
// returns.
var ErrOutOfBounds = errors.New("mem: address out of bounds")

// Memory is a flat, little-endian byte-addressable region with
// absolute addressing. It is not goroutine safe; a single owner should
// access it at a time.
type Memory struct {
	base uint64
	buf  []byte
}

// Option configures a Memory at construction time.
type Option func(*config)

type config struct {
	base uint64
	size uint64
}

// WithBase sets the absolute address of the first byte of the region.
// Defaults to DefaultBase.
func WithBase(base uint64) Option {
	return func(c *config) {
		c.base = base
	}
}

// WithSize sets the region size in bytes. Required; New panics if no
// size is configured.
func WithSize(size uint64) Option {
	return func(c *config) {
		c.size = size
	}
}

// New creates a Memory of the configured size, zero-initialized.
func New(opts ...Option) *Memory {
	c := config{base: DefaultBase}
	for _, opt := range opts {
		opt(&c)
	}
	if c.size == 0 {
		panic("mem: New requires WithSize")
	}
	return &Memory{
		base: c.base,
		buf:  make([]byte, c.size),
	}
}

// Base returns the region's absolute base address.
func (m *Memory) Base() uint64 {
	return m.base
}

// Size returns the region's size in bytes.
func (m *Memory) Size() uint64 {
	return uint64(len(m.buf))
}

// bounds checks that a W-byte access at addr is within the region. The
// lower-bound check is performed before computing addr-base so it never
// underflows, even for addr < base.
func (m *Memory) bounds(addr uint64, width uint64) ([]byte, error) {
	if addr < m.base {
		return nil, fmt.Errorf("%w: address 0x%X below base 0x%X", ErrOutOfBounds, addr, m.base)
	}
	off := addr - m.base
	if off+width > uint64(len(m.buf)) {
		return nil, fmt.Errorf("%w: address 0x%X width %d exceeds region of size %d", ErrOutOfBounds, addr, width, len(m.buf))
	}
	return m.buf[off : off+width], nil
}

// Load8 reads an unsigned 8-bit value at addr.
func (m *Memory) Load8(addr uint64) (uint8, error) {
	b, err := m.bounds(addr, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Store8 writes an unsigned 8-bit value at addr.
func (m *Memory) Store8(addr uint64, v uint8) error {
	b, err := m.bounds(addr, 1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

// Load16 reads a little-endian unsigned 16-bit value at addr.
func (m *Memory) Load16(addr uint64) (uint16, error) {
	b, err := m.bounds(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Store16 writes a little-endian unsigned 16-bit value at addr.
func (m *Memory) Store16(addr uint64, v uint16) error {
	b, err := m.bounds(addr, 2)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(b, v)
	return nil
}

// Load32 reads a little-endian unsigned 32-bit value at addr.
func (m *Memory) Load32(addr uint64) (uint32, error) {
	b, err := m.bounds(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Store32 writes a little-endian unsigned 32-bit value at addr.
func (m *Memory) Store32(addr uint64, v uint32) error {
	b, err := m.bounds(addr, 4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b, v)
	return nil
}

// Load64 reads a little-endian unsigned 64-bit value at addr.
func (m *Memory) Load64(addr uint64) (uint64, error) {
	b, err := m.bounds(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Store64 writes a little-endian unsigned 64-bit value at addr.
func (m *Memory) Store64(addr uint64, v uint64) error {
	b, err := m.bounds(addr, 8)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b, v)
	return nil
}

// U128 is a 128-bit little-endian-ordered value, split into low and
// high 64-bit halves since Go has no native 128-bit integer type.
type U128 struct {
	Lo uint64
	Hi uint64
}

// Load128 reads a little-endian 128-bit value at addr.
func (m *Memory) Load128(addr uint64) (U128, error) {
	b, err := m.bounds(addr, 16)
	if err != nil {
		return U128{}, err
	}
	return U128{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}, nil
}

// Store128 writes a little-endian 128-bit value at addr.
func (m *Memory) Store128(addr uint64, v U128) error {
	b, err := m.bounds(addr, 16)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b[0:8], v.Lo)
	binary.LittleEndian.PutUint64(b[8:16], v.Hi)
	return nil
}
