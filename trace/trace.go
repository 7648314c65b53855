// This file is part of Gopheradvance.
//
// Gopheradvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopheradvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopheradvance.  If not, see <https://www.gnu.org/licenses/>.

// Package trace records every instruction executed by the CPU to a compressed
// stream. The Writer type implements the cpu.Tracer interface and can be
// attached to the CPU with cpu.AttachTracer(). The Reader type decodes a
// stream created by a Writer.
//
// A trace stream is a fixed size header followed by a snappy framed stream of
// fixed size records, one per instruction.
package trace

import (
	"io"

	"github.com/golang/snappy"
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/hardware/cpu"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

// Sentinal error patterns.
const (
	BadMagic   = "trace: not a trace stream"
	BadVersion = "trace: unsupported version (%d)"
)

const (
	magic   = "GATR"
	version = 1
)

type header struct {
	Magic   string `struc:"[4]byte"`
	Version uint32
}

type record struct {
	Timestamp uint64
	PC        uint32
	Opcode    uint32
	Thumb     uint8
	Registers []uint32 `struc:"[16]uint32"`
	CPSR      uint32
}

func newRecord(e cpu.TraceEntry) *record {
	r := &record{
		Timestamp: e.Timestamp,
		PC:        e.PC,
		Opcode:    e.Opcode,
		Registers: e.Registers[:],
		CPSR:      e.CPSR,
	}
	if e.Thumb {
		r.Thumb = 1
	}
	return r
}

func (r *record) entry() cpu.TraceEntry {
	e := cpu.TraceEntry{
		Timestamp: r.Timestamp,
		PC:        r.PC,
		Opcode:    r.Opcode,
		Thumb:     r.Thumb != 0,
		CPSR:      r.CPSR,
	}
	copy(e.Registers[:], r.Registers)
	return e
}

// Writer implements the cpu.Tracer interface.
type Writer struct {
	w  io.Writer
	zw *snappy.Writer

	// the first error encountered by Trace(). once set no more records are
	// written
	err error

	count int
}

// NewWriter writes the stream header and returns a Writer ready for
// attaching to the CPU.
func NewWriter(w io.Writer) (*Writer, error) {
	h := &header{Magic: magic, Version: version}
	if err := struc.Pack(w, h); err != nil {
		return nil, errors.Wrap(err, "trace: failed to pack header")
	}
	return &Writer{
		w:  w,
		zw: snappy.NewBufferedWriter(w),
	}, nil
}

// Trace implements the cpu.Tracer interface.
func (t *Writer) Trace(entry cpu.TraceEntry) {
	if t.err != nil {
		return
	}
	if err := struc.Pack(t.zw, newRecord(entry)); err != nil {
		t.err = errors.Wrap(err, "trace: failed to pack record")
		return
	}
	t.count++
}

// Count returns the number of records written.
func (t *Writer) Count() int {
	return t.count
}

// Err returns the first error encountered while writing records.
func (t *Writer) Err() error {
	return t.err
}

// Close flushes the compressed stream. The underlying io.Writer is not
// closed.
func (t *Writer) Close() error {
	if err := t.zw.Close(); err != nil {
		return errors.Wrap(err, "trace: failed to close stream")
	}
	return t.err
}

// Reader decodes a trace stream.
type Reader struct {
	zr *snappy.Reader
}

// NewReader reads the stream header and returns a Reader positioned at the
// first record.
func NewReader(r io.Reader) (*Reader, error) {
	var h header
	if err := struc.Unpack(r, &h); err != nil {
		return nil, errors.Wrap(err, "trace: failed to unpack header")
	}
	if h.Magic != magic {
		return nil, curated.Errorf(BadMagic)
	}
	if h.Version != version {
		return nil, curated.Errorf(BadVersion, h.Version)
	}
	return &Reader{zr: snappy.NewReader(r)}, nil
}

// Next returns the next record in the stream. Returns io.EOF when there are
// no more records.
func (t *Reader) Next() (cpu.TraceEntry, error) {
	var r record
	if err := struc.Unpack(t.zr, &r); err != nil {
		if errors.Cause(err) == io.EOF || errors.Cause(err) == io.ErrUnexpectedEOF {
			return cpu.TraceEntry{}, io.EOF
		}
		return cpu.TraceEntry{}, errors.Wrap(err, "trace: failed to unpack record")
	}
	return r.entry(), nil
}
