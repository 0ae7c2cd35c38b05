package graph

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"unsafe"
)

const (
	magicBytes = "PARBFSGR"
	version    = uint32(1)
	maxNodes   = 1 << 30
	maxEdges   = 1<<32 - 1

	flagCoordinates = uint32(1) << 0
)

// fileHeader is the binary header.
type fileHeader struct {
	Magic    [8]byte
	Version  uint32
	Flags    uint32
	NumNodes uint32
	NumEdges uint32
}

// WriteBinary serializes g to path. The file is written to a temporary
// sibling and renamed into place, so readers never see a partial file.
// Uses unsafe.Slice for fast zero-copy I/O.
func WriteBinary(path string, g *Graph) error {
	if err := g.Validate(); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath) // clean up on error
	}()

	crcWriter := crc32Writer{w: f, hash: crc32.NewIEEE()}
	w := &crcWriter

	hdr := fileHeader{
		Version:  version,
		NumNodes: g.NumNodes,
		NumEdges: g.NumEdges,
	}
	if g.HasCoordinates() {
		hdr.Flags |= flagCoordinates
	}
	copy(hdr.Magic[:], magicBytes)
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := writeUint32Slice(w, g.FirstOut); err != nil {
		return fmt.Errorf("write FirstOut: %w", err)
	}
	if err := writeUint32Slice(w, g.Head); err != nil {
		return fmt.Errorf("write Head: %w", err)
	}
	if err := writeUint32Slice(w, g.FirstIn); err != nil {
		return fmt.Errorf("write FirstIn: %w", err)
	}
	if err := writeUint32Slice(w, g.Tail); err != nil {
		return fmt.Errorf("write Tail: %w", err)
	}

	if hdr.Flags&flagCoordinates != 0 {
		if err := writeFloat64Slice(w, g.NodeLat); err != nil {
			return fmt.Errorf("write NodeLat: %w", err)
		}
		if err := writeFloat64Slice(w, g.NodeLon); err != nil {
			return fmt.Errorf("write NodeLon: %w", err)
		}
	}

	// Write CRC32 trailer.
	checksum := crcWriter.hash.Sum32()
	if err := binary.Write(f, binary.LittleEndian, checksum); err != nil {
		return fmt.Errorf("write CRC32: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Atomic rename.
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}

// ReadBinary deserializes a Graph written by WriteBinary and checks its
// checksum and CSR invariants.
func ReadBinary(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	crcReader := crc32Reader{r: f, hash: crc32.NewIEEE()}
	r := &crcReader

	// Read and validate header.
	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if string(hdr.Magic[:]) != magicBytes {
		return nil, fmt.Errorf("invalid magic bytes: %q", hdr.Magic)
	}
	if hdr.Version != version {
		return nil, fmt.Errorf("unsupported version: %d", hdr.Version)
	}
	if hdr.NumNodes > maxNodes {
		return nil, fmt.Errorf("NumNodes %d exceeds limit %d", hdr.NumNodes, maxNodes)
	}

	g := &Graph{NumNodes: hdr.NumNodes, NumEdges: hdr.NumEdges}
	n := int(hdr.NumNodes)
	m := int(hdr.NumEdges)

	if g.FirstOut, err = readUint32Slice(r, n+1); err != nil {
		return nil, fmt.Errorf("read FirstOut: %w", err)
	}
	if g.Head, err = readUint32Slice(r, m); err != nil {
		return nil, fmt.Errorf("read Head: %w", err)
	}
	if g.FirstIn, err = readUint32Slice(r, n+1); err != nil {
		return nil, fmt.Errorf("read FirstIn: %w", err)
	}
	if g.Tail, err = readUint32Slice(r, m); err != nil {
		return nil, fmt.Errorf("read Tail: %w", err)
	}

	if hdr.Flags&flagCoordinates != 0 {
		if g.NodeLat, err = readFloat64Slice(r, n); err != nil {
			return nil, fmt.Errorf("read NodeLat: %w", err)
		}
		if g.NodeLon, err = readFloat64Slice(r, n); err != nil {
			return nil, fmt.Errorf("read NodeLon: %w", err)
		}
	}

	// Read and validate CRC32.
	expectedCRC := crcReader.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(f, binary.LittleEndian, &storedCRC); err != nil {
		return nil, fmt.Errorf("read CRC32: %w", err)
	}
	if storedCRC != expectedCRC {
		return nil, fmt.Errorf("CRC32 mismatch: stored=%08x computed=%08x", storedCRC, expectedCRC)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Zero-copy I/O helpers using unsafe.Slice.

func writeUint32Slice(w io.Writer, s []uint32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeFloat64Slice(w io.Writer, s []float64) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.Write(b)
	return err
}

// readUint32Slice always returns a non-nil slice so empty graphs keep
// their offset arrays distinguishable from missing ones.
func readUint32Slice(r io.Reader, n int) ([]uint32, error) {
	s := make([]uint32, n)
	if n == 0 {
		return s, nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readFloat64Slice(r io.Reader, n int) ([]float64, error) {
	s := make([]float64, n)
	if n == 0 {
		return s, nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*8)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

// CRC32 wrapping writers/readers.

type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
