// pkg/balltree/serialize.go
package balltree

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"

	"balltree/pkg/ballvector"
)

var (
	ErrInvalidMagic   = errors.New("balltree: invalid magic number")
	ErrInvalidVersion = errors.New("balltree: unsupported version")
	ErrCorruptedData  = errors.New("balltree: corrupted data")
)

const (
	treeMagic   uint32 = 0x42544545 // "BTEE"
	treeVersion uint32 = 1
)

// Header layout:
// [0-3]   Magic (4 bytes)
// [4-7]   Version (4 bytes)
// [8-11]  N (4 bytes)
// [12-15] D (4 bytes)
// [16-19] LeafSize (4 bytes)
// [20-27] P (8 bytes, float64)
// [28-31] NNodes (4 bytes)
// Total header: 32 bytes
const headerSize = 32

// Serialize writes the three persisted-state arrays (idx, centroid, info)
// and the header that describes their shape. The point matrix is not
// part of the persisted state: the caller supplies it again on load.
func (t *Tree) Serialize(w io.Writer) error {
	h := t.Header()

	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(header[0:4], treeMagic)
	binary.LittleEndian.PutUint32(header[4:8], treeVersion)
	binary.LittleEndian.PutUint32(header[8:12], uint32(h.N))
	binary.LittleEndian.PutUint32(header[12:16], uint32(h.D))
	binary.LittleEndian.PutUint32(header[16:20], uint32(h.LeafSize))
	binary.LittleEndian.PutUint64(header[20:28], math.Float64bits(h.P))
	binary.LittleEndian.PutUint32(header[28:32], uint32(h.NNodes))
	if _, err := w.Write(header); err != nil {
		return errors.Wrap(err, "writing header")
	}

	idxBuf := make([]byte, 4*len(t.idx))
	for i, v := range t.idx {
		binary.LittleEndian.PutUint32(idxBuf[4*i:4*i+4], v)
	}
	if _, err := w.Write(idxBuf); err != nil {
		return errors.Wrap(err, "writing idx")
	}

	centroidBuf := make([]byte, 8*len(t.centroid))
	for i, v := range t.centroid {
		binary.LittleEndian.PutUint64(centroidBuf[8*i:8*i+8], math.Float64bits(v))
	}
	if _, err := w.Write(centroidBuf); err != nil {
		return errors.Wrap(err, "writing centroid")
	}

	infoBuf := make([]byte, 17*len(t.info))
	for i, n := range t.info {
		off := 17 * i
		binary.LittleEndian.PutUint32(infoBuf[off:off+4], n.IdxStart)
		binary.LittleEndian.PutUint32(infoBuf[off+4:off+8], n.IdxEnd)
		var isLeaf byte
		if n.IsLeaf {
			isLeaf = 1
		}
		infoBuf[off+8] = isLeaf
		binary.LittleEndian.PutUint64(infoBuf[off+9:off+17], math.Float64bits(n.Radius))
	}
	if _, err := w.Write(infoBuf); err != nil {
		return errors.Wrap(err, "writing info")
	}

	return nil
}

// Deserialize reads back a tree serialized by Serialize. data must be the
// same point matrix the tree was originally built from; its shape is
// checked against the persisted header but its contents are not.
func Deserialize(r io.Reader, data *ballvector.Matrix) (*Tree, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, errors.Wrap(err, "reading header")
	}

	magic := binary.LittleEndian.Uint32(header[0:4])
	if magic != treeMagic {
		return nil, ErrInvalidMagic
	}
	version := binary.LittleEndian.Uint32(header[4:8])
	if version != treeVersion {
		return nil, ErrInvalidVersion
	}

	h := Header{
		N:        int(binary.LittleEndian.Uint32(header[8:12])),
		D:        int(binary.LittleEndian.Uint32(header[12:16])),
		LeafSize: int(binary.LittleEndian.Uint32(header[16:20])),
		P:        math.Float64frombits(binary.LittleEndian.Uint64(header[20:28])),
		NNodes:   int(binary.LittleEndian.Uint32(header[28:32])),
	}

	idxBuf := make([]byte, 4*h.N)
	if _, err := io.ReadFull(r, idxBuf); err != nil {
		return nil, errors.Wrap(ErrCorruptedData, "reading idx: "+err.Error())
	}
	idx := make([]uint32, h.N)
	for i := range idx {
		idx[i] = binary.LittleEndian.Uint32(idxBuf[4*i : 4*i+4])
	}

	centroidBuf := make([]byte, 8*h.NNodes*h.D)
	if _, err := io.ReadFull(r, centroidBuf); err != nil {
		return nil, errors.Wrap(ErrCorruptedData, "reading centroid: "+err.Error())
	}
	centroid := make([]float64, h.NNodes*h.D)
	for i := range centroid {
		centroid[i] = math.Float64frombits(binary.LittleEndian.Uint64(centroidBuf[8*i : 8*i+8]))
	}

	infoBuf := make([]byte, 17*h.NNodes)
	if _, err := io.ReadFull(r, infoBuf); err != nil {
		return nil, errors.Wrap(ErrCorruptedData, "reading info: "+err.Error())
	}
	info := make([]NodeInfo, h.NNodes)
	for i := range info {
		off := 17 * i
		info[i] = NodeInfo{
			IdxStart: binary.LittleEndian.Uint32(infoBuf[off : off+4]),
			IdxEnd:   binary.LittleEndian.Uint32(infoBuf[off+4 : off+8]),
			IsLeaf:   infoBuf[off+8] != 0,
			Radius:   math.Float64frombits(binary.LittleEndian.Uint64(infoBuf[off+9 : off+17])),
		}
	}

	return FromArrays(h, idx, centroid, info, data)
}

// SerializeToBytes serializes the tree to a byte slice.
func (t *Tree) SerializeToBytes() ([]byte, error) {
	buf := &bytesWriter{}
	if err := t.Serialize(buf); err != nil {
		return nil, err
	}
	return buf.buf, nil
}

// DeserializeFromBytes deserializes a tree from a byte slice previously
// produced by SerializeToBytes.
func DeserializeFromBytes(b []byte, data *ballvector.Matrix) (*Tree, error) {
	return Deserialize(&bytesReader{data: b}, data)
}

type bytesWriter struct {
	buf []byte
}

func (w *bytesWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

type bytesReader struct {
	data []byte
	pos  int
}

func (r *bytesReader) Read(p []byte) (n int, err error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n = copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
