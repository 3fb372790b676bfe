package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// ErrNormalMismatch is returned by ReadBinarySTL when a stored normal does
// not agree with the normal calculated from the triangle's vertices. The
// triangles read are still returned alongside it.
var ErrNormalMismatch = errors.New("triangle normal not approximately equal to calculated normal from vertices")

const stlTriangleSize = 50

// CreateSTL writes the triangles read from r to a binary STL file at path.
func CreateSTL(path string, r Renderer) error {
	const sizeOfSTLHeader = 84
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	// Header is written last, once the triangle count is known.
	_, err = file.Seek(sizeOfSTLHeader, io.SeekStart)
	if err != nil {
		return err
	}
	rd := &stlReader{r: r}
	n, err := io.CopyBuffer(file, rd, make([]byte, stlTriangleSize*trianglesInBuffer))
	if err != nil {
		return err
	}
	if n/stlTriangleSize > math.MaxUint32 {
		return errors.New("amount of triangles in model exceeds STL design limits")
	}
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}
	var buf [sizeOfSTLHeader]byte
	stlHeader{Count: uint32(n / stlTriangleSize)}.put(buf[:])
	if _, err = file.Write(buf[:]); err != nil {
		return err
	}
	return file.Close()
}

// WriteSTL writes model triangles to a writer in binary STL file format.
func WriteSTL(w io.Writer, model []ms3.Triangle) error {
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	nt := int64(len(model)) // int64 cast so that next line works correctly on 32bit machines.
	if nt > math.MaxUint32 {
		return errors.New("amount of triangles in model exceeds STL design limits")
	}
	var buf [84]byte
	stlHeader{Count: uint32(nt)}.put(buf[:])
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	for _, triangle := range model {
		newSTLTriangle(triangle).put(buf[:])
		n, err := w.Write(buf[:stlTriangleSize])
		if err != nil {
			return err
		} else if n != stlTriangleSize {
			return io.ErrShortWrite
		}
	}
	return nil
}

// ReadBinarySTL reads all triangles of a binary STL file. Triangles with
// inf/NaN values or repeated vertices are errors.
func ReadBinarySTL(r io.Reader) (output []ms3.Triangle, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, fmt.Errorf("STL header read failed: %w", err)
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf            [stlTriangleSize]byte
		d              stlTriangle
		i              int
		normMismatches int
	)
	defer func() {
		if readErr != nil && !errors.Is(readErr, ErrNormalMismatch) {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	output = make([]ms3.Triangle, 0, min(int(header.Count), 1<<20))
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			if errors.Is(err, ErrNormalMismatch) {
				normMismatches++
				if normMismatches > 10_000 {
					// This may be valid output, so we return the triangles.
					return output, fmt.Errorf("got too many normal vector mismatches (%d)", normMismatches)
				}
				readErr = err
			} else {
				return nil, err
			}
		}
		output = append(output, d.Triangle())
	}
	// For high resolution models ErrNormalMismatch may be incorrectly returned.
	return output, readErr
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

func (h stlHeader) put(b []byte) {
	_ = b[83] // early bounds check
	for i := range b[:80] {
		b[i] = 0
	}
	binary.LittleEndian.PutUint32(b[80:], h.Count)
}

const trianglesInBuffer = 1 << 10

// stlReader encodes the triangles of a Renderer as STL triangle records.
type stlReader struct {
	r   Renderer
	buf [trianglesInBuffer]ms3.Triangle
}

func (w *stlReader) Read(b []byte) (int, error) {
	ntMax := min(len(b)/stlTriangleSize, len(w.buf))
	if ntMax == 0 {
		return 0, errors.New("stlReader requires at least 50 bytes to write a single triangle")
	}
	var (
		err error
		it  int // Number of triangles written to byte buffer
		nt  int // number of triangles read during ReadTriangles
	)
	for it < ntMax && err == nil {
		nt, err = w.r.ReadTriangles(w.buf[:ntMax-it])
		for _, triangle := range w.buf[:nt] {
			newSTLTriangle(triangle).put(b[it*stlTriangleSize:])
			it++
		}
	}
	return it * stlTriangleSize, err
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func newSTLTriangle(t ms3.Triangle) stlTriangle {
	var norm ms3.Vec
	if n := t.Normal(); ms3.Norm(n) > 0 {
		norm = ms3.Unit(n)
	}
	return stlTriangle{
		Normal:  vecToArray(norm),
		Vertex1: vecToArray(t[0]),
		Vertex2: vecToArray(t[1]),
		Vertex3: vecToArray(t[2]),
	}
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0) // Zero out attributes.
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported yet.
}

func (t stlTriangle) validate() error {
	const epsilon = 1e-12
	const normTol = 5e-2
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.Triangle().IsDegenerate(epsilon) {
		return errors.New("triangle is degenerate")
	}
	gotNormal := vecFromArray(t.Normal)
	calcNormal := t.normalFromVertices()
	calcNormalNeg := ms3.Scale(-1, calcNormal)
	if !ms3.EqualElem(calcNormal, gotNormal, normTol) && !ms3.EqualElem(calcNormalNeg, gotNormal, normTol) {
		return ErrNormalMismatch // sometimes may fail
	}
	return nil
}

func (t stlTriangle) normalFromVertices() ms3.Vec {
	v1 := ms3.Scale(10, vecFromArray(t.Vertex1))
	v2 := ms3.Scale(10, vecFromArray(t.Vertex2))
	v3 := ms3.Scale(10, vecFromArray(t.Vertex3))
	return ms3.Unit(ms3.Cross(ms3.Sub(v2, v1), ms3.Sub(v3, v1)))
}

func (t stlTriangle) Triangle() ms3.Triangle {
	return ms3.Triangle{vecFromArray(t.Vertex1), vecFromArray(t.Vertex2), vecFromArray(t.Vertex3)}
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func vecFromArray(f [3]float32) ms3.Vec {
	return ms3.Vec{X: f[0], Y: f[1], Z: f[2]}
}

func vecToArray(v ms3.Vec) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
