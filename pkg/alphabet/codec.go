package alphabet

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/ThatOtherAndrew/Unistroke/pkg/codemap"
	"github.com/ThatOtherAndrew/Unistroke/pkg/status"
)

// encoder writes little-endian int32 fields and keeps the first error.
type encoder struct {
	w   *bufio.Writer
	buf [4]byte
	err error
}

func (e *encoder) put(v int) {
	if e.err != nil {
		return
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		e.err = status.Failf("alphabet: value %d does not fit int32", v)
		return
	}
	binary.LittleEndian.PutUint32(e.buf[:], uint32(int32(v)))
	_, e.err = e.w.Write(e.buf[:])
}

func (e *encoder) putAll(vs []int) {
	for _, v := range vs {
		e.put(v)
	}
}

// Encode writes a in the binary alphabet format:
//
//	count, regions, segments, mappable
//	x[mappable], y[mappable]
//	positive_begin, negative_begin, positive_end, negative_end
//	count * (code_point, segments, regions, codes[segments], measures[regions])
//	regions * (start, stop)
//	bias[regions]
//
// Every field is a little-endian int32. There is no header or version.
func Encode(w io.Writer, a *Alphabet) error {
	if err := a.usable(); err != nil {
		return err
	}
	if w == nil {
		return status.Failf("alphabet: nil writer")
	}
	e := &encoder{w: bufio.NewWriter(w)}
	x, y := a.codeMap.Vectors()
	b := a.codeMap.Boundaries()

	e.put(len(a.chars))
	e.put(len(a.regions))
	e.put(a.segments)
	e.put(len(x))
	e.putAll(x)
	e.putAll(y)
	e.put(b.PositiveBegin)
	e.put(b.NegativeBegin)
	e.put(b.PositiveEnd)
	e.put(b.NegativeEnd)
	for _, c := range a.chars {
		e.put(int(c.CodePoint))
		e.put(len(c.Codes))
		e.put(len(c.Measures))
		e.putAll(c.Codes)
		e.putAll(c.Measures)
	}
	for _, r := range a.regions {
		e.put(r.Start)
		e.put(r.Stop)
	}
	e.putAll(a.bias)

	if e.err != nil {
		return wrapIO("encode", e.err)
	}
	if err := e.w.Flush(); err != nil {
		return wrapIO("encode", err)
	}
	return nil
}

// decoder reads little-endian int32 fields and keeps the first error.
type decoder struct {
	r   io.Reader
	buf [4]byte
	err error
}

func (d *decoder) get() int {
	if d.err != nil {
		return 0
	}
	if _, err := io.ReadFull(d.r, d.buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		d.err = err
		return 0
	}
	return int(int32(binary.LittleEndian.Uint32(d.buf[:])))
}

// count reads a length field and checks it against the allocation limit.
func (d *decoder) count(what string) int {
	n := d.get()
	if d.err != nil {
		return 0
	}
	if n < 0 {
		d.err = status.Failf("alphabet: negative %s %d", what, n)
		return 0
	}
	if err := status.CheckAlloc("alphabet: "+what, n); err != nil {
		d.err = err
		return 0
	}
	return n
}

func (d *decoder) getAll(n int) []int {
	if d.err != nil {
		return nil
	}
	vs := make([]int, n)
	for i := range vs {
		vs[i] = d.get()
	}
	return vs
}

// Decode reads an alphabet written by Encode. Every field is validated as
// it is read; on error nothing is returned.
//
// The stored boundaries are installed as read. If they differ from what
// the stored vectors finalize to, a warning is logged.
func Decode(r io.Reader) (*Alphabet, error) {
	if r == nil {
		return nil, status.Failf("alphabet: nil reader")
	}
	d := &decoder{r: bufio.NewReader(r)}

	count := d.count("character count")
	regions := d.count("region count")
	segments := d.count("segment count")
	mappable := d.count("mappable code count")
	if d.err != nil {
		return nil, wrapIO("decode header", d.err)
	}

	m, err := codemap.New(mappable)
	if err != nil {
		return nil, err
	}
	x := d.getAll(mappable)
	y := d.getAll(mappable)
	b := codemap.Boundaries{
		PositiveBegin: d.get(),
		NegativeBegin: d.get(),
		PositiveEnd:   d.get(),
		NegativeEnd:   d.get(),
	}
	if d.err != nil {
		return nil, wrapIO("decode code map", d.err)
	}
	for i := range x {
		if err := m.Set(i, x[i], y[i]); err != nil {
			return nil, err
		}
	}

	a, err := New(m, regions, segments)
	if err != nil {
		return nil, err
	}
	if fresh := a.codeMap.Boundaries(); fresh != b {
		Logger().Warn("alphabet: stored boundaries differ from vectors",
			"stored", b, "computed", fresh)
	}
	if err := a.codeMap.Restore(b); err != nil {
		return nil, err
	}

	if count > 0 {
		a.chars = make([]Character, 0, min(count, 1024))
	}
	for i := 0; i < count; i++ {
		c := Character{CodePoint: rune(d.get())}
		nc := d.count("character segment count")
		nm := d.count("character region count")
		if d.err != nil {
			return nil, wrapIO(fmt.Sprintf("decode character %d", i), d.err)
		}
		if nc != segments || nm != regions {
			return nil, status.Conflictf("alphabet: character %d has %d segments and %d regions, want %d and %d",
				i, nc, nm, segments, regions)
		}
		c.Codes = d.getAll(nc)
		c.Measures = d.getAll(nm)
		if d.err != nil {
			return nil, wrapIO(fmt.Sprintf("decode character %d", i), d.err)
		}
		if err := a.validate(c); err != nil {
			return nil, fmt.Errorf("character %d: %w", i, err)
		}
		a.chars = append(a.chars, c)
	}

	for i := 0; i < regions; i++ {
		ar := ActivityRegion{Start: d.get(), Stop: d.get()}
		if d.err != nil {
			return nil, wrapIO("decode regions", d.err)
		}
		if err := a.SetRegion(i, ar); err != nil {
			return nil, err
		}
	}
	for i := 0; i < regions; i++ {
		v := d.get()
		if d.err != nil {
			return nil, wrapIO("decode bias", d.err)
		}
		if err := a.SetBias(i, v); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// SaveFile writes a to path. The data goes to a temporary file in the
// same directory which then replaces path, so a failed save leaves any
// existing file intact.
func SaveFile(path string, a *Alphabet) (err error) {
	if err := a.usable(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return wrapIO("save", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := Encode(tmp, a); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return wrapIO("save", err)
	}
	if err := tmp.Close(); err != nil {
		return wrapIO("save", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return wrapIO("save", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return wrapIO("save", err)
	}
	Logger().Debug("alphabet: saved", "path", path, "characters", len(a.chars))
	return nil
}

// LoadFile reads an alphabet from path.
func LoadFile(path string) (*Alphabet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapIO("load", err)
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	Logger().Debug("alphabet: loaded", "path", path, "characters", len(a.chars))
	return a, nil
}

// wrapIO tags a foreign error as status.ErrFailed while keeping it
// reachable through errors.Is. Errors already in the taxonomy pass through.
func wrapIO(op string, err error) error {
	if errors.Is(err, status.ErrFailed) || errors.Is(err, status.ErrNoMemory) ||
		errors.Is(err, status.ErrConflictingParameters) {
		return fmt.Errorf("alphabet: %s: %w", op, err)
	}
	return fmt.Errorf("alphabet: %s: %w: %w", op, status.ErrFailed, err)
}
