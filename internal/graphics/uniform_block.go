package graphics

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// blockLayout is the CPU copy of a uniform block, written by field name.
type blockLayout struct {
	offsets map[string]int
	data    []byte
	dirty   bool
}

func newBlockLayout(size int, names []string, offsets []int32) (*blockLayout, error) {
	if len(names) != len(offsets) {
		return nil, fmt.Errorf("%d names for %d offsets", len(names), len(offsets))
	}
	b := &blockLayout{offsets: make(map[string]int, len(names)), data: make([]byte, size), dirty: true}
	for i, name := range names {
		off := int(offsets[i])
		if off < 0 || off+4 > size {
			return nil, fmt.Errorf("field %s: offset %d outside block of %d bytes", name, off, size)
		}
		b.offsets[name] = off
	}
	return b, nil
}

func (b *blockLayout) offset(name string) int {
	off, ok := b.offsets[name]
	if !ok {
		panic("graphics: uniform block has no field " + name)
	}
	return off
}

func (b *blockLayout) putFloats(name string, vs ...float32) {
	off := b.offset(name)
	if off+4*len(vs) > len(b.data) {
		panic(fmt.Sprintf("graphics: field %s overflows its block", name))
	}
	for i, v := range vs {
		binary.LittleEndian.PutUint32(b.data[off+4*i:], math.Float32bits(v))
	}
	b.dirty = true
}

func (b *blockLayout) putInt(name string, v int32) {
	binary.LittleEndian.PutUint32(b.data[b.offset(name):], uint32(v))
	b.dirty = true
}

// UniformBlock is a std140 uniform buffer whose field offsets are queried from
// the linked program by name, once.
type UniformBlock struct {
	name    string
	binding uint32
	buffer  uint32
	layout  *blockLayout
}

// NewUniformBlock binds block name of program to binding and allocates its buffer.
func NewUniformBlock(program uint32, name string, binding uint32, fields ...string) (*UniformBlock, error) {
	index := gl.GetUniformBlockIndex(program, gl.Str(name+"\x00"))
	if index == gl.INVALID_INDEX {
		return nil, fmt.Errorf("uniform block %s not found", name)
	}
	var size int32
	gl.GetActiveUniformBlockiv(program, index, gl.UNIFORM_BLOCK_DATA_SIZE, &size)

	cnames := make([]string, len(fields))
	for i, f := range fields {
		cnames[i] = f + "\x00"
	}
	names, free := gl.Strs(cnames...)
	indices := make([]uint32, len(fields))
	gl.GetUniformIndices(program, int32(len(fields)), names, &indices[0])
	free()
	for i, idx := range indices {
		if idx == gl.INVALID_INDEX {
			return nil, fmt.Errorf("uniform block %s: field %s not found", name, fields[i])
		}
	}
	offsets := make([]int32, len(fields))
	gl.GetActiveUniformsiv(program, int32(len(fields)), &indices[0], gl.UNIFORM_OFFSET, &offsets[0])

	layout, err := newBlockLayout(int(size), fields, offsets)
	if err != nil {
		return nil, fmt.Errorf("uniform block %s: %w", name, err)
	}

	gl.UniformBlockBinding(program, index, binding)
	ub := &UniformBlock{name: name, binding: binding, layout: layout}
	gl.GenBuffers(1, &ub.buffer)
	gl.BindBuffer(gl.UNIFORM_BUFFER, ub.buffer)
	gl.BufferData(gl.UNIFORM_BUFFER, int(size), nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return ub, nil
}

func (ub *UniformBlock) SetFloat(name string, v float32)   { ub.layout.putFloats(name, v) }
func (ub *UniformBlock) SetInt(name string, v int32)       { ub.layout.putInt(name, v) }
func (ub *UniformBlock) SetVec3(name string, v mgl32.Vec3) { ub.layout.putFloats(name, v[:]...) }
func (ub *UniformBlock) SetVec4(name string, v mgl32.Vec4) { ub.layout.putFloats(name, v[:]...) }

// Flush uploads the block if any field changed since the last upload.
func (ub *UniformBlock) Flush() {
	if !ub.layout.dirty {
		return
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, ub.buffer)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(ub.layout.data), gl.Ptr(ub.layout.data))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	ub.layout.dirty = false
}

// Bind attaches the buffer to the block's binding point.
func (ub *UniformBlock) Bind() {
	gl.BindBufferBase(gl.UNIFORM_BUFFER, ub.binding, ub.buffer)
}

func (ub *UniformBlock) Delete() {
	gl.DeleteBuffers(1, &ub.buffer)
}
