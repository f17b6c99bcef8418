package buffers

import (
	"github.com/bloeys/nmage2d/logging"
	"github.com/go-gl/gl/v2.1/gl"
)

type IndexBuffer struct {
	Id uint32
	// IndexBufCount is the number of elements in the index buffer. Updated in IndexBuffer.SetData
	IndexBufCount int32
}

func (ib *IndexBuffer) Bind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.Id)
}

func (ib *IndexBuffer) UnBind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

// SetData uploads 16-bit indices, which covers all the small static
// geometry used by the 2D fast paths
func (ib *IndexBuffer) SetData(values []uint16) {

	ib.Bind()

	sizeInBytes := len(values) * 2
	ib.IndexBufCount = int32(len(values))

	if sizeInBytes == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, gl.Ptr(nil), BufUsage_Static_Draw.ToGL())
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, sizeInBytes, gl.Ptr(&values[0]), BufUsage_Static_Draw.ToGL())
	}
}

func (ib *IndexBuffer) Delete() {
	gl.DeleteBuffers(1, &ib.Id)
	ib.Id = 0
}

func NewIndexBuffer() IndexBuffer {

	ib := IndexBuffer{}

	gl.GenBuffers(1, &ib.Id)
	if ib.Id == 0 {
		logging.Errorf("Failed to create OpenGL buffer")
	}

	return ib
}
