package buffers

import (
	"github.com/bloeys/nscene/assert"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type BufUsage int

// Full docs for buffer usage can be found here: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
const (
	BufUsage_Unknown BufUsage = iota

	//Buffer is set only once and used many times
	BufUsage_Static_Draw
	//Buffer is changed a lot and used many times
	BufUsage_Dynamic_Draw
	//Buffer is set only once and used by the GPU at most a few times
	BufUsage_Stream_Draw

	BufUsage_Static_Read
	BufUsage_Dynamic_Read
	BufUsage_Stream_Read

	BufUsage_Static_Copy
	BufUsage_Dynamic_Copy
	BufUsage_Stream_Copy

	bufUsageCount
)

var bufUsageToGL = [bufUsageCount]uint32{
	BufUsage_Static_Draw:  gl.STATIC_DRAW,
	BufUsage_Dynamic_Draw: gl.DYNAMIC_DRAW,
	BufUsage_Stream_Draw:  gl.STREAM_DRAW,

	BufUsage_Static_Read:  gl.STATIC_READ,
	BufUsage_Dynamic_Read: gl.DYNAMIC_READ,
	BufUsage_Stream_Read:  gl.STREAM_READ,

	BufUsage_Static_Copy:  gl.STATIC_COPY,
	BufUsage_Dynamic_Copy: gl.DYNAMIC_COPY,
	BufUsage_Stream_Copy:  gl.STREAM_COPY,
}

func (b BufUsage) ToGL() uint32 {
	assert.T(b > BufUsage_Unknown && b < bufUsageCount, "Unexpected BufUsage value '%d'", b)
	return bufUsageToGL[b]
}
