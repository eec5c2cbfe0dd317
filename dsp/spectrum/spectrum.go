package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-thdn/dsp/core"
	"github.com/cwbudde/algo-thdn/dsp/vector"
)

// scratchBuf holds pooled scratch memory for interleaving complex bins.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

// Magnitude returns |X[k]| for each complex bin. The bins are interleaved
// into pooled scratch and passed to vector.Magnitude.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	buf := scratchPool.Get().(*scratchBuf)
	buf.data = core.EnsureLen(buf.data, 2*len(in))
	for i, c := range in {
		buf.data[2*i] = real(c)
		buf.data[2*i+1] = imag(c)
	}

	out := vector.Magnitude(buf.data)
	scratchPool.Put(buf)

	return out
}
