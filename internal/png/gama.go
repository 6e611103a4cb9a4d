package png

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/rasterkit/internal/image"
)

// gammaScale is the fixed-point scale of the gAMA payload.
const gammaScale = 100000

// The gAMA chunk stores the reciprocal of the display gamma times 100000
// (45455 for gamma 2.2). Both directions use that convention.

// GammaFromStored converts a gAMA payload value to a display gamma.
// Returns 0 for a stored value of 0.
func GammaFromStored(stored uint32) float64 {
	switch stored {
	case 0:
		return 0
	case 45455:
		return 2.2
	case 55556:
		return 1.8
	}
	return gammaScale / float64(stored)
}

// StoredFromGamma converts a display gamma to its gAMA payload value.
func StoredFromGamma(gamma float64) uint32 {
	if gamma <= 0 || math.IsNaN(gamma) || math.IsInf(gamma, 0) {
		return 0
	}
	v := math.Round(gammaScale / gamma)
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

func parseGAMA(data []byte) (uint32, error) {
	if len(data) != 4 {
		return 0, image.Errorf(opDecode, image.ErrChunk, "gAMA length %d, want 4", len(data))
	}
	return binary.BigEndian.Uint32(data), nil
}

func gamaBytes(stored uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, stored)
}
