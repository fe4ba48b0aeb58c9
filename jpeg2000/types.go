package jpeg2000

// PixelType is the storage type of a single image component.
type PixelType int

const (
	// PixelUint8 - unsigned 8-bit components
	PixelUint8 PixelType = iota

	// PixelUint16 - unsigned 16-bit components
	PixelUint16
)

// String returns the pixel type name.
func (p PixelType) String() string {
	switch p {
	case PixelUint8:
		return "uint8"
	case PixelUint16:
		return "uint16"
	default:
		return "UNKNOWN"
	}
}

// Type codes that identify 16-bit component encodings.
const (
	pixelCodeUint16  = 0x0f070100
	pixelCodeUint16b = 0x0f070000
)

// pixelTypeFromCode decodes a 4-byte on-disk type code. The mapping is
// total: anything other than the two 16-bit codes is 8-bit.
func pixelTypeFromCode(code uint32) PixelType {
	if code == pixelCodeUint16 || code == pixelCodeUint16b {
		return PixelUint16
	}
	return PixelUint8
}

// Metadata is the structural information recovered from a JPEG 2000 stream.
//
// Header-derived and codestream-derived fields are independent and may
// disagree; reconciling them is the caller's concern. A nil field means the
// structure carrying it was never encountered, which is a legitimate outcome
// for sparse or damaged streams, not an error.
type Metadata struct {
	// RawCodestream is true when no JP2 box structure was found and the
	// stream was parsed as a bare codestream.
	RawCodestream bool

	// Image geometry from the JP2 image header box ("ihdr").
	HeaderSizeX     *uint32
	HeaderSizeY     *uint32
	HeaderChannels  *uint16
	HeaderPixelType *PixelType

	// Image geometry from the codestream SIZ segment.
	CodestreamSizeX     *uint32
	CodestreamSizeY     *uint32
	CodestreamChannels  *uint16
	CodestreamPixelType *PixelType

	// ResolutionLevels is the wavelet decomposition depth from the COD
	// segment.
	ResolutionLevels *uint8
}
