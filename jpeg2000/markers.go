package jpeg2000

// SegmentMarker identifies a codestream marker segment by its 2-byte code.
// Reference: ISO/IEC 15444-1:2019 Table A.1
type SegmentMarker uint16

// Delimiting markers
const (
	// MarkerSOC - Start of codestream
	MarkerSOC SegmentMarker = 0xFF4F

	// MarkerSOCSwapped is the SOC code as it reads when the stream byte
	// order does not match the reader. Seeing it in place of SOC means the
	// byte order must be flipped before any further reads.
	MarkerSOCSwapped SegmentMarker = 0x4FFF

	// MarkerSOT - Start of tile-part
	MarkerSOT SegmentMarker = 0xFF90

	// MarkerSOD - Start of data
	MarkerSOD SegmentMarker = 0xFF93

	// MarkerEOC - End of codestream
	MarkerEOC SegmentMarker = 0xFFD9
)

// Fixed information marker segments
const (
	// MarkerSIZ - Image and tile size
	MarkerSIZ SegmentMarker = 0xFF51
)

// Functional marker segments
const (
	// MarkerCOD - Coding style default
	MarkerCOD SegmentMarker = 0xFF52

	// MarkerCOC - Coding style component
	MarkerCOC SegmentMarker = 0xFF53

	// MarkerRGN - Region of interest
	MarkerRGN SegmentMarker = 0xFF5E

	// MarkerQCD - Quantization default
	MarkerQCD SegmentMarker = 0xFF5C

	// MarkerQCC - Quantization component
	MarkerQCC SegmentMarker = 0xFF5D

	// MarkerPOC - Progression order change
	MarkerPOC SegmentMarker = 0xFF5F
)

// Pointer marker segments
const (
	// MarkerTLM - Tile-part lengths
	MarkerTLM SegmentMarker = 0xFF55

	// MarkerPLM - Packet length, main header
	MarkerPLM SegmentMarker = 0xFF57

	// MarkerPLT - Packet length, tile-part header
	MarkerPLT SegmentMarker = 0xFF58

	// MarkerPPM - Packed packet headers, main header
	MarkerPPM SegmentMarker = 0xFF60

	// MarkerPPT - Packed packet headers, tile-part header
	MarkerPPT SegmentMarker = 0xFF61
)

// In-bitstream and informational marker segments
const (
	// MarkerSOP - Start of packet
	MarkerSOP SegmentMarker = 0xFF91

	// MarkerEPH - End of packet header
	MarkerEPH SegmentMarker = 0xFF92

	// MarkerCRG - Component registration
	MarkerCRG SegmentMarker = 0xFF63

	// MarkerCOM - Comment
	MarkerCOM SegmentMarker = 0xFF64
)

// Reserved delimiter marker range (ITU-T T.81 compatibility codes)
const (
	MarkerReservedDelimiterMin SegmentMarker = 0xFF30
	MarkerReservedDelimiterMax SegmentMarker = 0xFF3F
)

var markerNames = map[SegmentMarker]string{
	MarkerSOC:                  "SOC",
	MarkerSOCSwapped:           "SOC (byte-swapped)",
	MarkerSOT:                  "SOT",
	MarkerSOD:                  "SOD",
	MarkerEOC:                  "EOC",
	MarkerSIZ:                  "SIZ",
	MarkerCOD:                  "COD",
	MarkerCOC:                  "COC",
	MarkerRGN:                  "RGN",
	MarkerQCD:                  "QCD",
	MarkerQCC:                  "QCC",
	MarkerPOC:                  "POC",
	MarkerTLM:                  "TLM",
	MarkerPLM:                  "PLM",
	MarkerPLT:                  "PLT",
	MarkerPPM:                  "PPM",
	MarkerPPT:                  "PPT",
	MarkerSOP:                  "SOP",
	MarkerEPH:                  "EPH",
	MarkerCRG:                  "CRG",
	MarkerCOM:                  "COM",
	MarkerReservedDelimiterMin: "reserved delimiter (min)",
	MarkerReservedDelimiterMax: "reserved delimiter (max)",
}

// lookupMarker maps a 2-byte code to its segment marker. The second result
// is false for codes outside the recognized set; intermediate codes of the
// reserved delimiter range are deliberately not members, matching the closed
// table, though isDelimiter still classifies them.
func lookupMarker(code uint16) (SegmentMarker, bool) {
	m := SegmentMarker(code)
	_, ok := markerNames[m]
	return m, ok
}

// isDelimiter reports whether the marker code stands alone, with no length
// field or segment body following it.
func isDelimiter(code uint16) bool {
	switch SegmentMarker(code) {
	case MarkerSOC, MarkerSOD, MarkerEPH, MarkerEOC:
		return true
	}
	return code >= uint16(MarkerReservedDelimiterMin) && code <= uint16(MarkerReservedDelimiterMax)
}

// Name returns the marker mnemonic, or "UNKNOWN" for unrecognized codes.
func (m SegmentMarker) Name() string {
	if name, ok := markerNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}
