package jpeg2000

import "encoding/binary"

// BoxType identifies a JP2 container box by its 4-byte type tag.
// Reference: ISO/IEC 15444-1:2019 Annex I
type BoxType uint32

const (
	// BoxSignature - JP2 signature box ("jP  ")
	BoxSignature BoxType = 0x6A502020

	// BoxSignatureSwapped is the signature tag as it reads when the stream
	// byte order does not match the reader. Seeing it as the first box type
	// means every multi-byte field so far was byte-swapped.
	BoxSignatureSwapped BoxType = 0x2020506A

	// BoxFileType - File type box ("ftyp")
	BoxFileType BoxType = 0x66747970

	// BoxHeader - JP2 header super-box ("jp2h")
	BoxHeader BoxType = 0x6A703268

	// BoxImageHeader - Image header box ("ihdr")
	BoxImageHeader BoxType = 0x69686472

	// BoxBitsPerComponent - Bits per component box ("bpcc")
	BoxBitsPerComponent BoxType = 0x62706363

	// BoxColorSpec - Color specification box ("colr")
	BoxColorSpec BoxType = 0x636F6C72

	// BoxPalette - Palette box ("pclr")
	BoxPalette BoxType = 0x70636C72

	// BoxComponentMapping - Component mapping box ("cmap")
	BoxComponentMapping BoxType = 0x636D6170

	// BoxChannelDefinition - Channel definition box ("cdef")
	BoxChannelDefinition BoxType = 0x63646566

	// BoxResolution - Resolution super-box ("res ")
	BoxResolution BoxType = 0x72657320

	// BoxCaptureResolution - Capture resolution box ("resc")
	BoxCaptureResolution BoxType = 0x72657363

	// BoxDisplayResolution - Default display resolution box ("resd")
	BoxDisplayResolution BoxType = 0x72657364

	// BoxContiguousCodestream - Contiguous codestream box ("jp2c")
	BoxContiguousCodestream BoxType = 0x6A703263

	// BoxIntellectualProperty - IPR box ("jp2i")
	BoxIntellectualProperty BoxType = 0x6A703269

	// BoxXML - XML box ("xml ")
	BoxXML BoxType = 0x786D6C20

	// BoxUUID - UUID box ("uuid")
	BoxUUID BoxType = 0x75756964

	// BoxUUIDInfo - UUID info super-box ("uinf")
	BoxUUIDInfo BoxType = 0x75696E66

	// BoxUUIDList - UUID list box ("ulst")
	BoxUUIDList BoxType = 0x756C7374

	// BoxURL - URL box ("url ")
	BoxURL BoxType = 0x75726C20

	// BoxAssociation - Association box ("asoc")
	BoxAssociation BoxType = 0x61736F63

	// BoxLabel - Label box ("lbl ")
	BoxLabel BoxType = 0x6C626C20

	// BoxPlaceholder - Placeholder box ("phld")
	BoxPlaceholder BoxType = 0x70686C64
)

var boxNames = map[BoxType]string{
	BoxSignature:            "signature",
	BoxSignatureSwapped:     "signature (byte-swapped)",
	BoxFileType:             "file type",
	BoxHeader:               "header",
	BoxImageHeader:          "image header",
	BoxBitsPerComponent:     "bits per component",
	BoxColorSpec:            "color specification",
	BoxPalette:              "palette",
	BoxComponentMapping:     "component mapping",
	BoxChannelDefinition:    "channel definition",
	BoxResolution:           "resolution",
	BoxCaptureResolution:    "capture resolution",
	BoxDisplayResolution:    "default display resolution",
	BoxContiguousCodestream: "contiguous codestream",
	BoxIntellectualProperty: "intellectual property",
	BoxXML:                  "XML",
	BoxUUID:                 "UUID",
	BoxUUIDInfo:             "UUID info",
	BoxUUIDList:             "UUID list",
	BoxURL:                  "URL",
	BoxAssociation:          "association",
	BoxLabel:                "label",
	BoxPlaceholder:          "placeholder",
}

// lookupBox maps a 4-byte tag to its box type. The second result is false
// for tags outside the recognized set.
func lookupBox(code uint32) (BoxType, bool) {
	t := BoxType(code)
	_, ok := boxNames[t]
	return t, ok
}

// String returns the 4-character type tag.
func (t BoxType) String() string {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(t))
	return string(b)
}

// Name returns a human-readable box name, or the raw tag for unknown types.
func (t BoxType) Name() string {
	if name, ok := boxNames[t]; ok {
		return name
	}
	return t.String()
}
