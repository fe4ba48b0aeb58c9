// Package dicom bridges JPEG 2000 structural metadata to DICOM pixel data
// types: it inspects encapsulated codestream frames without decoding them and
// derives frame descriptions from the recovered metadata.
package dicom

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/cocosip/go-jpeg2000-metadata/jpeg2000"
	"github.com/cocosip/go-jpeg2000-metadata/stream"
)

// jpeg2000Syntaxes lists the transfer syntaxes whose frames carry JPEG 2000
// codestreams.
var jpeg2000Syntaxes = []*transfer.Syntax{
	transfer.JPEG2000Lossless,
	transfer.JPEG2000,
	transfer.JPEG2000Part2MultiComponentLosslessOnly,
	transfer.JPEG2000Part2MultiComponent,
	transfer.HTJ2KLossless,
	transfer.HTJ2KLosslessRPCL,
	transfer.HTJ2K,
}

// IsJPEG2000 reports whether the transfer syntax encodes frames as JPEG 2000
// codestreams.
func IsJPEG2000(ts *transfer.Syntax) bool {
	if ts == nil {
		return false
	}
	uid := ts.UID().UID()
	for _, s := range jpeg2000Syntaxes {
		if s.UID().UID() == uid {
			return true
		}
	}
	return false
}

// InspectFrame parses the structural metadata of a single encapsulated frame.
// The frame may be a full JP2 container or a bare codestream.
func InspectFrame(frame []byte) (*jpeg2000.Metadata, error) {
	return jpeg2000.ParseMetadata(stream.NewBytes(frame))
}

// InspectFrameWithLogger is InspectFrame with an explicit logger.
func InspectFrameWithLogger(frame []byte, logger *slog.Logger) (*jpeg2000.Metadata, error) {
	return jpeg2000.ParseMetadataWithLogger(stream.NewBytes(frame), logger)
}

// InspectPixelData parses the structural metadata of every frame in the pixel
// data. The result has one entry per frame, in frame order.
func InspectPixelData(pd imagetypes.PixelData) ([]*jpeg2000.Metadata, error) {
	if pd == nil {
		return nil, ErrNilPixelData
	}
	if !pd.IsEncapsulated() {
		return nil, ErrNotEncapsulated
	}
	results := make([]*jpeg2000.Metadata, 0, pd.FrameCount())
	for i := 0; i < pd.FrameCount(); i++ {
		frame, err := pd.GetFrame(i)
		if err != nil {
			return nil, fmt.Errorf("getting frame %d: %w", i, err)
		}
		md, err := InspectFrame(frame)
		if err != nil {
			return nil, fmt.Errorf("inspecting frame %d: %w", i, err)
		}
		results = append(results, md)
	}
	return results, nil
}

// FrameInfo derives a DICOM frame description from parsed metadata. The
// codestream SIZ fields take precedence over the header box fields, which in
// damaged streams may be the only ones present. ErrNoGeometry is returned
// when neither source supplied the image dimensions.
func FrameInfo(md *jpeg2000.Metadata) (*imagetypes.FrameInfo, error) {
	if md == nil {
		return nil, ErrNoGeometry
	}

	width, height, err := geometry(md)
	if err != nil {
		return nil, err
	}

	samples := uint16(1)
	if md.CodestreamChannels != nil {
		samples = *md.CodestreamChannels
	} else if md.HeaderChannels != nil {
		samples = *md.HeaderChannels
	}

	pixelType := jpeg2000.PixelUint8
	if md.CodestreamPixelType != nil {
		pixelType = *md.CodestreamPixelType
	} else if md.HeaderPixelType != nil {
		pixelType = *md.HeaderPixelType
	}

	bits := uint16(8)
	if pixelType == jpeg2000.PixelUint16 {
		bits = 16
	}

	photometric := "MONOCHROME2"
	if samples >= 3 {
		photometric = "RGB"
	}

	return &imagetypes.FrameInfo{
		Width:                     width,
		Height:                    height,
		BitsAllocated:             bits,
		BitsStored:                bits,
		HighBit:                   bits - 1,
		SamplesPerPixel:           samples,
		PixelRepresentation:       0,
		PlanarConfiguration:       0,
		PhotometricInterpretation: photometric,
	}, nil
}

func geometry(md *jpeg2000.Metadata) (width, height uint16, err error) {
	switch {
	case md.CodestreamSizeX != nil && md.CodestreamSizeY != nil:
		return clampDimensions(*md.CodestreamSizeX, *md.CodestreamSizeY)
	case md.HeaderSizeX != nil && md.HeaderSizeY != nil:
		return clampDimensions(*md.HeaderSizeX, *md.HeaderSizeY)
	}
	return 0, 0, ErrNoGeometry
}

// clampDimensions rejects dimensions the uint16 frame fields cannot hold;
// whole-slide images routinely exceed them.
func clampDimensions(w, h uint32) (uint16, uint16, error) {
	if w > math.MaxUint16 || h > math.MaxUint16 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrGeometryOutOfRange, w, h)
	}
	return uint16(w), uint16(h), nil
}
