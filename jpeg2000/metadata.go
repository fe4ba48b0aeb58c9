// Package jpeg2000 extracts structural metadata from JPEG 2000 streams.
//
// The parser walks the JP2 box structure (or a bare codestream) and collects
// image geometry, component count, pixel type and resolution-level depth
// without decoding any compressed data. Parsing terminates as soon as tile
// data begins, so arbitrarily large streams are cheap to inspect.
package jpeg2000

import (
	"fmt"
	"log/slog"
	"math/bits"

	"github.com/cocosip/go-jpeg2000-metadata/stream"
)

// maxHeaderDepth bounds recursion into nested header super-boxes.
const maxHeaderDepth = 16

// metadataParser walks one stream once. The reader's cursor and byte-order
// flag are shared mutable state between the box walker and the codestream
// walker; nothing here is safe for concurrent use.
type metadataParser struct {
	r      *stream.Reader
	limit  int64
	origin int64
	log    *slog.Logger
	md     Metadata
	depth  int
}

// ParseMetadata parses JPEG 2000 metadata from the reader's current position
// to the end of the stream.
func ParseMetadata(r *stream.Reader) (*Metadata, error) {
	return ParseMetadataWithLogger(r, slog.Default())
}

// ParseMetadataWithLogger is ParseMetadata with an explicit logger.
func ParseMetadataWithLogger(r *stream.Reader, logger *slog.Logger) (*Metadata, error) {
	p := newMetadataParser(r, r.Length(), logger)
	if err := p.parseBoxes(p.limit); err != nil {
		return nil, err
	}
	return &p.md, nil
}

// ParseMetadataLimit parses JPEG 2000 metadata from the reader's current
// position up to the given absolute offset. The reader's byte-order flag is
// restored on return, success or not: the endianness probing done while
// parsing must not leak to the caller.
func ParseMetadataLimit(r *stream.Reader, limit int64) (*Metadata, error) {
	return ParseMetadataLimitWithLogger(r, limit, slog.Default())
}

// ParseMetadataLimitWithLogger is ParseMetadataLimit with an explicit logger.
func ParseMetadataLimitWithLogger(r *stream.Reader, limit int64, logger *slog.Logger) (*Metadata, error) {
	little := r.LittleEndian()
	defer r.SetLittleEndian(little)

	p := newMetadataParser(r, limit, logger)
	if err := p.parseBoxes(limit); err != nil {
		return nil, err
	}
	return &p.md, nil
}

func newMetadataParser(r *stream.Reader, limit int64, logger *slog.Logger) *metadataParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &metadataParser{
		r:      r,
		limit:  limit,
		origin: r.Offset(),
		log:    logger,
	}
}

// parseBoxes walks length-prefixed boxes until limit. Unknown boxes are
// skipped with a warning; a truncated read is fatal.
func (p *metadataParser) parseBoxes(limit int64) error {
	if p.depth >= maxHeaderDepth {
		p.log.Warn("header box nesting too deep, stopping descent",
			slog.Int("depth", p.depth))
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()

	pos := p.r.Offset()
	p.log.Debug("parsing JPEG 2000 boxes", slog.Int64("offset", pos))

	// A well-formed box occupies at least its 8-byte header, so the region
	// cannot hold more boxes than this. Keeps crafted lengths that advance
	// by tiny steps from spinning forever.
	maxIter := (limit-pos)/8 + 1

	for iter := int64(0); pos < limit; iter++ {
		if iter >= maxIter {
			p.log.Warn("box count exceeds region capacity, stopping",
				slog.Int64("offset", pos))
			break
		}
		pos = p.r.Offset()

		rawLength, err := p.r.ReadUint32()
		if err != nil {
			return err
		}
		code, err := p.r.ReadUint32()
		if err != nil {
			return err
		}
		length := int64(int32(rawLength))

		boxType, known := lookupBox(code)
		if known && boxType == BoxSignatureSwapped {
			// The signature tag only reads as this pattern when the stream
			// and reader disagree on byte order. Flip the reader and repair
			// the length that was read before the flip.
			p.log.Debug("swapping byte order during box parsing")
			p.r.SetLittleEndian(!p.r.LittleEndian())
			length = int64(int32(bits.ReverseBytes32(rawLength)))
		}

		nextPos := pos + length
		remaining := length - 8

		if !known {
			p.log.Warn("unknown JPEG 2000 box",
				slog.String("tag", fmt.Sprintf("0x%08X", code)),
				slog.Int64("offset", pos))
			if pos == p.origin {
				if err := p.tryRawCodestream(); err != nil {
					return err
				}
			}
		} else {
			p.log.Debug("found JPEG 2000 box",
				slog.String("box", boxType.Name()),
				slog.Int64("offset", pos))
			switch boxType {
			case BoxContiguousCodestream:
				// A corrupt codestream must not prevent reading the
				// remaining header boxes.
				if err := p.parseCodestream(remaining); err != nil {
					p.log.Warn("could not parse contiguous codestream",
						slog.Any("error", err))
				}
			case BoxHeader:
				if err := p.parseHeaderBox(nextPos); err != nil {
					return err
				}
			}
		}

		// A zero remaining length gives no basis for a further offset, so
		// stop rather than spin.
		if nextPos < 0 || nextPos >= limit || remaining == 0 {
			p.log.Debug("exiting box parse loop")
			break
		}
		p.log.Debug("seeking to next box", slog.Int64("offset", nextPos))
		if err := p.r.Seek(nextPos); err != nil {
			return err
		}
	}
	return nil
}

// tryRawCodestream probes the parse origin for a codestream marker. Fires
// only when the very first box tag was unrecognized; a recognized marker
// means the stream carries no box structure at all.
func (p *metadataParser) tryRawCodestream() error {
	if err := p.r.Seek(p.origin); err != nil {
		return err
	}
	code, err := p.r.ReadUint16()
	if err != nil {
		return err
	}
	if _, ok := lookupMarker(code); !ok {
		return nil
	}
	p.log.Info("stream is a raw codestream, not a JP2 container")
	p.md.RawCodestream = true
	if err := p.r.Seek(p.origin); err != nil {
		return err
	}
	return p.parseCodestream(p.r.Length() - p.origin)
}

// parseHeaderBox handles the jp2h super-box: extract the image header
// sub-box if it comes first, then descend into the remaining nested boxes.
func (p *metadataParser) parseHeaderBox(end int64) error {
	if err := p.r.Skip(4); err != nil {
		return err
	}
	tag, err := p.r.ReadString(4)
	if err != nil {
		return err
	}
	if tag == "ihdr" {
		// Height precedes width on the wire.
		height, err := p.r.ReadUint32()
		if err != nil {
			return err
		}
		width, err := p.r.ReadUint32()
		if err != nil {
			return err
		}
		channels, err := p.r.ReadUint16()
		if err != nil {
			return err
		}
		code, err := p.r.ReadUint32()
		if err != nil {
			return err
		}
		pixelType := pixelTypeFromCode(code)
		p.md.HeaderSizeX = &width
		p.md.HeaderSizeY = &height
		p.md.HeaderChannels = &channels
		p.md.HeaderPixelType = &pixelType
		p.log.Debug("read image header box",
			slog.Uint64("width", uint64(width)),
			slog.Uint64("height", uint64(height)),
			slog.Uint64("channels", uint64(channels)),
			slog.String("pixelType", pixelType.String()))
	}
	return p.parseBoxes(end)
}

// parseCodestream walks marker segments over the next length bytes,
// stopping once tile data begins.
func (p *metadataParser) parseCodestream(length int64) error {
	pos := p.r.Offset()
	p.log.Info("parsing contiguous codestream",
		slog.Int64("length", length), slog.Int64("offset", pos))
	limit := pos + length

	// A well-formed segment occupies at least its 2-byte marker.
	maxIter := length/2 + 1

	terminate := false
	for iter := int64(0); pos < limit && !terminate; iter++ {
		if iter >= maxIter {
			p.log.Warn("segment count exceeds region capacity, stopping",
				slog.Int64("offset", pos))
			break
		}
		pos = p.r.Offset()

		code, err := p.r.ReadUint16()
		if err != nil {
			return err
		}
		marker, known := lookupMarker(code)
		if known && marker == MarkerSOCSwapped {
			// Same bootstrap as the box walker, keyed off the codestream's
			// own leading marker.
			p.log.Debug("swapping byte order during segment parsing")
			p.r.SetLittleEndian(!p.r.LittleEndian())
			code = uint16(MarkerSOC)
			marker = MarkerSOC
		}

		// Delimiter markers carry no length field and no body.
		var segLength int64
		if !isDelimiter(code) {
			v, err := p.r.ReadUint16()
			if err != nil {
				return err
			}
			segLength = int64(v)
		}
		nextPos := pos + segLength + 2

		if !known {
			p.log.Warn("unknown JPEG 2000 segment marker",
				slog.String("marker", fmt.Sprintf("0x%04X", code)),
				slog.Int64("offset", pos))
		} else {
			p.log.Debug("found segment marker",
				slog.String("marker", marker.Name()),
				slog.Int64("length", segLength),
				slog.Int64("offset", pos))
			switch marker {
			case MarkerSOT, MarkerSOD, MarkerEOC:
				// Tile data from here on; no further metadata segments.
				terminate = true
			case MarkerSIZ:
				if err := p.parseSizeSegment(); err != nil {
					return err
				}
			case MarkerCOD:
				if err := p.parseCodingStyleSegment(); err != nil {
					return err
				}
			}
		}

		if nextPos < 0 || nextPos >= limit || terminate {
			p.log.Debug("exiting segment parse loop")
			break
		}
		p.log.Debug("seeking to next segment", slog.Int64("offset", nextPos))
		if err := p.r.Seek(nextPos); err != nil {
			return err
		}
	}
	return nil
}

// parseSizeSegment reads the geometry fields of the SIZ segment.
func (p *metadataParser) parseSizeSegment() error {
	// Rsiz capability field.
	if err := p.r.Skip(2); err != nil {
		return err
	}
	// Height precedes width on the wire.
	height, err := p.r.ReadUint32()
	if err != nil {
		return err
	}
	width, err := p.r.ReadUint32()
	if err != nil {
		return err
	}
	// Image offsets, tile dimensions and tile offsets: six uint32 fields.
	if err := p.r.Skip(24); err != nil {
		return err
	}
	channels, err := p.r.ReadUint16()
	if err != nil {
		return err
	}
	code, err := p.r.ReadUint32()
	if err != nil {
		return err
	}
	pixelType := pixelTypeFromCode(code)
	p.md.CodestreamSizeX = &width
	p.md.CodestreamSizeY = &height
	p.md.CodestreamChannels = &channels
	p.md.CodestreamPixelType = &pixelType
	p.log.Debug("read size segment",
		slog.Uint64("width", uint64(width)),
		slog.Uint64("height", uint64(height)),
		slog.Uint64("channels", uint64(channels)),
		slog.String("pixelType", pixelType.String()))
	return nil
}

// parseCodingStyleSegment reads the resolution-level count from the COD
// segment.
func (p *metadataParser) parseCodingStyleSegment() error {
	// Coding style, progression order, quality layers and the
	// multiple-component-transform flag.
	if err := p.r.Skip(5); err != nil {
		return err
	}
	levels, err := p.r.ReadUint8()
	if err != nil {
		return err
	}
	p.md.ResolutionLevels = &levels
	p.log.Debug("read resolution levels", slog.Uint64("levels", uint64(levels)))
	return nil
}
