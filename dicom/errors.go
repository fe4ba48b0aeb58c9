package dicom

import "errors"

var (
	// ErrNoGeometry is returned when a parsed stream carried neither a header
	// box nor a SIZ segment, so no frame geometry can be derived
	ErrNoGeometry = errors.New("no image geometry in stream")

	// ErrGeometryOutOfRange is returned when an image dimension does not fit
	// the 16-bit DICOM frame description
	ErrGeometryOutOfRange = errors.New("image geometry exceeds 16-bit range")

	// ErrNilPixelData is returned when the pixel data argument is nil
	ErrNilPixelData = errors.New("pixel data is nil")

	// ErrNotEncapsulated is returned when the pixel data holds raw samples
	// rather than encapsulated codestream frames
	ErrNotEncapsulated = errors.New("pixel data is not encapsulated")
)
