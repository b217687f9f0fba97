package extract

import "errors"

var (
	// ErrUnsupportedType is returned for file extensions outside .pdf, .docx,
	// .txt, .jpg, .jpeg and .png. No extraction is attempted.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrNoReadableText is returned when every applicable strategy ran and
	// none produced text. It never carries a partial result.
	ErrNoReadableText = errors.New("no readable text found")

	// ErrInvalidDocument is returned when a DOCX archive or image cannot be decoded.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyFile is returned for zero-byte uploads.
	ErrEmptyFile = errors.New("empty file")
)
