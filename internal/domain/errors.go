package domain

import "errors"

var (
	ErrDownloadFailed      = errors.New("document download failed")
	ErrDecodingFailed      = errors.New("document could not be decoded as PDF or image")
	ErrNoJSONFound         = errors.New("model output contains no JSON object")
	ErrMalformedJSON       = errors.New("model output contains malformed JSON")
	ErrUnsupportedScheme   = errors.New("unsupported document URL scheme")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
)
