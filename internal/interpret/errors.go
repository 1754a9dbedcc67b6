package interpret

import "errors"

var (
	// ErrEmptyText is returned for blank input.
	ErrEmptyText = errors.New("text is empty")

	// ErrTextTooLong is returned when input exceeds the configured limit.
	ErrTextTooLong = errors.New("text is too long")

	// ErrTranslation wraps failures of the upstream translation call.
	ErrTranslation = errors.New("translation failed")

	// ErrInvalidConfig is returned when a translator cannot be built.
	ErrInvalidConfig = errors.New("invalid translator configuration")
)
