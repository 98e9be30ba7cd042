package fat12

import "errors"

// These errors may occur while reading a volume.
// Returned errors carry a checkpoint, compare them with errors.Is.
var (
	ErrNotFound             = errors.New("no directory entry with that name")
	ErrBufferTooSmall       = errors.New("destination buffer is smaller than the file")
	ErrBufferOverflow       = errors.New("chunk does not fit into the destination buffer")
	ErrUnexpectedEndOfChain = errors.New("cluster chain ended before the requested position")
	ErrInvalidCluster       = errors.New("cluster number does not address the data region")
	ErrOutOfBounds          = errors.New("read outside of the volume image")

	ErrReadFile = errors.New("could not read file completely")
	ErrSeekFile = errors.New("could not seek inside of the file")
	ErrReadDir  = errors.New("could not read the directory")
	ErrReadOnly = errors.New("volume is read-only")

	ErrLoadImage = errors.New("could not load the volume image")
)
