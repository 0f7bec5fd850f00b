package errors

import "fmt"

var (
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrMalformedPacket   = fmt.Errorf("malformed packet: missing delimiter")
	ErrDelimiterInText   = fmt.Errorf("message text must not contain the packet delimiter")
	ErrEmptyMessage      = fmt.Errorf("message text is empty")
	ErrPacketTooLarge    = fmt.Errorf("packet exceeds maximum size")
	ErrInvalidPacket     = fmt.Errorf("invalid packet")
	ErrPeerUnreachable   = fmt.Errorf("peer station unreachable")
	ErrPoolSaturated     = fmt.Errorf("task pool saturated")
	ErrPoolStopped       = fmt.Errorf("task pool stopped")
	ErrPlaybackAborted   = fmt.Errorf("playback aborted")
	ErrUnknownStation    = fmt.Errorf("unknown station")
	ErrCatalogueIndex    = fmt.Errorf("catalogue index out of range")
	ErrInvalidCharacter  = fmt.Errorf("replacement must be a single character")
	ErrEmptyDistressList = fmt.Errorf("no distress signals have been configured")
	ErrJournal           = fmt.Errorf("journal failure")
	ErrInvalidNoise      = fmt.Errorf("invalid noise profile")
	ErrInvalidTiming     = fmt.Errorf("invalid playback timing")
)
