package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// MediaSourceID (MSI) identifies one outbound audio, video or screen-share stream.
type MediaSourceID uint32

// NoMediaSource is the dominant speaker value meaning "nobody is speaking".
const NoMediaSource MediaSourceID = math.MaxUint32

// SocketID identifies one of the fixed decoder channels of a call.
type SocketID int

var (
	ErrBadSourceID   = errors.New("bad media source id")
	ErrBadResolution = errors.New("unknown resolution")
)

func ParseMediaSourceID(s string) (MediaSourceID, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return NoMediaSource, fmt.Errorf("%w %q: %v", ErrBadSourceID, s, err)
	}
	return MediaSourceID(v), nil
}

func (m MediaSourceID) String() string {
	if m == NoMediaSource {
		return "none"
	}
	return strconv.FormatUint(uint64(m), 10)
}

type MediaType string

const (
	MediaAudio MediaType = "audio"
	MediaVideo MediaType = "video"
	MediaVBSS  MediaType = "vbss"
)

type Direction string

const (
	DirectionInactive    Direction = "inactive"
	DirectionSendOnly    Direction = "sendonly"
	DirectionReceiveOnly Direction = "recvonly"
	DirectionSendReceive Direction = "sendrecv"
)

// CanSend is true for sendonly and sendrecv.
func (d Direction) CanSend() bool {
	return d == DirectionSendOnly || d == DirectionSendReceive
}

// MediaStream is one stream of a participant as advertised by the roster.
type MediaStream struct {
	Type      MediaType `json:"type"`
	Direction Direction `json:"direction"`
	SourceID  string    `json:"source_id"`
}

type Resolution string

const (
	ResolutionHD1080p Resolution = "1080p"
	ResolutionHD720p  Resolution = "720p"
	ResolutionSD360p  Resolution = "360p"
	ResolutionSD180p  Resolution = "180p"
)

func ParseResolution(s string) (Resolution, error) {
	switch r := Resolution(s); r {
	case ResolutionHD1080p, ResolutionHD720p, ResolutionSD360p, ResolutionSD180p:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrBadResolution, s)
}

// Subscription asserts that Socket currently receives Source.
type Subscription struct {
	Source MediaSourceID `json:"msi"`
	Socket SocketID      `json:"socket"`
}
