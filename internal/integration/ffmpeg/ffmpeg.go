package ffmpeg

import "time"

const (
	name = "ffmpeg"
	// Long recordings on slow disks take a while to decode.
	timeout = 60 * time.Second
)
