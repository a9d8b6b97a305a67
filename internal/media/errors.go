package media

import "errors"

// ErrInputMalformed marks input that the media tool cannot read as a video
// with audio, or an audio artifact that is not a readable WAV container.
var ErrInputMalformed = errors.New("input malformed")
