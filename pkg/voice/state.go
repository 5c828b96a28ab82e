package voice

// RecognitionState is the state of the recognition controller.
type RecognitionState string

const (
	RecognitionIdle      RecognitionState = "idle"
	RecognitionListening RecognitionState = "listening"
	RecognitionFinalized RecognitionState = "finalized"
	RecognitionErrored   RecognitionState = "errored"
)

// PlaybackState is the state of the playback controller.
type PlaybackState string

const (
	PlaybackIdle     PlaybackState = "idle"
	PlaybackLoading  PlaybackState = "loading"
	PlaybackSpeaking PlaybackState = "speaking"
	PlaybackErrored  PlaybackState = "errored"
)

// Active reports whether audio is being prepared or played.
func (s PlaybackState) Active() bool {
	return s == PlaybackLoading || s == PlaybackSpeaking
}
