package voice

// Capabilities reports which speech features the platform offers.
type Capabilities struct {
	RecognitionAvailable bool `json:"recognition_available"`
	SynthesisAvailable   bool `json:"synthesis_available"`
}

// DetectCapabilities checks the recognizer and speaker. A nil component
// counts as unavailable.
func DetectCapabilities(rec Recognizer, spk Speaker) Capabilities {
	return Capabilities{
		RecognitionAvailable: rec != nil && rec.Available(),
		SynthesisAvailable:   spk != nil && spk.Available(),
	}
}

// Supported is true when both directions of speech work.
func (c Capabilities) Supported() bool {
	return c.RecognitionAvailable && c.SynthesisAvailable
}
