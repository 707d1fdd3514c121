package edge

import "encoding/json"

// The gateway speaks a small JSON protocol over one websocket per
// synthesis request: the client sends speech.config followed by
// text.synthesize, then receives a sequence of audio.delta and boundary
// frames terminated by audio.done or error.

// messageType tags every protocol message.
type messageType string

const (
	// Client messages.
	typeSpeechConfig   messageType = "speech.config"
	typeTextSynthesize messageType = "text.synthesize"

	// Server messages.
	typeAudioDelta       messageType = "audio.delta"
	typeAudioDone        messageType = "audio.done"
	typeWordBoundary     messageType = "metadata.word_boundary"
	typeSentenceBoundary messageType = "metadata.sentence_boundary"
	typeError            messageType = "error"
)

// envelope is used to sniff the type before full decoding.
type envelope struct {
	Type messageType `json:"type"`
}

// speechConfig selects the voice and tone for the request.
type speechConfig struct {
	Type  messageType `json:"type"`
	Voice string      `json:"voice"`
	Rate  string      `json:"rate"`  // signed percent, e.g. "-20%"
	Pitch string      `json:"pitch"` // signed Hz, e.g. "+150Hz"
	// OutputFormat is fixed to an MP3 stream; the service emits
	// frame-aligned chunks that concatenate cleanly.
	OutputFormat string `json:"output_format"`
}

// textSynthesize submits the text and starts synthesis.
type textSynthesize struct {
	Type messageType `json:"type"`
	Text string      `json:"text"`
}

// audioDelta carries one base64-encoded chunk of encoded audio.
type audioDelta struct {
	Type  messageType `json:"type"`
	Audio string      `json:"audio"`
}

// errorMessage is a terminal service-side failure.
type errorMessage struct {
	Type    messageType `json:"type"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
}

const outputFormatMP3 = "audio-24khz-48kbitrate-mono-mp3"

func parseType(data []byte) (messageType, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", err
	}
	return env.Type, nil
}

func unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
