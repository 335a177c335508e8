package speech

import "context"

// Audio is a synthesized clip, base64 encoded so it can travel in a JSON body.
type Audio struct {
	Base64 string
	ID     string
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*Audio, error)
}
