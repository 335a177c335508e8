package apimodels

// Response mirrors the API Gateway proxy response shape.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

type AnalysisResponse struct {
	// The generated trading analysis
	Text string `json:"text"`

	// Spoken version of Text; set together with AudioID
	AudioBase64 string `json:"audio_base64,omitempty"`

	AudioID string `json:"audio_id,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
