package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sozercan/tokenscope/apimodels"
	"github.com/sozercan/tokenscope/internal/analyzer"
)

const (
	EmptyInputNotice       = "The message payload is empty. Please provide a valid input"
	MissingParameterNotice = "Missing token_id query parameter."
	NotFoundNotice         = "Invalid token: no details found for the provided token_id."
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

// corsHeaders returns a fresh header map; every response carries these,
// error responses included, so browsers can read the failure reason.
func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
	}
}

// Preflight answers a CORS pre-flight request.
func Preflight() *apimodels.Response {
	return &apimodels.Response{
		StatusCode: http.StatusOK,
		Headers:    corsHeaders(),
	}
}

// Assemble maps an outcome to the gateway response. It only fails when the
// success payload cannot be encoded.
func Assemble(out analyzer.Outcome) (*apimodels.Response, error) {
	switch out.Kind {
	case analyzer.OutcomeSuccess:
		body, err := json.Marshal(out.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize response: %w", err)
		}
		resp := &apimodels.Response{
			StatusCode: http.StatusOK,
			Headers:    corsHeaders(),
			Body:       string(body),
		}
		resp.Headers["Content-Type"] = contentTypeJSON
		return resp, nil
	case analyzer.OutcomeEmptyInput:
		return text(http.StatusOK, EmptyInputNotice), nil
	case analyzer.OutcomeMissingParameter:
		return text(http.StatusBadRequest, MissingParameterNotice), nil
	case analyzer.OutcomeNotFound:
		return text(http.StatusNotFound, NotFoundNotice), nil
	case analyzer.OutcomeDataFetchFailed:
		return text(http.StatusInternalServerError, "failed to fetch token details: "+out.Reason), nil
	case analyzer.OutcomeAnalysisFailed:
		return text(http.StatusInternalServerError, "error analyzing token details: "+out.Reason), nil
	case analyzer.OutcomeSynthesisFailed:
		return text(http.StatusInternalServerError, "failed to synthesize speech: "+out.Reason), nil
	case analyzer.OutcomeCompletionFailed:
		return text(http.StatusInternalServerError, "failed to generate response: "+out.Reason), nil
	default:
		return text(http.StatusInternalServerError, fmt.Sprintf("unhandled outcome %s", out.Kind)), nil
	}
}

// Error builds a plain-text error response that still carries the CORS
// headers, for failures outside the handlers such as a broken transport.
func Error(status int, msg string) *apimodels.Response {
	return text(status, msg)
}

func text(status int, body string) *apimodels.Response {
	resp := &apimodels.Response{
		StatusCode: status,
		Headers:    corsHeaders(),
		Body:       body,
	}
	resp.Headers["Content-Type"] = contentTypeText
	return resp
}
