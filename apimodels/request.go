package apimodels

import "strings"

// Request is the inbound event. It accepts both the simple-chat payload
// ({"message": ...}) and API Gateway style events carrying httpMethod and
// queryStringParameters.
type Request struct {
	// Free-text message for the chat handler
	Message string `json:"message,omitempty"`

	// HTTP method as reported by the gateway, used for CORS pre-flight
	HTTPMethod string `json:"httpMethod,omitempty"`

	// Query parameters, e.g. token_id
	QueryStringParameters map[string]string `json:"queryStringParameters,omitempty"`
}

// IsPreflight reports whether the request is a CORS pre-flight.
func (r *Request) IsPreflight() bool {
	return strings.EqualFold(r.HTTPMethod, "OPTIONS")
}

// Param returns a query parameter and whether it was supplied at all.
func (r *Request) Param(name string) (string, bool) {
	if r.QueryStringParameters == nil {
		return "", false
	}
	v, ok := r.QueryStringParameters[name]
	return v, ok
}
