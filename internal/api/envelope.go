package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is bumped when the envelope shape changes. The mobile
// client checks it before parsing, so renaming any envelope field is a
// breaking change.
const envelopeVersion = 1

// Envelope is the uniform wrapper for every API response body.
type Envelope struct {
	V       int    `json:"v" doc:"Envelope format version"`
	Success bool   `json:"success" doc:"Whether the request succeeded"`
	Data    any    `json:"data,omitempty" doc:"Response payload on success"`
	Error   string `json:"error,omitempty" doc:"Error message for simple failures"`
	Code    string `json:"code,omitempty" doc:"Machine-readable error code"`
	Message string `json:"message,omitempty" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// EnvelopeTransformer wraps every response body in the Envelope structure.
// Registered as a huma transformer so individual handlers return plain
// payloads and never see the wrapper.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, err := strconv.Atoi(status)
	if err != nil {
		code = 0
	}
	success := code < 400

	// Detailed errors keep their code/message/details shape so clients
	// can branch on the code without parsing the message.
	if apiErr, ok := v.(*APIError); ok {
		env := Envelope{
			V:       envelopeVersion,
			Success: false,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}
		if apiErr.Code == "" {
			env.Error = apiErr.Message
			env.Message = ""
		}
		return env, nil
	}

	if errResp, ok := v.(error); ok && !success {
		return Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   errResp.Error(),
		}, nil
	}

	return Envelope{
		V:       envelopeVersion,
		Success: success,
		Data:    v,
	}, nil
}
