package api

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/Veraticus/installmart/internal/model"
)

// Outcome converts the result of a mutating call into the uniform
// success/failure shape. On failure the returned error is always a
// *model.OperationError carrying the server's message when one was sent,
// else fallback.
//
// A 2xx response whose body says "success": false is a failure too.
func Outcome(resp *Response, err error, fallback string) (*model.SubmitResult, error) {
	if err != nil {
		msg := ""
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			msg = statusErr.Message
		}
		if msg == "" {
			msg = fallback
		}
		return nil, &model.OperationError{Success: false, Message: msg, Err: err}
	}

	result := &model.SubmitResult{Success: true}
	if resp == nil || len(strings.TrimSpace(string(resp.Body))) == 0 {
		return result, nil
	}

	var envelope map[string]any
	if jsonErr := json.Unmarshal(resp.Body, &envelope); jsonErr != nil {
		// Some endpoints answer with plain text.
		result.Message = strings.TrimSpace(string(resp.Body))
		return result, nil
	}

	result.Message = ServerMessage(resp.Body)
	result.Data = envelope["data"]

	if ok, present := envelope["success"].(bool); present && !ok {
		msg := result.Message
		if msg == "" {
			msg = fallback
		}
		return nil, &model.OperationError{Success: false, Message: msg, Err: errors.New(msg)}
	}
	return result, nil
}
