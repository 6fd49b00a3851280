package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/model"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name        string
		resp        *Response
		err         error
		wantMessage string
		wantData    any
		wantErr     bool
	}{
		{
			name:        "success with data",
			resp:        &Response{StatusCode: 201, Body: []byte(`{"success":true,"message":"Applied","data":{"_id":"a1"}}`)},
			wantMessage: "Applied",
			wantData:    map[string]any{"_id": "a1"},
		},
		{
			name: "empty body",
			resp: &Response{StatusCode: 204},
		},
		{
			name:        "plain text body",
			resp:        &Response{StatusCode: 200, Body: []byte("OK")},
			wantMessage: "OK",
		},
		{
			name:        "explicit failure in 200",
			resp:        &Response{StatusCode: 200, Body: []byte(`{"success":false,"message":"Already applied"}`)},
			wantMessage: "Already applied",
			wantErr:     true,
		},
		{
			name:        "explicit failure without message",
			resp:        &Response{StatusCode: 200, Body: []byte(`{"success":false}`)},
			wantMessage: "fallback",
			wantErr:     true,
		},
		{
			name:        "status error with server message",
			err:         &StatusError{StatusCode: 400, Message: "CNIC is invalid"},
			wantMessage: "CNIC is invalid",
			wantErr:     true,
		},
		{
			name:        "network error",
			err:         errors.New("dial tcp: connection refused"),
			wantMessage: "fallback",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Outcome(tt.resp, tt.err, "fallback")
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, result)
				var opErr *model.OperationError
				require.ErrorAs(t, err, &opErr)
				assert.False(t, opErr.Success)
				assert.Equal(t, tt.wantMessage, opErr.Message)
				return
			}
			require.NoError(t, err)
			assert.True(t, result.Success)
			assert.Equal(t, tt.wantMessage, result.Message)
			assert.Equal(t, tt.wantData, result.Data)
		})
	}
}

func TestOutcome_KeepsUnauthorized(t *testing.T) {
	_, err := Outcome(nil, &StatusError{StatusCode: http.StatusUnauthorized}, "fallback")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}
