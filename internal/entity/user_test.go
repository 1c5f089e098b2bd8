package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		wantErr bool
	}{
		{name: "valid", payload: Payload{Name: "A", Email: "a@x.com"}},
		{name: "missing name", payload: Payload{Email: "a@x.com"}, wantErr: true},
		{name: "blank name", payload: Payload{Name: "  ", Email: "a@x.com"}, wantErr: true},
		{name: "missing email", payload: Payload{Name: "A"}, wantErr: true},
		{name: "malformed email", payload: Payload{Name: "A", Email: "not-an-email"}, wantErr: true},
		{name: "display name form", payload: Payload{Name: "A", Email: "A <a@x.com>"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPayload)
				return
			}
			assert.NoError(t, err)
		})
	}
}
