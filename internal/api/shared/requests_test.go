package shared

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{name: "json", body: `{"stat":"done"}`, want: `{"stat":"done"}`},
		{name: "empty body", body: "", wantErr: ErrEmptyBody},
		{name: "whitespace body", body: "  \n", wantErr: ErrEmptyBody},
		{name: "at limit", body: strings.Repeat("a", MaxBodyBytes), want: strings.Repeat("a", MaxBodyBytes)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPatch, "/bookings", strings.NewReader(tt.body))

			got, err := ReadBody(req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestReadBodyTooLarge(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodPost, "/services", strings.NewReader(strings.Repeat("a", MaxBodyBytes+10)))

	_, err := ReadBody(req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestReadBodyReadError(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodPost, "/services", failingReader{})

	_, err := ReadBody(req)

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	type tokenRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	assert.NoError(t, ValidateRequest(&tokenRequest{Email: "a@x.com"}))
	assert.Error(t, ValidateRequest(&tokenRequest{}))
	assert.Error(t, ValidateRequest(&tokenRequest{Email: "not-an-email"}))
}
