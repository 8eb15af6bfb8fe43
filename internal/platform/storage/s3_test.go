package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"contacts_backend/internal/platform/config"
)

func TestPublicBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Storage
		want string
	}{
		{
			name: "aws virtual-hosted style",
			cfg:  config.Storage{Bucket: "avatars", Region: "eu-central-1"},
			want: "https://avatars.s3.eu-central-1.amazonaws.com",
		},
		{
			name: "custom endpoint",
			cfg:  config.Storage{Bucket: "avatars", Endpoint: "http://localhost:9000"},
			want: "http://localhost:9000/avatars",
		},
		{
			name: "custom endpoint with trailing slash",
			cfg:  config.Storage{Bucket: "avatars", Endpoint: "http://localhost:9000/"},
			want: "http://localhost:9000/avatars",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicBaseURL(tt.cfg))
		})
	}
}
