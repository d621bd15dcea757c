package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		address  NetAddress
		expected string
	}{
		{
			name:     "host and port set",
			address:  NetAddress{Host: "localhost", Port: 8080},
			expected: "localhost:8080",
		},
		{
			name:     "zero value yields empty string",
			address:  NetAddress{},
			expected: "",
		},
		{
			name:     "port only",
			address:  NetAddress{Port: 9090},
			expected: ":9090",
		},
		{
			name:     "ip host",
			address:  NetAddress{Host: "127.0.0.1", Port: 80},
			expected: "127.0.0.1:80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.address.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		expected NetAddress
	}{
		{
			name:     "localhost with port",
			input:    "localhost:8080",
			expected: NetAddress{Host: "localhost", Port: 8080},
		},
		{
			name:     "ip with port",
			input:    "127.0.0.1:9090",
			expected: NetAddress{Host: "127.0.0.1", Port: 9090},
		},
		{
			name:    "missing port",
			input:   "localhost",
			wantErr: true,
		},
		{
			name:    "non-numeric port",
			input:   "localhost:http",
			wantErr: true,
		},
		{
			name:    "negative port",
			input:   "localhost:-1",
			wantErr: true,
		},
		{
			name:    "bogus host",
			input:   "not-an-ip:8080",
			wantErr: true,
		},
		{
			name:    "too many separators",
			input:   "host:8080:extra",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var address NetAddress
			err := address.Set(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, address)
		})
	}
}

func TestNetAddress_SetAndString(t *testing.T) {
	var address NetAddress
	require.NoError(t, address.Set("localhost:8080"))

	assert.Equal(t, "localhost:8080", address.String())
}
