package server_test

import (
	"testing"

	"returns-bridge/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Origins(t *testing.T) {
	tests := []struct {
		name    string
		origins string
		want    string
	}{
		{"Wildcard", "*", "*"},
		{"Empty", "", "*"},
		{"Only separators", " , ,", "*"},
		{"Trimmed list", " https://app.base44.com , http://localhost:5173", "https://app.base44.com,http://localhost:5173"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{AllowOrigins: tt.origins}
			assert.Equal(t, tt.want, c.Origins())
		})
	}
}
