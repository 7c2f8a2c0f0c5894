// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig(t *testing.T) {
	testCases := map[string]struct {
		env            map[string]string
		expectedConfig *Config
		expectedError  string
	}{
		"defaults": {
			expectedConfig: &Config{
				DisableStartupMessage: true,
				HTTPHost:              "0.0.0.0",
				HTTPPort:              "3000",
			},
		},
		"custom host and port": {
			env: map[string]string{
				"HTTP_HOST": "127.0.0.1",
				"HTTP_PORT": "8080",
			},
			expectedConfig: &Config{
				DisableStartupMessage: true,
				HTTPHost:              "127.0.0.1",
				HTTPPort:              "8080",
			},
		},
		"port is not a number": {
			env:           map[string]string{"HTTP_PORT": "web"},
			expectedError: "environment variables not valid: HTTP_PORT is not a valid number, HTTP_PORT is out of valid range (1-65535)",
		},
		"port out of range": {
			env:           map[string]string{"HTTP_PORT": "70000"},
			expectedError: "environment variables not valid: HTTP_PORT is out of valid range (1-65535)",
		},
		"port zero": {
			env:           map[string]string{"HTTP_PORT": "0"},
			expectedError: "environment variables not valid: HTTP_PORT is out of valid range (1-65535)",
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			for key, value := range test.env {
				t.Setenv(key, value)
			}

			cfg, err := LoadServerConfig()
			if test.expectedError != "" {
				assert.ErrorIs(t, err, ErrEnvVariablesNotValid)
				assert.EqualError(t, err, test.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expectedConfig, cfg)
		})
	}
}
