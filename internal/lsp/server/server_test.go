package server

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtly10/litweave"
	iLsp "github.com/jwtly10/litweave/internal/lsp"
	"github.com/jwtly10/litweave/internal/transformer"
)

func TestServerOptions(t *testing.T) {
	tempShadowRoot := filepath.Join(t.TempDir(), "test-shadow-root")

	tests := []struct {
		name        string
		opts        Options
		expectError bool
	}{
		{
			name: "valid options",
			opts: Options{
				DocService: iLsp.DocumentServiceOptions{
					ShadowRoot: tempShadowRoot,
				},
			},
			expectError: false,
		},
		{
			name:        "empty options - should use defaults",
			opts:        Options{},
			expectError: false,
		},
		{
			name: "bad conversion options",
			opts: Options{
				DocService: iLsp.DocumentServiceOptions{
					ShadowRoot: tempShadowRoot,
					Transform: transformer.TransformOptions{
						Convert: litweave.Options{Doc: "(["},
					},
				},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			require.NoError(t, err)

			server, err := NewServer(tt.opts)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, server)

			// are docservice options being set properly
			if tt.opts.DocService.ShadowRoot != "" {
				assert.Equal(t, tt.opts.DocService.ShadowRoot, server.docService.ShadowRoot())
			} else {
				assert.NotEmpty(t, server.docService.ShadowRoot())
			}
		})
	}
}
