package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/constants"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, expected defaults for missing file", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected default %q", cfg.Address, constants.DefaultServerAddress)
	}
	if cfg.UploadSizeBytes() != constants.DefaultMaxUploadSizeBytes {
		t.Errorf("UploadSizeBytes = %d, expected default %d", cfg.UploadSizeBytes(), constants.DefaultMaxUploadSizeBytes)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name          string
		contents      string
		expectedAddr  string
		expectedBytes int64
		wantErr       bool
	}{
		{
			name:          "Plain byte count",
			contents:      "address: \":9090\"\nmaxUploadSize: \"1024\"\n",
			expectedAddr:  ":9090",
			expectedBytes: 1024,
		},
		{
			name:          "Kilobyte suffix",
			contents:      "maxUploadSize: 512KB\n",
			expectedAddr:  constants.DefaultServerAddress,
			expectedBytes: 512 * 1024,
		},
		{
			name:          "Megabyte suffix",
			contents:      "maxUploadSize: 2MB\n",
			expectedAddr:  constants.DefaultServerAddress,
			expectedBytes: 2 * 1024 * 1024,
		},
		{
			name:     "Invalid size",
			contents: "maxUploadSize: lots\n",
			wantErr:  true,
		},
		{
			name:     "Negative size",
			contents: "maxUploadSize: \"-1\"\n",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "server-config.yaml")
			if err := os.WriteFile(path, []byte(tt.contents), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			cfg, err := LoadConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("LoadConfig() succeeded, expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if cfg.Address != tt.expectedAddr {
				t.Errorf("Address = %q, expected %q", cfg.Address, tt.expectedAddr)
			}
			if cfg.UploadSizeBytes() != tt.expectedBytes {
				t.Errorf("UploadSizeBytes = %d, expected %d", cfg.UploadSizeBytes(), tt.expectedBytes)
			}
		})
	}
}
