package blob

import (
	"testing"

	appcfg "github.com/avoronkov/stridewell/internal/config"
)

func TestNewBlobStoreLocalMode(t *testing.T) {
	store, mode, err := NewBlobStore(appcfg.BlobConfig{Mode: appcfg.BlobModeLocal}, nil)
	if err != nil {
		t.Fatalf("NewBlobStore: %v", err)
	}
	if store != nil {
		t.Error("expected nil store in local mode")
	}
	if mode != appcfg.BlobModeLocal {
		t.Errorf("mode = %q, want local", mode)
	}
}

func TestNewBlobStoreAutoFallsBackWithoutS3(t *testing.T) {
	store, mode, err := NewBlobStore(appcfg.BlobConfig{Mode: appcfg.BlobModeAuto}, nil)
	if err != nil {
		t.Fatalf("NewBlobStore: %v", err)
	}
	if store != nil {
		t.Error("expected nil store when S3 is not configured")
	}
	if mode != appcfg.BlobModeLocal {
		t.Errorf("mode = %q, want local fallback", mode)
	}
}

func TestNewBlobStoreS3ModeRequiresConfig(t *testing.T) {
	_, _, err := NewBlobStore(appcfg.BlobConfig{Mode: appcfg.BlobModeS3}, nil)
	if err == nil {
		t.Fatal("expected error when BLOB_MODE=s3 and config is incomplete")
	}
}

func TestNewBlobStoreUnknownMode(t *testing.T) {
	_, _, err := NewBlobStore(appcfg.BlobConfig{Mode: "ftp"}, nil)
	if err == nil {
		t.Fatal("expected error for unsupported mode")
	}
}
