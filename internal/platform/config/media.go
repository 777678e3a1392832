package config

import (
	"fmt"
	"os"
)

// MediaConfig selects the object-storage backend for media assets.
//
// - backend "s3": presigned S3 URLs, MEDIA_S3_BUCKET required
// - backend "memory": in-process fake, for local runs without AWS
type MediaConfig struct {
	Backend  string
	S3Bucket string
}

func LoadMediaConfigFromEnv() (MediaConfig, error) {
	backend := os.Getenv("MEDIA_BACKEND")
	if backend == "" {
		backend = "memory"
	}

	switch backend {
	case "memory":
		return MediaConfig{Backend: "memory"}, nil
	case "s3":
		bucket := os.Getenv("MEDIA_S3_BUCKET")
		if bucket == "" {
			return MediaConfig{}, fmt.Errorf("missing required env var MEDIA_S3_BUCKET")
		}
		return MediaConfig{Backend: "s3", S3Bucket: bucket}, nil
	default:
		return MediaConfig{}, fmt.Errorf("MEDIA_BACKEND must be \"s3\" or \"memory\", got %q", backend)
	}
}
