package groundtruth

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Artifact describes the application file the flows belong to. The zero
// value stands for an uncompiled run.
type Artifact struct {
	Path   string
	MD5    string
	SHA1   string
	SHA256 string
}

// HashFile reads a file once and returns its absolute path and hashes.
func HashFile(path string) (Artifact, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	m, s1, s256 := md5.New(), sha1.New(), sha256.New()
	if _, err := io.Copy(io.MultiWriter(m, s1, s256), f); err != nil {
		return Artifact{}, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return Artifact{
		Path:   filepath.ToSlash(abs),
		MD5:    hex.EncodeToString(m.Sum(nil)),
		SHA1:   hex.EncodeToString(s1.Sum(nil)),
		SHA256: hex.EncodeToString(s256.Sum(nil)),
	}, nil
}

func (a Artifact) element() App {
	return App{
		File: a.Path,
		Hashes: []Hash{
			{Type: "MD5", Value: a.MD5},
			{Type: "SHA-1", Value: a.SHA1},
			{Type: "SHA-256", Value: a.SHA256},
		},
	}
}
