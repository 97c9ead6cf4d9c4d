// Package tika provides Apache Tika integration for text extraction.
//
// It extracts text content from various document formats including
// PDF, Word, and plain text files, returning clean plain text for the
// matching pipeline.
package tika

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fairyhunter13/ats-matcher/pkg/textx"
)

// Client is a minimal Apache Tika HTTP client implementing domain.TextExtractor.
// It performs PUT /tika with Accept: text/plain to retrieve extracted text.
// See: https://tika.apache.org/server/ for API details.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a Tika client with a default timeout.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ExtractPath uploads the file at path to the Tika server and returns plain text.
func (c *Client) ExtractPath(ctx context.Context, fileName, path string) (string, error) {
	// Mitigate file inclusion via variable by constraining allowed paths.
	// Uploaded files are written to the system temp dir; tests may opt out
	// via TIKA_ALLOW_ABSPATHS.
	var openPath string
	if os.Getenv("TIKA_ALLOW_ABSPATHS") != "1" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", err
		}
		abs = filepath.Clean(abs)
		tmp := filepath.Clean(os.TempDir())
		wd, _ := os.Getwd()
		wd = filepath.Clean(wd)
		var base string
		var rel string
		if strings.HasPrefix(abs, tmp+string(os.PathSeparator)) || abs == tmp {
			base = tmp
			if r, err := filepath.Rel(base, abs); err == nil {
				rel = r
			} else {
				return "", err
			}
		} else if strings.HasPrefix(abs, wd+string(os.PathSeparator)) || abs == wd {
			base = wd
			if r, err := filepath.Rel(base, abs); err == nil {
				rel = r
			} else {
				return "", err
			}
		} else {
			return "", fmt.Errorf("disallowed path: %s", abs)
		}
		openPath = filepath.Join(base, rel)
	} else {
		if abs, err2 := filepath.Abs(path); err2 == nil {
			openPath = filepath.Clean(abs)
		} else {
			openPath = path
		}
	}
	bfile, err := os.ReadFile(openPath)
	if err != nil {
		return "", err
	}

	u := c.baseURL
	if u == "" {
		u = "http://localhost:9998"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u+"/tika", bytes.NewReader(bfile))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")
	// Content-Type best-effort from extension
	if ct := contentTypeFromExt(filepath.Ext(fileName)); ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("tika status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	// Sanitize control characters and then collapse all whitespace to single spaces
	sanitized := textx.SanitizeText(string(b))
	fields := strings.Fields(sanitized)
	return strings.Join(fields, " "), nil
}

func contentTypeFromExt(ext string) string {
	ext = strings.ToLower(ext)
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		if ext != "" {
			return mime.TypeByExtension(ext)
		}
	}
	return ""
}
