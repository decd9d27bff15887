package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStorageClient stores uploads on the local filesystem under a public
// static path. Files are written to a staging directory first and renamed into
// place only once fully written, so a crash mid-write cannot leave a partial
// file at a referenced path.
type LocalStorageClient struct {
	baseDir    string
	publicPath string
}

func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, ".staging"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalStorageClient{
		baseDir:    baseDir,
		publicPath: "/uploads",
	}, nil
}

func (c *LocalStorageClient) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	folder = sanitizeFolder(folder)
	filename := fmt.Sprintf("%s-%s%s", uuid.New().String(), time.Now().Format("20060102150405"), extensionFor(fileType))

	stagingPath := filepath.Join(c.baseDir, ".staging", filename)
	out, err := os.Create(stagingPath)
	if err != nil {
		return "", fmt.Errorf("failed to create staging file: %w", err)
	}

	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(stagingPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(stagingPath)
		return "", fmt.Errorf("failed to flush file: %w", err)
	}

	targetDir := filepath.Join(c.baseDir, folder)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		os.Remove(stagingPath)
		return "", fmt.Errorf("failed to create folder %s: %w", folder, err)
	}
	if err := os.Rename(stagingPath, filepath.Join(targetDir, filename)); err != nil {
		os.Remove(stagingPath)
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	return path.Join(c.publicPath, folder, filename), nil
}

func (c *LocalStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	rel := strings.TrimPrefix(fileURL, c.publicPath)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("invalid file path: %s", fileURL)
	}

	err := os.Remove(filepath.Join(c.baseDir, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// BaseDir exposes the storage root so the server can mount it as a static
// route.
func (c *LocalStorageClient) BaseDir() string {
	return c.baseDir
}

func sanitizeFolder(folder string) string {
	folder = strings.Trim(folder, "/")
	parts := strings.Split(folder, "/")
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			continue
		}
		clean = append(clean, p)
	}
	if len(clean) == 0 {
		return "misc"
	}
	return strings.Join(clean, "/")
}

func extensionFor(fileType string) string {
	switch fileType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "image/heic", "image/heif":
		return ".heic"
	default:
		return ".bin"
	}
}
