package service

import (
	"context"
	"io"
)

type FileUploadService interface {
	// UploadFile stores the file under the given folder and returns the public
	// path it is reachable at.
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}
