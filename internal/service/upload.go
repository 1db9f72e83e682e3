package service

import (
	"bytes"
	"fmt"

	"TradeGate/internal/conf"
	"TradeGate/pkg/upload"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// formatMIME maps a detected format to the MIME type used for scrubbing.
var formatMIME = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"pdf":  "application/pdf",
}

func newFileTooLargeError(size, max int64) error {
	return kerrors.New(413, "FILE_TOO_LARGE",
		fmt.Sprintf("file size %d exceeds the %d byte limit", size, max))
}

func newInvalidSignatureError() error {
	return kerrors.New(400, "INVALID_SIGNATURE",
		"file content does not match any accepted format")
}

func newUnsupportedTypeError(format string) error {
	return kerrors.New(400, "UNSUPPORTED_TYPE",
		fmt.Sprintf("format %s is not accepted for this upload", format))
}

func newCorruptImageError() error {
	return kerrors.New(422, "CORRUPT_IMAGE",
		"image could not be decoded and re-encoded")
}

// UploadResult describes an accepted upload after scrubbing.
type UploadResult struct {
	Accepted bool   `json:"accepted"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	// Scrubbed is true when the stored bytes were re-encoded rather than
	// taken verbatim from the request.
	Scrubbed bool `json:"scrubbed"`

	// Content is the sanitized payload to persist. Not serialized.
	Content []byte `json:"-"`
}

// UploadService runs user uploads through the security pipeline: a size
// cap, magic-number verification against the declared use, and pixel-level
// scrubbing for raster images.
type UploadService struct {
	maxBytes int64
	logger   *log.Helper
}

// NewUploadService creates a new UploadService instance.
func NewUploadService(c *conf.Upload, logger log.Logger) *UploadService {
	return &UploadService{
		maxBytes: c.MaxBytes,
		logger:   log.NewHelper(logger),
	}
}

// ProcessAvatar accepts avatar uploads. Avatars must be raster images
// (jpeg or png) and are always scrubbed before acceptance.
func (s *UploadService) ProcessAvatar(filename string, data []byte) (*UploadResult, error) {
	return s.process(filename, data, map[string]bool{"jpeg": true, "png": true})
}

// ProcessDocument accepts document uploads: jpeg, png or pdf. PDFs pass
// the signature gate but are stored byte-for-byte; images are scrubbed.
func (s *UploadService) ProcessDocument(filename string, data []byte) (*UploadResult, error) {
	return s.process(filename, data, map[string]bool{"jpeg": true, "png": true, "pdf": true})
}

func (s *UploadService) process(filename string, data []byte, allowed map[string]bool) (*UploadResult, error) {
	size := int64(len(data))
	if s.maxBytes > 0 && size > s.maxBytes {
		s.logger.Warnw("msg", "upload rejected: too large", "filename", filename, "size", size)
		return nil, newFileTooLargeError(size, s.maxBytes)
	}

	// The file extension and declared Content-Type are untrusted; only the
	// leading bytes decide the format.
	format, ok := upload.DetectFormat(bytes.NewReader(data))
	if !ok {
		s.logger.Warnw("msg", "upload rejected: unknown signature", "filename", filename)
		return nil, newInvalidSignatureError()
	}

	if !allowed[format] {
		s.logger.Warnw("msg", "upload rejected: format not allowed", "filename", filename, "format", format)
		return nil, newUnsupportedTypeError(format)
	}

	content := data
	scrubbed := false
	if mime := formatMIME[format]; mime != "application/pdf" {
		content = upload.ScrubImage(data, mime)
		if content == nil {
			s.logger.Warnw("msg", "upload rejected: scrub failed", "filename", filename, "format", format)
			return nil, newCorruptImageError()
		}
		scrubbed = true
	}

	s.logger.Infow("msg", "upload accepted",
		"filename", filename,
		"format", format,
		"size", size,
		"scrubbed", scrubbed)

	return &UploadResult{
		Accepted: true,
		Format:   format,
		Size:     int64(len(content)),
		Scrubbed: scrubbed,
		Content:  content,
	}, nil
}
