// Package drive stores invoice PDFs in a Google Drive folder.
package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"tripbill/internal/gcp"
	"tripbill/internal/logger"
	"tripbill/pkg/services"
)

const (
	pdfMimeType     = "application/pdf"
	DefaultPageSize = 50
	maxPageSize     = 1000

	fileFields = "id, name, createdTime, modifiedTime, webViewLink, webContentLink, size"
)

var ErrMissingFolder = errors.New("drive folder id is empty")

// Service implements services.DocumentStore on a single Drive folder.
type Service struct {
	files    *drive.FilesService
	folderID string
	log      zerolog.Logger
}

var _ services.DocumentStore = (*Service)(nil)

// NewDriveService creates a Drive-backed document store for folderID.
func NewDriveService(ctx context.Context, folderID string) (*Service, error) {
	const op = "NewDriveService"

	if folderID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingFolder)
	}

	client, err := gcp.HTTPClient(ctx, drive.DriveFileScope, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create drive service: %w", op, err)
	}

	return NewDriveServiceWithClient(driveService, folderID), nil
}

// NewDriveServiceWithClient uses an existing Drive client.
func NewDriveServiceWithClient(driveService *drive.Service, folderID string) *Service {
	return &Service{
		files:    driveService.Files,
		folderID: folderID,
		log:      logger.WithComponent("drive"),
	}
}

// Upload creates name in the folder with the PDF as its content.
func (s *Service) Upload(ctx context.Context, name string, pdf []byte) (*services.StoredDocument, error) {
	const op = "Upload"

	meta := &drive.File{
		Name:     name,
		MimeType: pdfMimeType,
		Parents:  []string{s.folderID},
	}

	f, err := s.files.Create(meta).
		Media(bytes.NewReader(pdf), googleapi.ContentType(pdfMimeType)).
		Fields(fileFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to upload %s: %w", op, name, err)
	}

	s.log.Info().
		Str("file_id", f.Id).
		Str("name", f.Name).
		Int("size_bytes", len(pdf)).
		Msg("Uploaded invoice to Drive")

	return toDocument(f), nil
}

// List returns one page of PDFs in the folder, most recently modified first.
func (s *Service) List(ctx context.Context, q services.ListQuery) (*services.ListResult, error) {
	const op = "List"

	call := s.files.List().
		Q(Query(s.folderID, q.Search)).
		PageSize(PageSize(q.PageSize)).
		OrderBy("modifiedTime desc").
		Fields(googleapi.Field("nextPageToken, files(" + fileFields + ")")).
		Context(ctx)
	if q.PageToken != "" {
		call = call.PageToken(q.PageToken)
	}

	list, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list folder %s: %w", op, s.folderID, err)
	}

	result := &services.ListResult{NextPageToken: list.NextPageToken}
	for _, f := range list.Files {
		result.Documents = append(result.Documents, *toDocument(f))
	}

	s.log.Debug().
		Str("search", q.Search).
		Int("count", len(result.Documents)).
		Bool("has_more", result.NextPageToken != "").
		Msg("Listed invoices")

	return result, nil
}

// Get returns a file's metadata.
func (s *Service) Get(ctx context.Context, id string) (*services.StoredDocument, error) {
	const op = "Get"

	f, err := s.files.Get(id).Fields(fileFields).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get file %s: %w", op, id, err)
	}
	return toDocument(f), nil
}

// Delete permanently removes a file, bypassing the trash.
func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "Delete"

	if err := s.files.Delete(id).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%s: failed to delete file %s: %w", op, id, err)
	}

	s.log.Info().Str("file_id", id).Msg("Deleted invoice from Drive")
	return nil
}

// Query builds the Drive search expression for PDFs in a folder,
// optionally narrowed to names containing search.
func Query(folderID, search string) string {
	q := fmt.Sprintf("'%s' in parents and mimeType = '%s' and trashed = false", escape(folderID), pdfMimeType)
	if search = strings.TrimSpace(search); search != "" {
		q += fmt.Sprintf(" and name contains '%s'", escape(search))
	}
	return q
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}

// PageSize clamps a requested page size to what Drive accepts.
func PageSize(n int64) int64 {
	switch {
	case n <= 0:
		return DefaultPageSize
	case n > maxPageSize:
		return maxPageSize
	default:
		return n
	}
}

func toDocument(f *drive.File) *services.StoredDocument {
	return &services.StoredDocument{
		ID:          f.Id,
		Name:        f.Name,
		Size:        f.Size,
		CreatedAt:   parseTime(f.CreatedTime),
		ModifiedAt:  parseTime(f.ModifiedTime),
		ViewLink:    f.WebViewLink,
		DownloadURL: f.WebContentLink,
	}
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatFileSize renders a byte count with binary units, e.g. 1536 -> "1.5 KiB".
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(n))
}
