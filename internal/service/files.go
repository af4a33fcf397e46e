package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"msdsapi/internal/logger"
	"msdsapi/internal/repository"
	"msdsapi/internal/storage"
)

const (
	pdfPrefix      = "pdfs/"
	pdfContentType = "application/pdf"

	defaultSignedURLExpiry = 300 * time.Second
	defaultBlobTimeout     = 30 * time.Second
)

// FileManagerConfig tunes blob access.
type FileManagerConfig struct {
	SignedURLExpiry time.Duration
	Timeout         time.Duration
}

// FileStream is the result of StreamPrimaryFile. Exactly one of Body and RedirectURL is set;
// the caller must close Body.
type FileStream struct {
	Body        io.ReadCloser
	Filename    string
	ContentType string
	Size        int64
	RedirectURL string
}

// FileManager keeps a document's file pointer and the blob store in step. The two stores are
// not updated atomically; partial failures are logged as transient inconsistencies.
type FileManager struct {
	docs   repository.DocumentRepository
	atts   repository.AttachmentRepository
	store  storage.Storage
	log    *logger.Logger
	tracer trace.Tracer
	expiry time.Duration
	// timeout bounds each blob call.
	timeout time.Duration
	now     func() time.Time
}

// NewFileManager builds a FileManager. Zero config values fall back to 300s expiry and 30s timeout.
func NewFileManager(docs repository.DocumentRepository, atts repository.AttachmentRepository, store storage.Storage, log *logger.Logger, cfg FileManagerConfig) *FileManager {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.SignedURLExpiry <= 0 {
		cfg.SignedURLExpiry = defaultSignedURLExpiry
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultBlobTimeout
	}
	return &FileManager{
		docs:    docs,
		atts:    atts,
		store:   store,
		log:     log.With("component", "files"),
		tracer:  otel.Tracer("msdsapi/service"),
		expiry:  cfg.SignedURLExpiry,
		timeout: cfg.Timeout,
		now:     time.Now,
	}
}

// UploadPrimaryFile stores a PDF and points the document at it. Keys are timestamped, so
// retrying the same upload creates a new object.
func (f *FileManager) UploadPrimaryFile(ctx context.Context, documentID string, r io.Reader, size int64, filename string) (string, error) {
	if _, err := f.docs.FindByID(ctx, documentID); err != nil {
		return "", translate(err, "document "+documentID)
	}
	if r == nil {
		return "", validationError("file is required")
	}
	base := cleanFilename(filename)
	if base == "" {
		return "", validationError("filename is required")
	}
	if !strings.EqualFold(path.Ext(base), ".pdf") {
		return "", validationError("only .pdf files are accepted")
	}

	key := fmt.Sprintf("%s%d_%s", pdfPrefix, f.now().UnixMilli(), base)
	if err := f.put(ctx, key, r, size); err != nil {
		return "", err
	}

	if err := f.docs.SetFilePath(ctx, documentID, &key); err != nil {
		if delErr := f.deleteBlob(ctx, key); delErr != nil {
			f.logOrphan(documentID, key, "rollback after failed pointer update", delErr)
		}
		return "", fmt.Errorf("save file path: %w", translate(err, "document "+documentID))
	}
	return key, nil
}

// DeletePrimaryFile removes the blob and clears the pointer. A failed blob delete is
// logged and does not stop the pointer from being cleared.
func (f *FileManager) DeletePrimaryFile(ctx context.Context, documentID string) error {
	doc, err := f.docs.FindByID(ctx, documentID)
	if err != nil {
		return translate(err, "document "+documentID)
	}
	if !doc.HasFile() {
		return fmt.Errorf("%w: document %s has no file", ErrNotFound, documentID)
	}

	f.RemoveBlob(ctx, documentID, *doc.FilePath)

	if err := f.docs.SetFilePath(ctx, documentID, nil); err != nil {
		return fmt.Errorf("clear file path: %w", translate(err, "document "+documentID))
	}
	return nil
}

// RemoveBlob deletes key best effort. Failures are logged, never returned.
func (f *FileManager) RemoveBlob(ctx context.Context, documentID, key string) {
	if err := f.deleteBlob(ctx, key); err != nil {
		f.logOrphan(documentID, key, "blob delete failed", err)
	}
}

// IssueSignedDownloadURL returns a presigned GET for the document's PDF. With forceDownload
// the URL also carries a signed response-content-disposition so browsers save the file.
func (f *FileManager) IssueSignedDownloadURL(ctx context.Context, documentID string, forceDownload bool) (string, error) {
	doc, err := f.docs.FindByID(ctx, documentID)
	if err != nil {
		return "", translate(err, "document "+documentID)
	}
	if !doc.HasFile() {
		return "", fmt.Errorf("%w: document %s has no file", ErrNotFound, documentID)
	}
	var params url.Values
	if forceDownload {
		params = url.Values{}
		params.Set("response-content-disposition", ContentDisposition(DownloadFilename(doc.Title)))
	}
	return f.presign(ctx, *doc.FilePath, params)
}

// StreamPrimaryFile opens the document's PDF for streaming. If the blob cannot be read the
// result carries a signed download URL instead.
func (f *FileManager) StreamPrimaryFile(ctx context.Context, documentID string) (*FileStream, error) {
	doc, err := f.docs.FindByID(ctx, documentID)
	if err != nil {
		return nil, translate(err, "document "+documentID)
	}
	if !doc.HasFile() {
		return nil, fmt.Errorf("%w: document %s has no file", ErrNotFound, documentID)
	}
	key := *doc.FilePath
	filename := DownloadFilename(doc.Title)

	body, info, err := f.get(ctx, key)
	if err == nil {
		ct := info.ContentType
		if ct == "" {
			ct = pdfContentType
		}
		return &FileStream{Body: body, Filename: filename, ContentType: ct, Size: info.Size}, nil
	}

	f.log.Warn("blob stream failed, falling back to signed url", "document_id", documentID, "key", key, "error", err)
	params := url.Values{}
	params.Set("response-content-disposition", ContentDisposition(filename))
	u, perr := f.presign(ctx, key, params)
	if perr != nil {
		return nil, perr
	}
	return &FileStream{Filename: filename, RedirectURL: u}, nil
}

// IssueSignedAttachmentURL returns a presigned GET for an attachment linked to the document.
func (f *FileManager) IssueSignedAttachmentURL(ctx context.Context, documentID string, attachmentID int64) (string, error) {
	a, err := f.atts.FindLinked(ctx, documentID, attachmentID)
	if err != nil {
		return "", translate(err, fmt.Sprintf("attachment %d of document %s", attachmentID, documentID))
	}
	p := a.ResolvableFilePath()
	if p == nil {
		return "", fmt.Errorf("%w: attachment %d has no file", ErrNotFound, attachmentID)
	}
	return f.presign(ctx, *p, nil)
}

func (f *FileManager) put(ctx context.Context, key string, r io.Reader, size int64) error {
	ctx, span := f.startSpan(ctx, "blob.put", key)
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if size <= 0 {
		size = -1
	}
	_, err := f.store.Put(ctx, key, r, storage.PutObjectOptions{Size: size, ContentType: pdfContentType})
	if err != nil {
		recordError(span, err)
		return fmt.Errorf("%w: put %s: %v", ErrStorage, key, err)
	}
	return nil
}

// get detaches from the caller's cancellation because the body is streamed after the
// handler returns; the blob timeout keeps running until the body is closed.
func (f *FileManager) get(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	ctx, span := f.startSpan(ctx, "blob.get", key)
	defer span.End()
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)

	body, info, err := f.store.Get(ctx, key)
	if err != nil {
		cancel()
		recordError(span, err)
		return nil, storage.ObjectInfo{}, fmt.Errorf("%w: get %s: %v", ErrStorage, key, err)
	}
	return &cancelOnClose{ReadCloser: body, cancel: cancel}, info, nil
}

func (f *FileManager) deleteBlob(ctx context.Context, key string) error {
	ctx, span := f.startSpan(ctx, "blob.delete", key)
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if err := f.store.Delete(ctx, key); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (f *FileManager) presign(ctx context.Context, key string, params url.Values) (string, error) {
	ctx, span := f.startSpan(ctx, "blob.presign", key)
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	u, err := f.store.PresignGet(ctx, key, f.expiry, params)
	if err != nil {
		recordError(span, err)
		return "", fmt.Errorf("%w: presign %s: %v", ErrStorage, key, err)
	}
	if u == "" {
		return "", fmt.Errorf("%w: presign %s returned an empty url", ErrStorage, key)
	}
	return u, nil
}

func (f *FileManager) startSpan(ctx context.Context, name, key string) (context.Context, trace.Span) {
	return f.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("blob.key", key)))
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (f *FileManager) logOrphan(documentID, key, reason string, err error) {
	f.log.Warn(ErrTransientInconsistency.Error(),
		"event", eventTransientInconsistency,
		"document_id", documentID,
		"key", key,
		"reason", reason,
		"error", err,
	)
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}

// cleanFilename strips any client-side directory part.
func cleanFilename(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	if name == "" {
		return ""
	}
	base := path.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

// DownloadFilename is the name offered to clients saving a document's PDF.
func DownloadFilename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "document"
	}
	return title + "_MSDS.pdf"
}

// ContentDisposition renders an attachment disposition. Non-ASCII names get an RFC 5987
// filename* parameter next to an ASCII fallback.
func ContentDisposition(filename string) string {
	quoted := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(asciiFallback(filename))
	v := `attachment; filename="` + quoted + `"`
	if !isASCII(filename) {
		v += "; filename*=UTF-8''" + extValue(filename)
	}
	return v
}

// extValue percent-encodes every byte outside the RFC 5987 attr-char set.
func extValue(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func asciiFallback(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < utf8.RuneSelf && r >= 0x20 {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
