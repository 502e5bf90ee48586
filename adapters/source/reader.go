package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"carviz/internal"
	"carviz/internal/errors"
	"carviz/ports"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Open returns the source for a location: http(s) URLs are fetched
// remotely, anything else is read from the local file system. A nil logger
// uses the default.
func Open(location string, logger *internal.Logger) ports.SourcePort {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		src := NewHTTPSource(location, nil)
		src.logger = readerLogger(logger)
		return src
	}
	src := NewFileSource(location)
	src.logger = readerLogger(logger)
	return src
}

func readerLogger(logger *internal.Logger) *internal.Logger {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return logger.With("DataReader")
}

// readDocument reads at most limit bytes from r. A document that does not
// fit is rejected rather than truncated.
func readDocument(r io.Reader, name string, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.SourceUnavailable(name, err)
	}
	if int64(len(data)) > limit {
		return nil, errors.SourceUnavailable(name, fmt.Errorf("document exceeds %d bytes", limit))
	}
	return data, nil
}

// FileSource reads a dataset document from disk
type FileSource struct {
	filePath string
	format   Format
	limit    int64
	logger   *internal.Logger
}

// NewFileSource creates a file source, picking the format from the extension
func NewFileSource(filePath string) *FileSource {
	return &FileSource{
		filePath: filePath,
		format:   DetectFormat(filePath),
		limit:    maxDocumentBytes,
		logger:   readerLogger(nil),
	}
}

func (s *FileSource) Name() string { return s.filePath }

// Fetch reads and parses the file
func (s *FileSource) Fetch(ctx context.Context) (*ports.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.SourceUnavailable(s.filePath, err)
	}

	startTime := time.Now()
	f, err := os.Open(s.filePath)
	if err != nil {
		return nil, errors.SourceUnavailable(s.filePath, err)
	}
	defer f.Close()

	data, err := readDocument(f, s.filePath, s.limit)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("%s file read in %.2fms (%d bytes)",
		strings.ToUpper(string(s.format)), float64(time.Since(startTime).Nanoseconds())/1e6, len(data))

	return Decode(s.format, data)
}

// HTTPSource fetches a dataset document with a single GET
type HTTPSource struct {
	url    string
	format Format
	client *http.Client
	limit  int64
	logger *internal.Logger
}

// NewHTTPSource creates a remote source. A nil client gets an instrumented
// default; the fetch deadline comes from the context.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &HTTPSource{
		url:    url,
		format: DetectFormat(url),
		client: client,
		limit:  maxDocumentBytes,
		logger: readerLogger(nil),
	}
}

func (s *HTTPSource) Name() string { return s.url }

// Fetch downloads and parses the document. Transport failures and non-2xx
// responses are SOURCE_UNAVAILABLE; undecodable bodies are PARSE_FAILURE.
func (s *HTTPSource) Fetch(ctx context.Context) (*ports.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.SourceUnavailable(s.url, err)
	}

	startTime := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.SourceUnavailable(s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.SourceUnavailable(s.url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	data, err := readDocument(resp.Body, s.url, s.limit)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("fetched %s in %.2fms (%d bytes)",
		s.url, float64(time.Since(startTime).Nanoseconds())/1e6, len(data))

	return Decode(formatFromContentType(resp.Header.Get("Content-Type"), s.format), data)
}
