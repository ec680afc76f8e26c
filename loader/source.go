package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/robinvdvleuten/insight/dataset"
)

// Source fetches the raw rows of a single feed.
type Source interface {
	Fetch(ctx context.Context) ([]dataset.Row, error)
	Location() string
}

// NewSource returns an HTTPSource for http(s) URLs and a FileSource for
// anything else.
func NewSource(location string, client *http.Client) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTPSource{URL: location, Client: client}
	}
	return &FileSource{Path: strings.TrimPrefix(location, "file://")}
}

// HTTPSource downloads a published CSV document.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Location() string { return s.URL }

// Fetch downloads and decodes the document. Any non-2xx status is an error.
func (s *HTTPSource) Fetch(ctx context.Context) ([]dataset.Row, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	return Decode(resp.Body)
}

// StatusError is returned when a feed server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// FileSource reads a CSV file from disk.
type FileSource struct {
	Path string
}

func (s *FileSource) Location() string { return s.Path }

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) ([]dataset.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data))
}

// Decode reads a CSV document whose first record is the header. Every other
// record becomes a row keyed by the header. Blank lines are skipped, short
// records only carry the fields they have and cells beyond the header are
// dropped. Keys and values are left raw.
func Decode(r io.Reader) ([]dataset.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []dataset.Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows := make([]dataset.Row, 0)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if blank(record) {
			continue
		}

		n := len(record)
		if n > len(header) {
			n = len(header)
		}
		row := make(dataset.Row, 0, n)
		for i := 0; i < n; i++ {
			row = append(row, dataset.Field{Name: header[i], Value: record[i]})
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func blank(record []string) bool {
	return len(record) == 1 && record[0] == ""
}
