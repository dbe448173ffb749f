package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrFetch marks network, HTTP and file access failures.
var ErrFetch = errors.New("fetch failed")

type Error struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP error: %d %s", e.Source, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetch}
	}
	return []error{ErrFetch, e.Err}
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewClient(httpClient *http.Client, userAgent string, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Source: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Source: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Source: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Source: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return data, nil
}

func (c *Client) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Source: path, Err: err}
	}
	return data, nil
}

// File is one entry of a metadata directory, keyed by its base name
// without extension.
type File struct {
	Key  string
	Data []byte
}

// ReadDir reads every file with the given extension in dir, ordered by key.
func (c *Client) ReadDir(dir, ext string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &Error{Source: dir, Err: err}
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}

		data, err := c.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		files = append(files, File{
			Key:  strings.TrimSuffix(entry.Name(), ext),
			Data: data,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Key < files[j].Key
	})

	return files, nil
}
