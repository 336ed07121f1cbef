// Package catalog fetches the version catalog and per-version prompt
// artifacts from the static data host.
//
// The host serves three artifacts under /data/: an optional error flag
// (error.json), the version catalog (versions.json), and one raw
// markdown file per version (prompts-<version>.md). All requests are
// plain GETs; failures are converted into the taxonomy from
// internal/errors at this boundary.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mark3labs/promptdiff/internal/errors"
	"github.com/mark3labs/promptdiff/internal/logger"
	"github.com/mark3labs/promptdiff/internal/version"
)

// Client talks to the data host. Fetches are never retried automatically;
// the user retries by changing a selection or reloading.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL. A zero timeout means
// fetches are unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured data host base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// errorArtifact is the payload of /data/error.json.
type errorArtifact struct {
	Error string `json:"error"`
}

// versionsArtifact is the payload of /data/versions.json.
type versionsArtifact struct {
	Versions []struct {
		Version string `json:"version"`
	} `json:"versions"`
}

// CheckService fetches the optional error artifact. A readable artifact
// with a non-empty payload means the update pipeline reported a failure
// and a ServiceError is returned. Absence of the artifact, a non-success
// response, or an unparseable body all mean "no error reported" and
// return nil.
func (c *Client) CheckService(ctx context.Context) error {
	body, err := c.get(ctx, "/data/error.json")
	if err != nil {
		logger.Debug("no service error artifact: %v", err)
		return nil
	}

	var artifact errorArtifact
	if err := json.Unmarshal(body, &artifact); err != nil {
		logger.Debug("unreadable service error artifact: %v", err)
		return nil
	}
	if artifact.Error == "" {
		return nil
	}
	return errors.NewServiceError(artifact.Error)
}

// LoadVersions returns the version catalog in source order (oldest
// first). The error artifact is consulted first; if it reports a failure
// the catalog is not fetched at all.
func (c *Client) LoadVersions(ctx context.Context) (version.Catalog, error) {
	if err := c.CheckService(ctx); err != nil {
		return nil, err
	}

	body, err := c.get(ctx, "/data/versions.json")
	if err != nil {
		if se, ok := err.(*statusError); ok && se.code == http.StatusNotFound {
			return nil, errors.NewCatalogMissingError()
		}
		return nil, errors.NewCatalogError(err)
	}

	var artifact versionsArtifact
	if err := json.Unmarshal(body, &artifact); err != nil {
		return nil, errors.NewCatalogError(err)
	}

	cat := make(version.Catalog, 0, len(artifact.Versions))
	for _, v := range artifact.Versions {
		cat = append(cat, v.Version)
	}
	logger.Debug("loaded %d versions from %s", len(cat), c.baseURL)
	return cat, nil
}

// FetchPrompt returns the raw prompt text for a version.
func (c *Client) FetchPrompt(ctx context.Context, label string) (string, error) {
	body, err := c.get(ctx, "/data/prompts-"+label+".md")
	if err != nil {
		return "", errors.NewContentError(label, err)
	}
	return string(body), nil
}

// Pair holds the two raw prompt texts of a comparison.
type Pair struct {
	From string
	To   string
}

// FetchPair fetches both sides of a comparison concurrently and joins the
// results: if either side fails the whole pair fails and no partial
// content is returned.
func (c *Client) FetchPair(ctx context.Context, from, to string) (Pair, error) {
	var pair Pair

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := c.FetchPrompt(ctx, from)
		pair.From = text
		return err
	})
	g.Go(func() error {
		text, err := c.FetchPrompt(ctx, to)
		pair.To = text
		return err
	})

	if err := g.Wait(); err != nil {
		return Pair{}, err
	}
	return pair, nil
}

// statusError reports a non-success HTTP response.
type statusError struct {
	path string
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.path, e.code)
}

// get issues a GET and returns the body for 2xx responses.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{path: path, code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
