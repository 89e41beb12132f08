package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// HistoryURL is the operator's draws-history endpoint. The portal path
	// is opaque but stable; the trailing id selects the HTML rendition.
	HistoryURL = "http://loterias.caixa.gov.br/wps/portal/loterias/landing/megasena" +
		"/!ut/p/a1/04_Sj9CPykssy0xPLMnMz0vMAfGjzOLNDH0MPAzcDbwMPI0sDBxNXAO" +
		"MwrzCjA0sjIEKIoEKnN0dPUzMfQwMDEwsjAw8XZw8XMwtfQ0MPM2I02-AAzgaENIf" +
		"rh-FqsQ9wNnUwNHfxcnSwBgIDUyhCvA5EawAjxsKckMjDDI9FQE-F4ca/dl5/d5/L" +
		"2dBISEvZ0FBIS9nQSEh/pw/Z7_HGK818G0K8DBC0QPVN93KQ10G1/res/id=histo" +
		"ricoHTML/c=cacheLevelPage/=/"

	UserAgent = "mega-history/1.0 (github.com/ofarias/mega-history)"
	Timeout   = 30 * time.Second
)

// FetchError reports a transport or status failure while retrieving the
// history snapshot. Any FetchError is fatal for the run; there is no
// retry and no partial-content handling.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: unexpected status code %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Scraper retrieves the raw draws-history snapshot
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a Scraper pointing at the operator's history endpoint
func New() *Scraper {
	return NewForURL(HistoryURL)
}

// NewForURL creates a Scraper for an alternate endpoint, used by tests
// and the --source-url flag.
func NewForURL(url string) *Scraper {
	return NewWithTimeout(url, Timeout)
}

// NewWithTimeout creates a Scraper with an explicit fetch timeout. A
// non-positive timeout falls back to the default.
func NewWithTimeout(url string, timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

// URL returns the endpoint this Scraper fetches from.
func (s *Scraper) URL() string { return s.url }

// Fetch retrieves the current snapshot verbatim. A non-200 status or any
// transport error yields a FetchError.
func (s *Scraper) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: s.url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: s.url, Err: err}
	}
	return body, nil
}
