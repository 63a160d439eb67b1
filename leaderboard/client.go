package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Client talks to a leaderboard service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Submit posts a score and returns the stored entry.
func (c *Client) Submit(ctx context.Context, name string, score uint) (Entry, error) {
	body, err := json.Marshal(submitRequest{Name: name, Score: score})
	if err != nil {
		return Entry{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scores", bytes.NewReader(body))
	if err != nil {
		return Entry{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var entry Entry
	if err := c.do(req, http.StatusCreated, &entry); err != nil {
		return Entry{}, fmt.Errorf("submit score: %w", err)
	}
	return entry, nil
}

// Top fetches the n best scores.
func (c *Client) Top(ctx context.Context, n int) ([]Entry, error) {
	q := url.Values{"limit": {strconv.Itoa(n)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/scores?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := c.do(req, http.StatusOK, &entries); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return entries, nil
}

func (c *Client) do(req *http.Request, want int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Reporter submits final scores in the background so the game loop never
// waits on the network.
type Reporter struct {
	client *Client
	name   string

	wg sync.WaitGroup

	// OnSubmit, when set, is called from the submitting goroutine.
	OnSubmit func(Entry, error)
}

func NewReporter(client *Client, name string) *Reporter {
	return &Reporter{client: client, name: name}
}

// ReportScore implements game.ScoreReporter.
func (r *Reporter) ReportScore(score uint) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		entry, err := r.client.Submit(context.Background(), r.name, score)
		if err != nil {
			log.Printf("Warning: could not report score: %v", err)
		}
		if r.OnSubmit != nil {
			r.OnSubmit(entry, err)
		}
	}()
}

// Wait blocks until every reported score has been submitted or failed.
func (r *Reporter) Wait() {
	r.wg.Wait()
}
