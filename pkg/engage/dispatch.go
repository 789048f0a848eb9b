package engage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/lurelab/decoy/pkg/httputil"
)

// dispatchTimeout bounds one callback delivery attempt. The callback is
// advisory; nothing waits on it.
const dispatchTimeout = 30 * time.Second

// Notifier delivers completion reports to an external callback URL.
// Delivery is fire-and-forget: failures are logged and swallowed, and a
// semaphore caps in-flight deliveries so a dead callback endpoint
// cannot pile up goroutines.
type Notifier struct {
	client *http.Client
	url    string
	sem    *httputil.Semaphore
}

// NewNotifier creates a notifier for the callback URL. maxInflight <= 0
// uses the semaphore default.
func NewNotifier(url string, maxInflight int) *Notifier {
	return &Notifier{
		client: httputil.MediumClient(),
		url:    url,
		sem:    httputil.NewSemaphore(maxInflight),
	}
}

// Dispatch sends the report in the background and returns immediately.
func (n *Notifier) Dispatch(report CompletionReport) {
	if n == nil || n.url == "" {
		return
	}
	if !n.sem.TryAcquire() {
		log.Printf("[DISPATCH] dropped completion report for %s: too many in-flight deliveries", report.SessionKey)
		return
	}

	go func() {
		defer n.sem.Release()
		if err := n.deliver(report); err != nil {
			log.Printf("[DISPATCH] completion report for %s failed: %v", report.SessionKey, err)
			return
		}
		log.Printf("[DISPATCH] completion report for %s delivered", report.SessionKey)
	}()
}

func (n *Notifier) deliver(report CompletionReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", n.url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer httputil.DrainAndClose(resp.Body)

	// Non-2xx is not retried; the caller logs and moves on.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := httputil.ReadErrorBody(resp.Body)
		return fmt.Errorf("callback returned %d: %s", resp.StatusCode, string(errBody))
	}
	return nil
}

// Stats exposes delivery backpressure for the health endpoint.
func (n *Notifier) Stats() httputil.SemaphoreStats {
	if n == nil {
		return httputil.SemaphoreStats{}
	}
	return n.sem.Stats()
}
