package fbref

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher retrieves pages through a headless chrome instance,
// for the occasions where the site fronts its pages with challenges
// the plain http client cannot clear.
type BrowserFetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	// wait gives client side scripts time to settle after navigation.
	wait    time.Duration
	timeout time.Duration
}

func NewBrowserFetcher() (*BrowserFetcher, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &BrowserFetcher{
		allocCtx: allocCtx,
		cancel:   cancel,
		wait:     time.Second,
		timeout:  time.Second * 30,
	}, nil
}

// Close releases the underlying browser.
func (f *BrowserFetcher) Close() {
	if f.cancel != nil {
		f.cancel()
	}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, link string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(f.allocCtx)
	defer cancel()
	browserCtx, cancel = context.WithTimeout(browserCtx, f.timeout)
	defer cancel()

	// the browser context descends from the allocator, so caller
	// cancellation has to be propagated by hand
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var contents string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(link),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(f.wait),
		chromedp.OuterHTML(`html`, &contents, chromedp.ByQuery),
	)
	if err != nil {
		return "", &FetchError{Url: link, Err: err}
	}
	if contents == "" {
		return "", &FetchError{Url: link, Err: fmt.Errorf("empty page returned")}
	}
	return contents, nil
}
