// Package fbref scrapes football statistics off of fbref.com pages.
package fbref

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"footstats/lib/configutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://fbref.com/en"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Fetcher retrieves the raw html of a page given its absolute url.
type Fetcher interface {
	Fetch(ctx context.Context, link string) (string, error)
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
	fetcher Fetcher
}

type ClientOptions struct {
	// BaseUrl points at the english version of the site. leave empty
	// for DefaultBaseUrl.
	BaseUrl string
	// Fetcher overrides how pages are retrieved, leave nil to fetch
	// through the http client.
	Fetcher Fetcher
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", userAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	restyutilInstrument(client)

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = restyFetcher{http: client}
	}

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
		fetcher: fetcher,
	}, nil
}

type Config struct {
	BaseUrl string `json:"base_url"`
	// Browser routes page fetches through a headless browser instead
	// of the plain http client.
	Browser bool `json:"browser"`
}

func NewClientFromConfig(name string) (*Client, error) {
	config, err := configutil.ReadConfig[Config](name)
	if err != nil {
		return nil, err
	}

	opts := ClientOptions{BaseUrl: config.BaseUrl}
	if config.Browser {
		fetcher, err := NewBrowserFetcher()
		if err != nil {
			return nil, err
		}
		opts.Fetcher = fetcher
	}
	return NewClient(opts)
}

type restyFetcher struct {
	http *resty.Client
}

func (f restyFetcher) Fetch(ctx context.Context, link string) (string, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return "", &FetchError{Url: link, Err: err}
	}
	if res.StatusCode() != http.StatusOK {
		return "", &FetchError{Url: link, StatusCode: res.StatusCode()}
	}
	return res.String(), nil
}

// get fetches a page relative to the base url and parses it, returning
// the document along with the absolute url it came from.
func (c *Client) get(ctx context.Context, path string) (*goquery.Document, string, error) {
	link := c.BaseUrl.JoinPath(path).String()
	body, err := c.fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, link, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, link, &ParseError{Url: link, Reason: "invalid html", Err: err}
	}
	return doc, link, nil
}

// urlizeName turns a display name into the form it takes inside site
// urls, e.g. "Premier League" becomes "Premier-League".
func urlizeName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "-")
}

// pathSegmentAfter returns the path segment directly following the
// given marker segment, e.g. ("/en/squads/18bb7c10/Arsenal-Stats",
// "squads") yields "18bb7c10".
func pathSegmentAfter(href, marker string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments {
		if segment == marker && i+1 < len(segments) {
			return segments[i+1]
		}
	}
	return ""
}
