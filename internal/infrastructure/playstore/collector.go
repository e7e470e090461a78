package playstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/ports"
)

const defaultPageSize = 200

// sortAliases maps the two sort orders the review feed cannot serve onto
// their closest supported equivalents.
var sortAliases = map[string]string{
	"oldest": "newest",
	"rating": "most_relevant",
}

// Collector fetches app metadata from the store page and raw reviews from
// the review feed, following continuation tokens across pages.
type Collector struct {
	client   *http.Client
	storeURL string
	feedURL  string
	pageSize int
	logger   *slog.Logger
}

var _ ports.ReviewSource = (*Collector)(nil)

// NewCollector wires an HTTP client; pageSize defaults to 200.
func NewCollector(client *http.Client, storeURL, feedURL string, pageSize int, logger *slog.Logger) *Collector {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Collector{
		client:   client,
		storeURL: strings.TrimSuffix(storeURL, "/"),
		feedURL:  feedURL,
		pageSize: pageSize,
		logger:   logger,
	}
}

// feedPayload is the review feed wire format.
type feedPayload struct {
	Reviews      []domain.RawReview `json:"reviews"`
	Continuation string             `json:"continuation_token"`
}

// Collect returns app metadata plus the first review page. A truncated page
// with a continuation token is a valid partial result.
func (c *Collector) Collect(ctx context.Context, req domain.AnalysisRequest) (domain.CollectResult, error) {
	app, err := c.fetchAppInfo(ctx, req)
	if err != nil {
		return domain.CollectResult{}, fmt.Errorf("app metadata for %s: %w", req.AppID, err)
	}

	query := url.Values{}
	query.Set("app_id", req.AppID)
	query.Set("country", req.Country)
	query.Set("lang", req.Language)
	query.Set("count", strconv.Itoa(min(req.Count, c.pageSize)))
	query.Set("sort", c.resolveSort(req.Sort))

	page, err := c.fetchFeed(ctx, query)
	if err != nil {
		return domain.CollectResult{}, fmt.Errorf("reviews for %s: %w", req.AppID, err)
	}

	return domain.CollectResult{
		App:          app,
		Reviews:      page.Reviews,
		Continuation: page.Continuation,
	}, nil
}

// CollectMore resumes a paginated fetch from a continuation token.
func (c *Collector) CollectMore(ctx context.Context, appID, continuation string, count int) (domain.ReviewPage, error) {
	query := url.Values{}
	query.Set("app_id", appID)
	query.Set("token", continuation)
	query.Set("count", strconv.Itoa(min(count, c.pageSize)))

	page, err := c.fetchFeed(ctx, query)
	if err != nil {
		return domain.ReviewPage{}, fmt.Errorf("more reviews for %s: %w", appID, err)
	}
	return page, nil
}

// resolveSort applies the documented sort aliasing; the substitution is
// logged so it stays observable.
func (c *Collector) resolveSort(sort string) string {
	sort = strings.ToLower(sort)
	if alias, ok := sortAliases[sort]; ok {
		if c.logger != nil {
			c.logger.Warn("sort order not supported by feed, aliasing", "requested", sort, "using", alias)
		}
		return alias
	}
	return sort
}

func (c *Collector) fetchFeed(ctx context.Context, query url.Values) (domain.ReviewPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL+"?"+query.Encode(), nil)
	if err != nil {
		return domain.ReviewPage{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ReviewScanner/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.ReviewPage{}, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ReviewPage{}, fmt.Errorf("feed returned %s", resp.Status)
	}

	var payload feedPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.ReviewPage{}, fmt.Errorf("decode feed: %w", err)
	}

	for i := range payload.Reviews {
		if payload.Reviews[i].ID == "" {
			payload.Reviews[i].ID = uuid.NewString()
		}
	}

	return domain.ReviewPage{
		Reviews:      payload.Reviews,
		Continuation: payload.Continuation,
	}, nil
}

func (c *Collector) fetchAppInfo(ctx context.Context, req domain.AnalysisRequest) (domain.AppInfo, error) {
	pageURL := fmt.Sprintf("%s/store/apps/details?id=%s&hl=%s&gl=%s",
		c.storeURL, url.QueryEscape(req.AppID), url.QueryEscape(req.Language), url.QueryEscape(req.Country))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return domain.AppInfo{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "ReviewScanner/1.0")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return domain.AppInfo{}, fmt.Errorf("request store page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.AppInfo{}, fmt.Errorf("store returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.AppInfo{}, fmt.Errorf("parse store page: %w", err)
	}

	return parseAppInfo(doc, req.AppID), nil
}

func parseAppInfo(doc *goquery.Document, appID string) domain.AppInfo {
	app := domain.AppInfo{AppID: appID, Title: "Unknown"}

	if title := strings.TrimSpace(doc.Find(`h1[itemprop="name"]`).First().Text()); title != "" {
		app.Title = title
	}
	app.Description = strings.TrimSpace(doc.Find(`div[data-g-id="description"]`).First().Text())
	app.Developer = strings.TrimSpace(doc.Find(`div[itemprop="author"] a`).First().Text())
	app.Genre = strings.TrimSpace(doc.Find(`a[itemprop="genre"]`).First().Text())

	if icon, ok := doc.Find(`img[itemprop="image"]`).First().Attr("src"); ok {
		app.Icon = icon
	}

	scoreText := strings.TrimSpace(doc.Find(`div[itemprop="starRating"]`).First().Text())
	if score, err := strconv.ParseFloat(strings.ReplaceAll(scoreText, ",", "."), 64); err == nil {
		app.Score = score
	}

	return app
}
