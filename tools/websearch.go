package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	parentassist "github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent"
)

// WebSearchName is the name the model uses to call the search tool.
const WebSearchName = "web_search"

const webSearchDescription = "Use this tool for current information, recent " +
	"research, or specific situations not covered in the book. Search for: " +
	"latest parenting research, age-specific advice, medical concerns, or " +
	"specialized topics. Use AFTER checking book_knowledge."

const defaultSearchEndpoint = "https://api.duckduckgo.com/"

const defaultSearchTimeout = 10 * time.Second

// maxRelatedTopics caps how many related topics go into the summary.
const maxRelatedTopics = 5

// WebSearch queries the DuckDuckGo Instant Answer API. The API is
// free and unauthenticated; it returns abstracts, instant answers,
// definitions and related topics rather than full result pages, which
// is enough for the model to ground a follow-up answer.
type WebSearch struct {
	endpoint   string
	httpClient *http.Client
}

// WebSearchOption configures a WebSearch.
type WebSearchOption func(*WebSearch)

// WithEndpoint overrides the API endpoint. Used by tests to point at
// a local server.
func WithEndpoint(endpoint string) WebSearchOption {
	return func(w *WebSearch) { w.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) WebSearchOption {
	return func(w *WebSearch) { w.httpClient = client }
}

// WithTimeout sets the per-request timeout on the default client.
func WithTimeout(timeout time.Duration) WebSearchOption {
	return func(w *WebSearch) { w.httpClient.Timeout = timeout }
}

// NewWebSearch creates the search tool with the public DuckDuckGo
// endpoint and a bounded request timeout.
func NewWebSearch(opts ...WebSearchOption) *WebSearch {
	w := &WebSearch{
		endpoint:   defaultSearchEndpoint,
		httpClient: &http.Client{Timeout: defaultSearchTimeout},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name implements Tool.
func (w *WebSearch) Name() string { return WebSearchName }

// Description implements Tool.
func (w *WebSearch) Description() string { return webSearchDescription }

// ddgResponse is the subset of the Instant Answer API response the
// summary is built from.
type ddgResponse struct {
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	Answer        string `json:"Answer"`
	Definition    string `json:"Definition"`
	RelatedTopics []struct {
		Text string `json:"Text"`
	} `json:"RelatedTopics"`
}

// Call implements Tool. Failures are returned as *ToolError with a
// message safe to feed back to the model as an observation.
func (w *WebSearch) Call(ctx context.Context, input string) (string, error) {
	query := strings.TrimSpace(input)
	if query == "" {
		return "", parentassist.NewToolError(
			WebSearchName, "the search query was empty", nil,
		)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, w.endpoint+"?"+params.Encode(), nil,
	)
	if err != nil {
		return "", parentassist.NewToolError(
			WebSearchName, "could not build the search request", err,
		)
	}
	req.Header.Set("User-Agent", "parent-assistant/1.0")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", parentassist.NewToolError(
			WebSearchName, "the search service could not be reached", err,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", parentassist.NewToolError(
			WebSearchName, "the search service is rate limiting requests, try again later", nil,
		)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", parentassist.NewToolError(
			WebSearchName,
			fmt.Sprintf("the search service returned status %d", resp.StatusCode),
			nil,
		)
	}

	var ddg ddgResponse
	if err := json.NewDecoder(resp.Body).Decode(&ddg); err != nil {
		return "", parentassist.NewToolError(
			WebSearchName, "the search service returned an unreadable response", err,
		)
	}

	return summarize(&ddg), nil
}

// summarize flattens the structured response into the observation
// text shown to the model.
func summarize(ddg *ddgResponse) string {
	var sections []string

	if ddg.AbstractText != "" {
		sections = append(sections, "Abstract: "+ddg.AbstractText)
		if ddg.AbstractURL != "" {
			sections = append(sections, "Source: "+ddg.AbstractURL)
		}
	}
	if ddg.Answer != "" {
		sections = append(sections, "Answer: "+ddg.Answer)
	}
	if ddg.Definition != "" {
		sections = append(sections, "Definition: "+ddg.Definition)
	}

	if len(ddg.RelatedTopics) > 0 {
		var topics []string
		for i, topic := range ddg.RelatedTopics {
			if i >= maxRelatedTopics {
				break
			}
			if topic.Text != "" {
				topics = append(topics, topic.Text)
			}
		}
		if len(topics) > 0 {
			sections = append(sections, "Related topics: "+strings.Join(topics, "; "))
		}
	}

	if len(sections) == 0 {
		return "No results found for this query."
	}
	return strings.Join(sections, "\n\n")
}

var _ parentassist.Tool = (*WebSearch)(nil)
