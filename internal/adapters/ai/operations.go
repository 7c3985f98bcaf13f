package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/accountable-india/civicrank/internal/domain/merge"
	"github.com/accountable-india/civicrank/internal/domain/model"
	"github.com/accountable-india/civicrank/pkg/logger"
	"github.com/accountable-india/civicrank/pkg/metrics"
)

// Insight is one short civic-service insight for the dashboard.
type Insight struct {
	Topic   string `json:"topic"`
	Summary string `json:"summary"`
}

// fallbackInsights is served when the collaborator is unavailable.
var fallbackInsights = []Insight{
	{Topic: "Infrastructure", Summary: "Streetlight repairs are trending up in your local sector this week."},
	{Topic: "Sanitation", Summary: "New waste management protocols are being deployed by the Municipality."},
	{Topic: "Engagement", Summary: "Community participation in civic reporting has increased by 15%."},
}

// Canned fallback texts for grounded free-text operations.
const (
	fallbackCompareText = "AI comparison currently unavailable. Please try again."
	fallbackSearchText  = "Unable to retrieve real-time verified data at the moment. Please try again later."
)

var insightsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"topic":   {Type: genai.TypeString},
			"summary": {Type: genai.TypeString},
		},
		Required: []string{"topic", "summary"},
	},
}

var discoverSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":         {Type: genai.TypeString},
		"role":         {Type: genai.TypeString},
		"party":        {Type: genai.TypeString},
		"constituency": {Type: genai.TypeString},
		"state":        {Type: genai.TypeString},
		"attendance":   {Type: genai.TypeNumber},
		"bills":        {Type: genai.TypeNumber},
		"debates":      {Type: genai.TypeNumber},
		"questions":    {Type: genai.TypeNumber},
		"sinceYear":    {Type: genai.TypeInteger},
	},
	Required: []string{"name", "role", "party", "constituency", "state"},
}

var promisesSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
			"authority":   {Type: genai.TypeString},
			"party":       {Type: genai.TypeString},
			"date":        {Type: genai.TypeString},
			"targetDate":  {Type: genai.TypeString},
			"status":      {Type: genai.TypeString},
			"category":    {Type: genai.TypeString},
			"scope":       {Type: genai.TypeString},
			"progress":    {Type: genai.TypeInteger},
		},
		Required: []string{"title", "description", "authority", "party"},
	},
}

// Insights generates three short civic insights for the named citizen.
// On any failure the canned set is returned with degraded=true.
func (c *Client) Insights(ctx context.Context, userName string) ([]Insight, bool) {
	prompt := fmt.Sprintf(`Generate 3 short, professional "Civic Service Insights" for a dashboard for a citizen named %s.
Topics should be: Local Governance, Community Safety, and Public Infrastructure.
Keep each insight under 20 words. Focus on urban improvement and civic duty.`, userName)

	resp, err := c.observe(ctx, "insights", prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   insightsSchema,
	})
	if err != nil {
		c.log.Warn(ctx, "insights degraded to canned content", logger.Error(err))
		return fallbackInsights, true
	}

	var insights []Insight
	if err := json.Unmarshal([]byte(resp.Text()), &insights); err != nil || len(insights) == 0 {
		c.log.Warn(ctx, "insights payload unparseable; serving canned content", logger.Error(err))
		return fallbackInsights, true
	}
	return insights, false
}

// DiscoverLeader looks up a political leader's profile from live
// records, search-grounded. Unlike the text operations this one has no
// meaningful fallback; the error is returned for the caller to handle
// (the refresh worker logs it and releases the dedup slot for a retry).
func (c *Client) DiscoverLeader(ctx context.Context, name string) (merge.Discovered, error) {
	prompt := fmt.Sprintf(`Find the official political profile for %s in India. Provide role (MP/MLA), Party, Constituency, and State.
Also provide estimated performance scores (0-100) for Attendance, Bills, Debates, and Questions based on available records.`, name)

	resp, err := c.observe(ctx, "discover", prompt, &genai.GenerateContentConfig{
		Tools:            searchTools(),
		ResponseMIMEType: "application/json",
		ResponseSchema:   discoverSchema,
	})
	if err != nil {
		return merge.Discovered{}, fmt.Errorf("discover %q: %w", name, err)
	}

	var profile merge.Discovered
	if err := json.Unmarshal([]byte(resp.Text()), &profile); err != nil {
		return merge.Discovered{}, fmt.Errorf("discover %q: decode profile: %w", name, err)
	}
	return profile, nil
}

// CompareLeaders produces a search-grounded side-by-side comparison with
// citations. Failures degrade to canned text.
func (c *Client) CompareLeaders(ctx context.Context, left, right string) Answer {
	prompt := fmt.Sprintf(`Perform a detailed side-by-side comparison of %s and %s.
Compare their:
1. Recent parliamentary activity (last 3-6 months).
2. Key public stances or major policy debates they were involved in.
3. Any recent controversies or major achievements.
4. Ground-level impact in their respective constituencies.
Focus on objective data and verified news.`, left, right)

	resp, err := c.observe(ctx, "compare", prompt, &genai.GenerateContentConfig{
		Tools: searchTools(),
	})
	if err != nil {
		c.log.Warn(ctx, "comparison degraded to canned content", logger.Error(err))
		return Answer{Text: fallbackCompareText, Degraded: true}
	}
	return Answer{Text: resp.Text(), Sources: groundingSources(resp)}
}

// Search answers a free-form query with search grounding and citations.
// Failures degrade to canned text.
func (c *Client) Search(ctx context.Context, query string) Answer {
	resp, err := c.observe(ctx, "search", query, &genai.GenerateContentConfig{
		Tools: searchTools(),
	})
	if err != nil {
		c.log.Warn(ctx, "grounded search degraded to canned content", logger.Error(err))
		return Answer{Text: fallbackSearchText, Degraded: true}
	}
	return Answer{Text: resp.Text(), Sources: groundingSources(resp)}
}

// VerifyPromises fetches verifiable political promises from live news
// records. As with DiscoverLeader, the error goes back to the worker.
func (c *Client) VerifyPromises(ctx context.Context, query string) ([]model.Promise, error) {
	if query == "" {
		query = "latest election promises by Indian political parties BJP Congress AAP"
	}
	prompt := fmt.Sprintf(`Search for and list 5 authentic, specific political promises or commitments made by Indian political leaders or parties in the last 12 months, matching: %s.
Only include promises that can be verified via news sources.
For each promise provide title, description, authority (who made it), party, date, targetDate ("TBD" if unknown), status, category, scope (Centre or State) and progress (0-100).`, query)

	resp, err := c.observe(ctx, "promises", prompt, &genai.GenerateContentConfig{
		Tools:            searchTools(),
		ResponseMIMEType: "application/json",
		ResponseSchema:   promisesSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("verify promises: %w", err)
	}

	var promises []model.Promise
	if err := json.Unmarshal([]byte(resp.Text()), &promises); err != nil {
		return nil, fmt.Errorf("verify promises: decode payload: %w", err)
	}
	return promises, nil
}

// observe wraps generate with per-operation metrics.
func (c *Client) observe(ctx context.Context, op, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	start := time.Now()
	resp, err := c.generate(ctx, prompt, config)
	metrics.RecordAICall(op, float64(time.Since(start).Milliseconds()), err != nil)
	return resp, err
}
