package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ErrEmptyQuery = errors.New("search query is empty")

// SearchResult is one transcript segment matched by a search. Start and End
// are seconds from the start of the video.
type SearchResult struct {
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
	Text          string  `json:"text"`
	Similarity    float64 `json:"similarity"`
	VisualContext string  `json:"visual_context"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// Search queries the transcript of one uploaded video. Results come back in
// the server's relevance order and are passed through unmodified; each call
// replaces any prior result set wholesale.
func (c *Client) Search(ctx context.Context, videoID, query string) ([]SearchResult, error) {
	ctx, span := tracer.Start(ctx, "search video")
	defer span.End()
	span.SetAttributes(attribute.String("request.video_id", videoID))

	if strings.TrimSpace(query) == "" {
		span.RecordError(ErrEmptyQuery)
		span.SetStatus(codes.Error, ErrEmptyQuery.Error())
		return nil, ErrEmptyQuery
	}

	endpoint := c.baseURL + "/search/" + url.PathEscape(videoID) + "?query=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, nil)
	if err != nil {
		err = fmt.Errorf("error creating HTTP request: %w", err)
		span.RecordError(err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("error sending request: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("error reading response body: %w", err)
		span.RecordError(err)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		err := errors.New(requestFailure(body, "Search failed"))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		err = fmt.Errorf("error unmarshalling JSON: %w", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("response.result_count", len(parsed.Results)))
	return parsed.Results, nil
}
