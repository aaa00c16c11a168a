// Package discovery ranks YouTube channels matching a free-text query.
//
// A search runs exactly two upstream calls: search.list for candidate
// channel ids, then one channels.list for all of them at once. Results
// are never cached or stored.
package discovery

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/influencer-hub/internal/models"
	"github.com/influencer-hub/internal/youtube"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	yt "google.golang.org/api/youtube/v3"
)

// DefaultMaxResults is used when maxResults is absent or unparsable
const DefaultMaxResults = 20

// ChannelSource is the subset of the YouTube client the aggregator needs
type ChannelSource interface {
	SearchChannels(ctx context.Context, params youtube.SearchParams) (*yt.SearchListResponse, error)
	ListChannels(ctx context.Context, ids []string) (*models.ChannelResponse, error)
}

// Request carries the raw query string parameters
type Request struct {
	Query      string
	RegionCode string
	MaxResults string
}

// Aggregator runs creator discovery searches
type Aggregator struct {
	source ChannelSource
	logger *zap.Logger
}

// NewAggregator creates an aggregator over a channel source
func NewAggregator(source ChannelSource, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{source: source, logger: logger}
}

// ParseMaxResults resolves the result limit. Absent, unparsable or negative
// values fall back to DefaultMaxResults.
func ParseMaxResults(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return DefaultMaxResults
	}
	return n
}

// Search returns candidates ranked by subscriber count, highest first.
// Equal counts keep the order of the channels.list response. The returned
// slice is never nil.
func (a *Aggregator) Search(ctx context.Context, req Request) ([]models.Candidate, error) {
	if req.Query == "" {
		return nil, &Error{Kind: KindInvalidRequest, Status: http.StatusBadRequest, Message: MsgQueryRequired}
	}

	params := youtube.SearchParams{
		Query:      req.Query,
		RegionCode: req.RegionCode,
		MaxResults: ParseMaxResults(req.MaxResults),
	}

	search, err := a.source.SearchChannels(ctx, params)
	if err != nil {
		a.logger.Error("YouTube search failed", zap.String("query", req.Query), zap.Error(err))
		return nil, upstreamError(err, MsgSearchFailed)
	}

	ids := channelIDs(search)
	if len(ids) == 0 {
		return []models.Candidate{}, nil
	}

	channels, err := a.source.ListChannels(ctx, ids)
	if err != nil {
		a.logger.Error("YouTube channel lookup failed", zap.Int("channels", len(ids)), zap.Error(err))
		return nil, upstreamError(err, MsgChannelsFailed)
	}

	candidates := make([]models.Candidate, 0, len(channels.Items))
	for _, item := range channels.Items {
		candidates = append(candidates, item.Candidate())
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SubscriberCount > candidates[j].SubscriberCount
	})

	a.logger.Debug("Creator search complete",
		zap.String("query", req.Query),
		zap.String("region", req.RegionCode),
		zap.Int("maxResults", params.MaxResults),
		zap.Int("results", len(candidates)))

	return candidates, nil
}

// channelIDs collects the distinct channel ids in search order
func channelIDs(resp *yt.SearchListResponse) []string {
	if resp == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(resp.Items))
	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Id == nil || item.Id.ChannelId == "" {
			continue
		}
		if _, dup := seen[item.Id.ChannelId]; dup {
			continue
		}
		seen[item.Id.ChannelId] = struct{}{}
		ids = append(ids, item.Id.ChannelId)
	}
	return ids
}

func upstreamError(err error, fallback string) *Error {
	if errors.Is(err, youtube.ErrMissingAPIKey) {
		return &Error{Kind: KindConfiguration, Status: http.StatusInternalServerError, Message: youtube.ErrMissingAPIKey.Error(), Err: err}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		status := apiErr.Code
		if status == 0 {
			status = http.StatusInternalServerError
		}
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		return &Error{Kind: KindUpstream, Status: status, Message: msg, Err: err}
	}

	if errors.Is(err, youtube.ErrRequestFailed) {
		return &Error{Kind: KindUpstream, Status: http.StatusInternalServerError, Message: fallback, Err: err}
	}

	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: MsgInternal, Err: err}
}
