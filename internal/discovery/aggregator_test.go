package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/influencer-hub/internal/models"
	"github.com/influencer-hub/internal/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	id          string
	title       string
	subscribers string // empty means the field is absent
}

// fakeUpstream serves search.list and channels.list from fixed data and
// counts calls per endpoint.
type fakeUpstream struct {
	searchIDs []string
	channels  []fakeChannel

	searchStatus int
	searchBody   string

	channelsStatus int
	channelsBody   string

	searchCalls   atomic.Int32
	channelsCalls atomic.Int32
	lastSearch    atomic.Value
	lastChannels  atomic.Value
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/search":
		f.searchCalls.Add(1)
		f.lastSearch.Store(r.URL.Query())
		if f.searchStatus != 0 {
			w.WriteHeader(f.searchStatus)
			_, _ = w.Write([]byte(f.searchBody))
			return
		}
		items := make([]map[string]any, 0, len(f.searchIDs))
		for _, id := range f.searchIDs {
			items = append(items, map[string]any{"id": map[string]string{"kind": "youtube#channel", "channelId": id}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	case "/channels":
		f.channelsCalls.Add(1)
		f.lastChannels.Store(r.URL.Query())
		if f.channelsStatus != 0 {
			w.WriteHeader(f.channelsStatus)
			_, _ = w.Write([]byte(f.channelsBody))
			return
		}
		items := make([]map[string]any, 0, len(f.channels))
		for _, ch := range f.channels {
			stats := map[string]string{}
			if ch.subscribers != "" {
				stats["subscriberCount"] = ch.subscribers
			}
			items = append(items, map[string]any{
				"id": ch.id,
				"snippet": map[string]any{
					"title":       ch.title,
					"description": ch.title + " description",
					"thumbnails":  map[string]any{"default": map[string]string{"url": "https://img/" + ch.id + ".jpg"}},
				},
				"statistics": stats,
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	default:
		http.NotFound(w, r)
	}
}

func newTestAggregator(t *testing.T, upstream *fakeUpstream, apiKey string) *Aggregator {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	return NewAggregator(youtube.NewClient(apiKey, youtube.WithBaseURL(srv.URL)), nil)
}

func assertNonIncreasing(t *testing.T, got []models.Candidate) {
	t.Helper()
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].SubscriberCount, got[i].SubscriberCount, "position %d", i)
	}
}

func TestSearchEndToEnd(t *testing.T) {
	upstream := &fakeUpstream{
		searchIDs: []string{"UCsmall", "UCbig"},
		channels: []fakeChannel{
			{id: "UCsmall", title: "Small", subscribers: "1200"},
			{id: "UCbig", title: "Big", subscribers: "250000"},
		},
	}
	agg := newTestAggregator(t, upstream, "key")

	got, err := agg.Search(context.Background(), Request{Query: "gaming headsets", RegionCode: "US", MaxResults: "2"})
	require.NoError(t, err)

	assert.EqualValues(t, 1, upstream.searchCalls.Load())
	assert.EqualValues(t, 1, upstream.channelsCalls.Load())

	search := upstream.lastSearch.Load().(url.Values)
	assert.Equal(t, []string{"gaming headsets"}, search["q"])
	assert.Equal(t, []string{"channel"}, search["type"])
	assert.Equal(t, []string{"2"}, search["maxResults"])
	assert.Equal(t, []string{"US"}, search["regionCode"])

	lookup := upstream.lastChannels.Load().(url.Values)
	assert.Equal(t, []string{"UCsmall,UCbig"}, lookup["id"])

	require.Len(t, got, 2)
	assert.Equal(t, models.Candidate{
		ID:              "UCbig",
		Name:            "Big",
		Description:     "Big description",
		Thumbnail:       "https://img/UCbig.jpg",
		Link:            "https://www.youtube.com/channel/UCbig",
		SubscriberCount: 250000,
	}, got[0])
	assert.Equal(t, "UCsmall", got[1].ID)
	assertNonIncreasing(t, got)
}

func TestSearchBatchesLookupIntoOneCall(t *testing.T) {
	upstream := &fakeUpstream{}
	for i := range 25 {
		id := fmt.Sprintf("UC%02d", i)
		upstream.searchIDs = append(upstream.searchIDs, id)
		upstream.channels = append(upstream.channels, fakeChannel{id: id, subscribers: fmt.Sprint((i * 7919) % 1000)})
	}
	agg := newTestAggregator(t, upstream, "key")

	got, err := agg.Search(context.Background(), Request{Query: "cooking", MaxResults: "25"})
	require.NoError(t, err)

	assert.Len(t, got, 25)
	assert.EqualValues(t, 1, upstream.searchCalls.Load())
	assert.EqualValues(t, 1, upstream.channelsCalls.Load())
	lookup := upstream.lastChannels.Load().(url.Values)
	assert.Len(t, strings.Split(lookup["id"][0], ","), 25)
	assertNonIncreasing(t, got)
}

func TestSearchMissingQuery(t *testing.T) {
	upstream := &fakeUpstream{}
	agg := newTestAggregator(t, upstream, "key")

	_, err := agg.Search(context.Background(), Request{RegionCode: "US", MaxResults: "5"})

	de := AsError(err)
	assert.Equal(t, KindInvalidRequest, de.Kind)
	assert.Equal(t, http.StatusBadRequest, de.Status)
	assert.Equal(t, "Query parameter is required", de.Message)
	assert.Zero(t, upstream.searchCalls.Load())
	assert.Zero(t, upstream.channelsCalls.Load())
}

func TestSearchMissingAPIKey(t *testing.T) {
	upstream := &fakeUpstream{searchIDs: []string{"UC1"}}
	agg := newTestAggregator(t, upstream, "")

	_, err := agg.Search(context.Background(), Request{Query: "x"})

	de := AsError(err)
	assert.Equal(t, KindConfiguration, de.Kind)
	assert.Equal(t, http.StatusInternalServerError, de.Status)
	assert.Equal(t, "YouTube API key not configured", de.Message)
	assert.Zero(t, upstream.searchCalls.Load())
}

func TestSearchNoResults(t *testing.T) {
	upstream := &fakeUpstream{}
	agg := newTestAggregator(t, upstream, "key")

	got, err := agg.Search(context.Background(), Request{Query: "zzz-no-such-topic-zzz"})
	require.NoError(t, err)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, upstream.channelsCalls.Load())
	search := upstream.lastSearch.Load().(url.Values)
	assert.Equal(t, []string{"20"}, search["maxResults"])
}

func TestSearchUpstreamFailures(t *testing.T) {
	tests := []struct {
		name       string
		upstream   *fakeUpstream
		wantStatus int
		wantMsg    string
		wantLookup int32
	}{
		{
			name:       "search quota exceeded",
			upstream:   &fakeUpstream{searchStatus: http.StatusForbidden, searchBody: `{"error":{"message":"quota exceeded"}}`},
			wantStatus: http.StatusForbidden,
			wantMsg:    "quota exceeded",
		},
		{
			name:       "search error without message",
			upstream:   &fakeUpstream{searchStatus: http.StatusBadGateway, searchBody: `bad gateway`},
			wantStatus: http.StatusBadGateway,
			wantMsg:    MsgSearchFailed,
		},
		{
			name: "lookup failure",
			upstream: &fakeUpstream{
				searchIDs:      []string{"UC1"},
				channelsStatus: http.StatusBadRequest,
				channelsBody:   `{"error":{"code":400,"message":"invalid id"}}`,
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid id",
			wantLookup: 1,
		},
		{
			name: "lookup error without message",
			upstream: &fakeUpstream{
				searchIDs:      []string{"UC1"},
				channelsStatus: http.StatusServiceUnavailable,
				channelsBody:   `{}`,
			},
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    MsgChannelsFailed,
			wantLookup: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := newTestAggregator(t, tt.upstream, "key")

			got, err := agg.Search(context.Background(), Request{Query: "x"})
			require.Error(t, err)
			assert.Nil(t, got)

			de := AsError(err)
			assert.Equal(t, KindUpstream, de.Kind)
			assert.Equal(t, tt.wantStatus, de.Status)
			assert.Equal(t, tt.wantMsg, de.Message)
			assert.Equal(t, tt.wantLookup, tt.upstream.channelsCalls.Load())
		})
	}
}

func TestSearchMissingSubscriberCountIsZero(t *testing.T) {
	upstream := &fakeUpstream{
		searchIDs: []string{"UChidden", "UCjunk", "UCshown"},
		channels: []fakeChannel{
			{id: "UChidden"},
			{id: "UCjunk", subscribers: "lots"},
			{id: "UCshown", subscribers: "5"},
		},
	}
	agg := newTestAggregator(t, upstream, "key")

	got, err := agg.Search(context.Background(), Request{Query: "x"})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "UCshown", got[0].ID)
	assert.EqualValues(t, 5, got[0].SubscriberCount)
	// ties keep the lookup order
	assert.Equal(t, "UChidden", got[1].ID)
	assert.Equal(t, "UCjunk", got[2].ID)
	assert.Zero(t, got[1].SubscriberCount)
	assert.Zero(t, got[2].SubscriberCount)
}

func TestSearchDeduplicatesIDs(t *testing.T) {
	upstream := &fakeUpstream{
		searchIDs: []string{"UC1", "UC1", "UC2"},
		channels:  []fakeChannel{{id: "UC1", subscribers: "1"}, {id: "UC2", subscribers: "2"}},
	}
	agg := newTestAggregator(t, upstream, "key")

	_, err := agg.Search(context.Background(), Request{Query: "x"})
	require.NoError(t, err)

	lookup := upstream.lastChannels.Load().(url.Values)
	assert.Equal(t, []string{"UC1,UC2"}, lookup["id"])
}

func TestSearchUnreachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	agg := NewAggregator(youtube.NewClient("key", youtube.WithBaseURL(srv.URL)), nil)

	_, err := agg.Search(context.Background(), Request{Query: "x"})

	de := AsError(err)
	assert.Equal(t, KindUpstream, de.Kind)
	assert.Equal(t, http.StatusInternalServerError, de.Status)
	assert.Equal(t, MsgSearchFailed, de.Message)
}

func TestSearchMalformedBodyIsInternal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":`))
	}))
	t.Cleanup(srv.Close)
	agg := NewAggregator(youtube.NewClient("key", youtube.WithBaseURL(srv.URL)), nil)

	_, err := agg.Search(context.Background(), Request{Query: "x"})

	de := AsError(err)
	assert.Equal(t, KindInternal, de.Kind)
	assert.Equal(t, http.StatusInternalServerError, de.Status)
	assert.Equal(t, MsgInternal, de.Message)
}

func TestParseMaxResults(t *testing.T) {
	tests := map[string]int{
		"":    DefaultMaxResults,
		"abc": DefaultMaxResults,
		"-1":  DefaultMaxResults,
		"0":   0,
		"10":  10,
		" 7 ": 7,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseMaxResults(raw), "raw=%q", raw)
	}
}
