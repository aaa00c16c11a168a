package models

import (
	"strconv"
	"strings"
)

// ChannelLinkPrefix is prepended to a channel id to form its public profile link
const ChannelLinkPrefix = "https://www.youtube.com/channel/"

// Candidate is one ranked creator returned by the discovery search
type Candidate struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Thumbnail       string `json:"thumbnail"`
	Link            string `json:"link"`
	SubscriberCount int64  `json:"subscriberCount"`
}

// ChannelProfile is a Candidate with the remaining channel statistics
type ChannelProfile struct {
	Candidate
	ViewCount  int64 `json:"viewCount"`
	VideoCount int64 `json:"videoCount"`
}

// ChannelResponse represents the channels.list response from the YouTube API.
// Statistics stay strings so that a malformed count degrades to zero instead
// of failing the whole decode.
type ChannelResponse struct {
	Items []ChannelItem `json:"items"`
}

// ChannelItem is a single channel in a ChannelResponse
type ChannelItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Thumbnails  struct {
			Default struct {
				URL string `json:"url"`
			} `json:"default"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		SubscriberCount string `json:"subscriberCount"`
		ViewCount       string `json:"viewCount"`
		VideoCount      string `json:"videoCount"`
	} `json:"statistics"`
}

// Candidate converts the channel item into a Candidate
func (item ChannelItem) Candidate() Candidate {
	return Candidate{
		ID:              item.ID,
		Name:            item.Snippet.Title,
		Description:     item.Snippet.Description,
		Thumbnail:       item.Snippet.Thumbnails.Default.URL,
		Link:            ChannelLink(item.ID),
		SubscriberCount: ParseCount(item.Statistics.SubscriberCount),
	}
}

// ChannelLink returns the canonical profile URL for a channel id
func ChannelLink(channelID string) string {
	return ChannelLinkPrefix + channelID
}

// ParseCount parses a decimal statistics value. Missing, negative or
// non-numeric values count as zero.
func ParseCount(raw string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
