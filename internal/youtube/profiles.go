package youtube

import (
	"context"
	"errors"
	"fmt"

	"github.com/influencer-hub/internal/models"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// ErrChannelNotFound is returned when channels.list has no item for the id
var ErrChannelNotFound = errors.New("channel not found")

// Profiles looks up single channels through the generated API client
type Profiles struct {
	service *yt.Service
}

// NewProfiles creates the typed YouTube service. Extra options are
// appended after the API key, so tests can override the endpoint.
func NewProfiles(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Profiles, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Profiles{service: service}, nil
}

// GetChannel fetches snippet and statistics for one channel
func (p *Profiles) GetChannel(ctx context.Context, channelID string) (*models.ChannelProfile, error) {
	response, err := p.service.Channels.List([]string{"snippet", "statistics"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(response.Items) == 0 {
		return nil, ErrChannelNotFound
	}

	channel := response.Items[0]
	profile := &models.ChannelProfile{
		Candidate: models.Candidate{
			ID:   channel.Id,
			Link: models.ChannelLink(channel.Id),
		},
	}
	if s := channel.Snippet; s != nil {
		profile.Name = s.Title
		profile.Description = s.Description
		if s.Thumbnails != nil && s.Thumbnails.Default != nil {
			profile.Thumbnail = s.Thumbnails.Default.Url
		}
	}
	if st := channel.Statistics; st != nil {
		if !st.HiddenSubscriberCount {
			profile.SubscriberCount = int64(st.SubscriberCount)
		}
		profile.ViewCount = int64(st.ViewCount)
		profile.VideoCount = int64(st.VideoCount)
	}
	return profile, nil
}
