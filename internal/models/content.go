package models

import (
	"encoding/json"
	"time"
)

// Document types stored in the content store
const (
	DocumentTypeCreator  = "creator"
	DocumentTypeCampaign = "campaign"
	DocumentTypeContract = "contract"
)

// Document holds the system fields every stored record carries
type Document struct {
	ID        string    `json:"_id"`
	Type      string    `json:"_type"`
	Rev       string    `json:"_rev,omitempty"`
	CreatedAt time.Time `json:"_createdAt"`
	UpdatedAt time.Time `json:"_updatedAt"`
}

// Reference points at another document
type Reference struct {
	Ref string `json:"_ref"`
}

// BilingualText is a field authored in English and Hindi
type BilingualText struct {
	English string `json:"english"`
	Hindi   string `json:"hindi,omitempty"`
}

// BilingualBlocks is rich text authored in English and Hindi. Blocks are
// kept as raw portable-text JSON.
type BilingualBlocks struct {
	English json.RawMessage `json:"english,omitempty"`
	Hindi   json.RawMessage `json:"hindi,omitempty"`
}

// Image is an image field; Asset references an image-<id>-<w>x<h>-<ext> asset
type Image struct {
	Asset Reference `json:"asset"`
	URL   string    `json:"url,omitempty"`
}

// SocialAccount is one platform presence of a creator
type SocialAccount struct {
	Platform  string `json:"platform,omitempty"`
	Handle    string `json:"handle,omitempty"`
	URL       string `json:"url,omitempty"`
	Followers int64  `json:"followers,omitempty"`
}

// GenderDistribution is the audience split in percent
type GenderDistribution struct {
	Male   float64 `json:"male,omitempty"`
	Female float64 `json:"female,omitempty"`
	Other  float64 `json:"other,omitempty"`
}

// AudienceDemographics describes who follows a creator
type AudienceDemographics struct {
	AgeGroups          []string            `json:"ageGroups,omitempty"`
	TopLocations       []string            `json:"topLocations,omitempty"`
	GenderDistribution *GenderDistribution `json:"genderDistribution,omitempty"`
}

// CreatorMetrics are self-reported reach figures
type CreatorMetrics struct {
	AverageEngagementRate float64               `json:"averageEngagementRate,omitempty"`
	AverageReachPerPost   float64               `json:"averageReachPerPost,omitempty"`
	AudienceDemographics  *AudienceDemographics `json:"audienceDemographics,omitempty"`
}

// CreatorPricing lists rates per deliverable
type CreatorPricing struct {
	PostRate  float64 `json:"postRate,omitempty"`
	StoryRate float64 `json:"storyRate,omitempty"`
	VideoRate float64 `json:"videoRate,omitempty"`
}

// Creator is a managed influencer profile
type Creator struct {
	Document
	Name         string          `json:"name"`
	Bio          BilingualText   `json:"bio"`
	ProfileImage *Image          `json:"profileImage,omitempty"`
	SocialMedia  []SocialAccount `json:"socialMedia,omitempty"`
	Categories   []string        `json:"categories,omitempty"`
	Languages    []string        `json:"languages,omitempty"`
	Metrics      *CreatorMetrics `json:"metrics,omitempty"`
	Pricing      *CreatorPricing `json:"pricing,omitempty"`
	Status       string          `json:"status,omitempty"`
}

// Budget is an amount in a currency
type Budget struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Timeline bounds a campaign
type Timeline struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// CampaignRequirements describes what a campaign asks of creators
type CampaignRequirements struct {
	Platforms    []string `json:"platforms,omitempty"`
	ContentTypes []string `json:"contentTypes,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	Languages    []string `json:"languages,omitempty"`
}

// CampaignMetrics are campaign results
type CampaignMetrics struct {
	TotalReach            int64   `json:"totalReach,omitempty"`
	TotalEngagements      int64   `json:"totalEngagements,omitempty"`
	AverageEngagementRate float64 `json:"averageEngagementRate,omitempty"`
	TotalImpressions      int64   `json:"totalImpressions,omitempty"`
	ROI                   float64 `json:"roi,omitempty"`
}

// Campaign is a brand brief matched against creators
type Campaign struct {
	Document
	Title            BilingualText         `json:"title"`
	Brand            *Reference            `json:"brand,omitempty"`
	Description      BilingualText         `json:"description"`
	Budget           *Budget               `json:"budget,omitempty"`
	Timeline         *Timeline             `json:"timeline,omitempty"`
	Requirements     *CampaignRequirements `json:"requirements,omitempty"`
	Status           string                `json:"status"`
	SelectedCreators []Reference           `json:"selectedCreators,omitempty"`
	Metrics          *CampaignMetrics      `json:"metrics,omitempty"`
}

// ContractVariable is a placeholder filled in when a contract is issued
type ContractVariable struct {
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// ContractTemplate is a reusable agreement between brand and creator
type ContractTemplate struct {
	Document
	Title           BilingualText      `json:"title"`
	Description     BilingualText      `json:"description"`
	TemplateContent BilingualBlocks    `json:"templateContent"`
	Variables       []ContractVariable `json:"variables,omitempty"`
	Terms           BilingualBlocks    `json:"terms"`
	Category        string             `json:"category,omitempty"`
	Status          string             `json:"status,omitempty"`
	Version         string             `json:"version"`
	LastUpdated     *time.Time         `json:"lastUpdated,omitempty"`
}
