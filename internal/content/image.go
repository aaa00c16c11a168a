package content

import (
	"errors"
	"fmt"
	"strings"
)

const imageCDN = "https://cdn.sanity.io/images"

var ErrInvalidImageRef = errors.New("invalid image asset reference")

// ImageURL turns an asset reference of the form image-<id>-<w>x<h>-<ext>
// into its CDN URL.
func (c *Client) ImageURL(ref string) (string, error) {
	if c.cfg.ProjectID == "" {
		return "", ErrNotConfigured
	}

	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" {
		return "", fmt.Errorf("%w: %q", ErrInvalidImageRef, ref)
	}
	id, dims, ext := parts[1], parts[2], parts[3]

	var w, h int
	if _, err := fmt.Sscanf(dims, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 || id == "" || ext == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidImageRef, ref)
	}

	return fmt.Sprintf("%s/%s/%s/%s-%s.%s", imageCDN, c.cfg.ProjectID, c.cfg.Dataset, id, dims, ext), nil
}
