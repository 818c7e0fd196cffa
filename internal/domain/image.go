package domain

import "fmt"

// ImageItem is one labeled entry of the image pool. Items are immutable once loaded.
type ImageItem struct {
	ID          string `json:"id" yaml:"id"`
	Locator     string `json:"locator" yaml:"locator"`
	AIGenerated bool   `json:"ai_generated" yaml:"ai_generated"`
}

// ImagePool is the fixed, ordered list of images a session samples from.
type ImagePool []ImageItem

// Validate checks that ids are unique and non-empty, locators are set, and the pool
// can fill a whole session.
func (p ImagePool) Validate() error {
	seen := make(map[string]struct{}, len(p))
	for i, item := range p {
		if item.ID == "" {
			return fmt.Errorf("image %d: id is required", i)
		}
		if item.Locator == "" {
			return fmt.Errorf("image %s: locator is required", item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("image %s: duplicate id", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	if len(p) < QuestionCount {
		return fmt.Errorf("%w: pool has %d images, a session needs %d", ErrNotEnoughImages, len(p), QuestionCount)
	}
	return nil
}

// Find returns the image with the given id.
func (p ImagePool) Find(id string) (ImageItem, bool) {
	for _, item := range p {
		if item.ID == id {
			return item, true
		}
	}
	return ImageItem{}, false
}
