package pixabay

import (
	"strings"

	"github.com/mmcdole/pixa/internal/domain"
)

// MapPage converts a search response to a domain page
func MapPage(resp *SearchResponse) *domain.PageResult {
	total := domain.UnknownTotal
	if resp.TotalHits != nil {
		total = *resp.TotalHits
	}
	return &domain.PageResult{
		Items:     MapPhotos(resp.Hits),
		TotalHits: total,
		Total:     resp.Total,
	}
}

// MapPhotos converts hits to domain photos, preserving order
func MapPhotos(hits []Hit) []domain.Photo {
	photos := make([]domain.Photo, 0, len(hits))
	for _, h := range hits {
		photos = append(photos, domain.Photo{
			ID:            h.ID,
			PageURL:       h.PageURL,
			PreviewURL:    h.PreviewURL,
			WebformatURL:  h.WebformatURL,
			LargeImageURL: h.LargeImageURL,
			Tags:          splitTags(h.Tags),
			Likes:         h.Likes,
			Views:         h.Views,
			Comments:      h.Comments,
			Downloads:     h.Downloads,
			User:          h.User,
			Width:         h.ImageWidth,
			Height:        h.ImageHeight,
		})
	}
	return photos
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
