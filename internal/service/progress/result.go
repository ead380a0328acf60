package progress

import "github.com/kevin930119/CSPQWServer/internal/domain"

// AlbumSummary is the album projection returned alongside the next image.
type AlbumSummary struct {
	ID    int64
	Name  string
	Total int
}

// ImageSummary is the image projection returned to the client.
type ImageSummary struct {
	ID        int64
	ParentID  int64
	Name      string
	Level     int
	ListCover string
	Pic       string
	Type      string
}

// NextImageResult is the resolver's answer: the album to open, the image to
// show, and the image's zero-based index within the album's level-ordered
// sequence. A nil *NextImageResult means every album is fully completed.
type NextImageResult struct {
	Album AlbumSummary
	Image ImageSummary
	Index int
}

func newResult(album *domain.Album, img *domain.AlbumImage, index int) *NextImageResult {
	return &NextImageResult{
		Album: AlbumSummary{
			ID:    album.ID,
			Name:  album.Name,
			Total: album.Total,
		},
		Image: ImageSummary{
			ID:        img.ID,
			ParentID:  img.ParentID,
			Name:      img.Name,
			Level:     img.Level,
			ListCover: img.ListCover,
			Pic:       img.Pic,
			Type:      img.Type,
		},
		Index: index,
	}
}
