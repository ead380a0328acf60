package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kevin930119/CSPQWServer/internal/service/album"
	"github.com/kevin930119/CSPQWServer/internal/service/progress"
	"github.com/kevin930119/CSPQWServer/pkg/ctxutil"
)

type albumService interface {
	ListAlbums(ctx context.Context, openID string, page, pageSize int) (*album.AlbumPage, error)
	ListImages(ctx context.Context, openID string, albumID int64, page, pageSize int) (*album.ImagePage, error)
}

type progressService interface {
	CompleteImage(ctx context.Context, openID string, imageID int64) (int, error)
	NextImage(ctx context.Context, openID string) (*progress.NextImageResult, error)
}

// AlbumHandler serves the catalog and progression endpoints.
type AlbumHandler struct {
	albums   albumService
	progress progressService
	log      *slog.Logger
}

// NewAlbumHandler creates an AlbumHandler.
func NewAlbumHandler(albums albumService, progress progressService, logger *slog.Logger) *AlbumHandler {
	return &AlbumHandler{
		albums:   albums,
		progress: progress,
		log:      logger.With("handler", "album"),
	}
}

type paginationDTO struct {
	Current  int `json:"current"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

type albumDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Cover     string `json:"cover"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

type imageDTO struct {
	ID        int64  `json:"id"`
	ParentID  int64  `json:"parent_id"`
	Name      string `json:"name"`
	Level     int    `json:"level"`
	ListCover string `json:"list_cover"`
	Pic       string `json:"pic"`
	Type      string `json:"type"`
	Completed bool   `json:"completed"`
}

// Albums returns one page of albums, newest-first, decorated with the
// caller's completed counts.
// GET /api/albums?page=1&pageSize=10
func (h *AlbumHandler) Albums(w http.ResponseWriter, r *http.Request) {
	page, err := h.albums.ListAlbums(r.Context(), callerOpenID(r),
		intQuery(r, "page", 0), intQuery(r, "pageSize", 0))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	list := make([]albumDTO, 0, len(page.List))
	for _, a := range page.List {
		list = append(list, albumDTO{
			ID:        a.ID,
			Name:      a.Name,
			Type:      a.Type,
			Cover:     a.Cover,
			Total:     a.Total,
			Completed: a.Completed,
		})
	}

	writeOK(w, map[string]any{
		"list": list,
		"pagination": paginationDTO{
			Current:  page.Pagination.Current,
			PageSize: page.Pagination.PageSize,
			Total:    page.Pagination.Total,
		},
	})
}

// AlbumImages returns one page of an album's images, level ascending.
// GET /api/album/images?parent_id=1&page=1&pageSize=10
func (h *AlbumHandler) AlbumImages(w http.ResponseWriter, r *http.Request) {
	parentID, _ := strconv.ParseInt(r.URL.Query().Get("parent_id"), 10, 64)

	page, err := h.albums.ListImages(r.Context(), callerOpenID(r), parentID,
		intQuery(r, "page", 0), intQuery(r, "pageSize", 0))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	list := make([]imageDTO, 0, len(page.List))
	for _, img := range page.List {
		list = append(list, imageDTO{
			ID:        img.ID,
			ParentID:  img.ParentID,
			Name:      img.Name,
			Level:     img.Level,
			ListCover: img.ListCover,
			Pic:       img.Pic,
			Type:      img.Type,
			Completed: img.Completed,
		})
	}

	writeOK(w, map[string]any{
		"list": list,
		"pagination": paginationDTO{
			Current:  page.Pagination.Current,
			PageSize: page.Pagination.PageSize,
			Total:    page.Pagination.Total,
		},
	})
}

// CompleteImage marks an image completed for the caller and returns the
// caller's score after the operation.
// POST /api/album/image/complete  body: {"image_id": 10}
func (h *AlbumHandler) CompleteImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageID int64 `json:"image_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, codeBadRequest, "invalid request body")
		return
	}

	rank, err := h.progress.CompleteImage(r.Context(), callerOpenID(r), req.ImageID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeOKMessage(w, "marked", map[string]any{"rank": rank})
}

// NextImage resolves the image the caller should work on next. A null data
// payload means every album is fully completed.
// GET /api/album/image/next
func (h *AlbumHandler) NextImage(w http.ResponseWriter, r *http.Request) {
	res, err := h.progress.NextImage(r.Context(), callerOpenID(r))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	if res == nil {
		writeOKMessage(w, "all albums completed", nil)
		return
	}

	writeOK(w, map[string]any{
		"album": map[string]any{
			"id":    res.Album.ID,
			"name":  res.Album.Name,
			"total": res.Album.Total,
		},
		"image": imageDTO{
			ID:        res.Image.ID,
			ParentID:  res.Image.ParentID,
			Name:      res.Image.Name,
			Level:     res.Image.Level,
			ListCover: res.Image.ListCover,
			Pic:       res.Image.Pic,
			Type:      res.Image.Type,
		},
		"index": res.Index,
	})
}

// callerOpenID resolves the caller identity: the gateway header (via
// middleware) wins, the open_id query parameter is the fallback.
func callerOpenID(r *http.Request) string {
	if id, ok := ctxutil.OpenIDFromCtx(r.Context()); ok {
		return id
	}
	return r.URL.Query().Get("open_id")
}

func intQuery(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
