package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kevin930119/CSPQWServer/internal/domain"
)

type userService interface {
	RegisterOrFetch(ctx context.Context, openID string) (*domain.User, error)
	Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// UserHandler serves registration and leaderboard endpoints.
type UserHandler struct {
	users userService
	log   *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users: users,
		log:   logger.With("handler", "user"),
	}
}

// WxOpenID registers the caller on first contact and returns their profile.
// Only requests relayed by the WeChat gateway carry x-wx-source; anything
// else is rejected.
// GET /api/wx_openid
func (h *UserHandler) WxOpenID(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("x-wx-source") == "" {
		writeFail(w, codeBadRequest, "invalid request")
		return
	}

	u, err := h.users.RegisterOrFetch(r.Context(), r.Header.Get("x-wx-openid"))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeOK(w, map[string]any{
		"open_id":  u.OpenID,
		"nickname": u.Nickname,
		"icon":     u.Icon,
		"rank":     u.Rank,
	})
}

// Rank returns the leaderboard: top users by score with 1-based positions.
// GET /api/rank
func (h *UserHandler) Rank(w http.ResponseWriter, r *http.Request) {
	entries, err := h.users.Leaderboard(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	list := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		list = append(list, map[string]any{
			"rank": e.Position,
			"user": map[string]any{
				"icon":     e.Icon,
				"nickname": e.Nickname,
				"score":    e.Score,
			},
		})
	}

	writeOK(w, map[string]any{"list": list})
}
