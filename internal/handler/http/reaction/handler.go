package reaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/handler/http/respond"
	reactUC "spectrum-feed/internal/usecase/reaction"
)

// Service is the reaction use case consumed by the handlers.
type Service interface {
	Create(ctx context.Context, in reactUC.CreateInput) (*entity.Reaction, error)
	Summary(ctx context.Context, articleID string) ([]entity.ReactionCount, error)
	Get(ctx context.Context, userID, articleID string) (*entity.Reaction, error)
}

// Register registers the reaction routes.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("POST /reactions", CreateHandler{Svc: svc})
	mux.Handle("GET /reactions", SummaryHandler{Svc: svc})
}

// CreateHandler serves POST /reactions.
type CreateHandler struct{ Svc Service }

// ServeHTTP リアクション登録
// @Summary      リアクション登録
// @Description  記事への絵文字リアクションを記録します。同じユーザーの同じ記事へのリアクションは上書きされます
// @Tags         reactions
// @Accept       json
// @Produce      json
// @Param        reaction body CreateRequest true "リアクション"
// @Success      201 {object} DTO "登録されたリアクション"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      429 {string} string "Too many requests - rate limit exceeded"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /reactions [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.SafeError(w, http.StatusRequestEntityTooLarge, errors.New("request body too long"))
			return
		}
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	reaction, err := h.Svc.Create(r.Context(), reactUC.CreateInput{
		UserID:    req.UserID,
		ArticleID: req.ArticleID,
		Emoji:     req.Emoji,
		ReactedAt: req.Timestamp.Time,
	})
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, reactUC.ErrInvalidReaction) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(reaction))
}

// SummaryHandler serves GET /reactions?articleId=.
type SummaryHandler struct{ Svc Service }

// ServeHTTP リアクション集計取得
// @Summary      リアクション集計取得
// @Description  記事ごとの絵文字別リアクション数を返します
// @Tags         reactions
// @Produce      json
// @Param        articleId query string true "記事ID（正規URL）"
// @Param        userId query string false "指定するとそのユーザーのリアクションを mine に含める"
// @Success      200 {object} SummaryDTO "絵文字別の件数"
// @Failure      400 {string} string "Bad request - articleId is required"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /reactions [get]
func (h SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID := strings.TrimSpace(r.URL.Query().Get("articleId"))
	if articleID == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("articleId is required"))
		return
	}

	counts, err := h.Svc.Summary(r.Context(), articleID)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, reactUC.ErrInvalidReaction) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	out := SummaryDTO{ArticleID: articleID, Counts: make([]entity.ReactionCount, 0, len(counts))}
	for _, c := range counts {
		out.Total += c.Count
		out.Counts = append(out.Counts, c)
	}

	if userID := strings.TrimSpace(r.URL.Query().Get("userId")); userID != "" {
		mine, err := h.Svc.Get(r.Context(), userID, articleID)
		switch {
		case err == nil:
			dto := toDTO(mine)
			out.Mine = &dto
		case errors.Is(err, reactUC.ErrReactionNotFound):
			// 未リアクションは mine なし
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	respond.JSON(w, http.StatusOK, out)
}
