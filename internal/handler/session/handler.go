package session

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/resubscribe/resubscribe-go/pkg/resubscribe"
	"github.com/resubscribe/resubscribe-go/pkg/utils"
)

// Handler 会话状态机的HTTP处理器
type Handler struct {
	client *resubscribe.Client
	logger zerolog.Logger
}

// New 创建会话处理器
func New(client *resubscribe.Client, logger zerolog.Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger.With().Str("handler", "session").Logger(),
	}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/session", h.handleGetView)
	r.Post("/session", h.handleOpen)
	r.Post("/session/accept", h.transition(h.client.Accept))
	r.Post("/session/cancel", h.transition(h.client.Cancel))
	r.Post("/session/close", h.transition(h.client.Close))
}

type colorsPayload struct {
	Primary    string `json:"primary"`
	Text       string `json:"text"`
	Background string `json:"background"`
}

type openPayload struct {
	Slug              string         `json:"slug"`
	APIKey            string         `json:"apiKey"`
	AIType            string         `json:"aiType"`
	UserID            string         `json:"userId"`
	UserEmail         *string        `json:"userEmail,omitempty"`
	Title             *string        `json:"title,omitempty"`
	Description       *string        `json:"description,omitempty"`
	PrimaryButtonText *string        `json:"primaryButtonText,omitempty"`
	CancelButtonText  *string        `json:"cancelButtonText,omitempty"`
	Colors            *colorsPayload `json:"colors,omitempty"`
}

// options 把请求体转换为会话参数
func (p openPayload) options(onClose resubscribe.OnCloseFunc) (*resubscribe.Options, error) {
	aiType, err := resubscribe.ParseAIType(p.AIType)
	if err != nil && p.AIType != "" {
		return nil, err
	}

	var opts []resubscribe.Option
	if p.UserEmail != nil {
		opts = append(opts, resubscribe.WithUserEmail(*p.UserEmail))
	}
	if p.Title != nil {
		opts = append(opts, resubscribe.WithTitle(*p.Title))
	}
	if p.Description != nil {
		opts = append(opts, resubscribe.WithDescription(*p.Description))
	}
	if p.PrimaryButtonText != nil {
		opts = append(opts, resubscribe.WithPrimaryButtonText(*p.PrimaryButtonText))
	}
	if p.CancelButtonText != nil {
		opts = append(opts, resubscribe.WithCancelButtonText(*p.CancelButtonText))
	}
	if p.Colors != nil {
		colors, err := resubscribe.NewColorScheme(p.Colors.Primary, p.Colors.Text, p.Colors.Background)
		if err != nil {
			return nil, err
		}
		opts = append(opts, resubscribe.WithColors(colors))
	}
	opts = append(opts, resubscribe.WithOnClose(onClose))

	return resubscribe.NewOptions(p.Slug, p.APIKey, aiType, p.UserID, opts...)
}

// handleGetView 返回当前视图
func (h *Handler) handleGetView(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.client.View())
}

// handleOpen 开启新的同意流程
func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	var payload openPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	slug := payload.Slug
	opts, err := payload.options(func(reason resubscribe.CloseReason) {
		h.logger.Info().Str("slug", slug).Str("reason", reason.String()).Msg("session closed")
	})
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.client.OpenWithConsent(opts); err != nil {
		h.respondTransitionError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, h.client.View())
}

// transition 包装 accept/cancel/close 动作
func (h *Handler) transition(action func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := action(); err != nil {
			h.respondTransitionError(w, err)
			return
		}
		utils.RespondJSON(w, http.StatusOK, h.client.View())
	}
}

func (h *Handler) respondTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, resubscribe.ErrSessionActive), errors.Is(err, resubscribe.ErrInvalidTransition):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, resubscribe.ErrNilOptions):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("unexpected transition error")
		utils.RespondError(w, http.StatusInternalServerError, "transition failed")
	}
}
