package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/promiedos/dashboard-pro/internal/platform/logging"
	"github.com/promiedos/dashboard-pro/internal/usecase"
)

type Handler struct {
	feed          *usecase.FeedService
	analysis      *usecase.AnalysisService
	betting       *usecase.BettingService
	defaultLeague string
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	feed *usecase.FeedService,
	analysis *usecase.AnalysisService,
	betting *usecase.BettingService,
	defaultLeague string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultLeague == "" {
		defaultLeague = "PL"
	}

	return &Handler{
		feed:          feed,
		analysis:      analysis,
		betting:       betting,
		defaultLeague: defaultLeague,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
