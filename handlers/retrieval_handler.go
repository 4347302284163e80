package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/upb/external-knowledge-api/app"
	"github.com/upb/external-knowledge-api/internal/observability"
	"github.com/upb/external-knowledge-api/internal/rag"
	"github.com/upb/external-knowledge-api/middleware"
	"github.com/upb/external-knowledge-api/services"
	"github.com/upb/external-knowledge-api/utils"
	"go.uber.org/zap"
)

// RetrievalService defines the interface for knowledge retrieval
type RetrievalService interface {
	Retrieve(ctx context.Context, setting rag.RetrievalSetting, query, knowledgeID string) (*rag.RetrievalResponse, error)
}

// KnowledgeHandler handles knowledge retrieval HTTP requests
type KnowledgeHandler struct {
	service RetrievalService
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewKnowledgeHandler creates a new KnowledgeHandler. metrics may be nil.
func NewKnowledgeHandler(service RetrievalService, logger *zap.Logger, metrics *observability.Metrics) *KnowledgeHandler {
	return &KnowledgeHandler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// RetrievalHandler returns the POST /retrieval handler wired from deps
func RetrievalHandler(deps *app.Dependencies) http.HandlerFunc {
	return NewKnowledgeHandler(deps.Retrieval, deps.Logger, deps.Metrics).HandleRetrieval
}

// HandleRetrieval handles POST /retrieval.
// Authentication has already happened in middleware.
func (h *KnowledgeHandler) HandleRetrieval(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req rag.RetrievalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.metrics.RecordRetrieval(observability.StatusInvalid, 0)
		HandleServiceError(w, services.WrapValidation(services.ErrInvalidBody.Message, err), h.logger)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		h.logger.Warn("request validation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.metrics.RecordRetrieval(observability.StatusInvalid, 0)
		HandleValidationError(w, err, h.logger)
		return
	}

	setting := *req.RetrievalSetting
	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("query", *req.Query),
		zap.String("knowledge_id", *req.KnowledgeID),
		zap.Float64("score_threshold", setting.Threshold()),
	}
	if setting.TopK != nil {
		fields = append(fields, zap.Int("top_k", *setting.TopK))
	}
	h.logger.Info("received retrieval request", fields...)

	result, err := h.service.Retrieve(ctx, setting, *req.Query, *req.KnowledgeID)
	if err != nil {
		h.logger.Error("failed to retrieve from knowledge base",
			zap.String("request_id", requestID),
			zap.String("knowledge_id", *req.KnowledgeID),
			zap.Error(err))
		HandleServiceError(w, services.WrapExternal("knowledge base retrieval failed", err), h.logger)
		return
	}

	h.logger.Info("returning retrieval result",
		zap.String("request_id", requestID),
		zap.Int("records", len(result.Records)))

	if err := utils.WriteOK(w, result); err != nil {
		h.logger.Error("failed to write retrieval response",
			zap.String("request_id", requestID),
			zap.Error(err))
	}
}
