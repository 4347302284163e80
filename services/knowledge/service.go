package knowledge

import (
	"context"
	"net/http"
	"time"

	"github.com/upb/external-knowledge-api/internal/observability"
	"github.com/upb/external-knowledge-api/internal/rag"
	"go.uber.org/zap"
)

// Service answers retrieval requests from a knowledge base backend.
type Service struct {
	backend       Backend
	defaultRegion string
	logger        *zap.Logger
	metrics       *observability.Metrics
}

// NewService creates a new retrieval service. metrics may be nil.
func NewService(backend Backend, defaultRegion string, logger *zap.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		backend:       backend,
		defaultRegion: defaultRegion,
		logger:        logger,
		metrics:       metrics,
	}
}

// DefaultRegion returns the region used for knowledge ids without a region prefix.
// Empty means the AWS SDK region chain decides.
func (s *Service) DefaultRegion() string {
	return s.defaultRegion
}

// Retrieve queries the knowledge base named by knowledgeID and returns the
// records whose score reaches the requested threshold, in backend order.
//
// A non-success status or a missing results field yields an empty response.
// Backend call errors are returned as-is.
func (s *Service) Retrieve(ctx context.Context, setting rag.RetrievalSetting, query, knowledgeID string) (*rag.RetrievalResponse, error) {
	target := ParseKnowledgeID(knowledgeID, s.defaultRegion)

	q := Query{
		KnowledgeBaseID: target.KnowledgeBaseID,
		NumberOfResults: setting.TopK,
		SearchType:      SearchTypeHybrid,
		Text:            query,
	}

	start := time.Now()
	resp, err := s.backend.Retrieve(ctx, target.Region, q)
	s.metrics.RecordBackendLatency(target.RegionLabel(), time.Since(start))
	if err != nil {
		s.metrics.RecordRetrieval(observability.StatusBackendError, 0)
		return nil, err
	}

	if resp == nil || resp.StatusCode != http.StatusOK || resp.Results == nil {
		statusCode := 0
		if resp != nil {
			statusCode = resp.StatusCode
		}
		s.logger.Debug("knowledge base returned no usable results",
			zap.String("region", target.RegionLabel()),
			zap.String("knowledge_base_id", target.KnowledgeBaseID),
			zap.Int("status_code", statusCode))
		s.metrics.RecordRetrieval(observability.StatusEmpty, 0)
		return rag.EmptyResponse(), nil
	}

	records := FilterRecords(resp.Results, setting.Threshold())

	s.logger.Debug("knowledge base retrieval completed",
		zap.String("region", target.RegionLabel()),
		zap.String("knowledge_base_id", target.KnowledgeBaseID),
		zap.Int("results", len(resp.Results)),
		zap.Int("records", len(records)))

	status := observability.StatusOK
	if len(records) == 0 {
		status = observability.StatusEmpty
	}
	s.metrics.RecordRetrieval(status, len(records))

	return &rag.RetrievalResponse{Records: records}, nil
}

// FilterRecords keeps the results scoring at least threshold and maps them to
// records. Order is preserved.
func FilterRecords(results []BackendResult, threshold float64) []rag.Record {
	records := make([]rag.Record, 0, len(results))
	for _, result := range results {
		if result.Score < threshold {
			continue
		}
		records = append(records, newRecord(result))
	}
	return records
}

func newRecord(result BackendResult) rag.Record {
	metadata := result.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return rag.Record{
		Metadata: metadata,
		Score:    result.Score,
		Title:    metadata[rag.TitleMetadataKey],
		Content:  result.Content,
	}
}
