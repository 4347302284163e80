package rag

// TitleMetadataKey is the metadata key whose value becomes a record's title.
const TitleMetadataKey = "x-amz-bedrock-kb-source-uri"

// DefaultScoreThreshold applies when a request does not set score_threshold.
const DefaultScoreThreshold = 0.0

// RetrievalRequest is the body of POST /retrieval.
// Fields are pointers so that absent and empty values can be told apart;
// presence is the only thing validated at the boundary.
type RetrievalRequest struct {
	Query            *string           `json:"query" validate:"required"`
	RetrievalSetting *RetrievalSetting `json:"retrieval_setting" validate:"required"`
	KnowledgeID      *string           `json:"knowledge_id" validate:"required"`
}

// RetrievalSetting carries the recognized retrieval options.
// Unknown keys in the request body are ignored.
type RetrievalSetting struct {
	// TopK is forwarded to the knowledge base unvalidated; nil lets the backend decide.
	TopK *int `json:"top_k,omitempty"`

	// ScoreThreshold is the minimum score a record must reach; nil means DefaultScoreThreshold.
	ScoreThreshold *float64 `json:"score_threshold,omitempty"`
}

// Threshold returns the effective score threshold.
func (s RetrievalSetting) Threshold() float64 {
	if s.ScoreThreshold == nil {
		return DefaultScoreThreshold
	}
	return *s.ScoreThreshold
}

// Record is one retrieved chunk.
type Record struct {
	Metadata map[string]any `json:"metadata"`
	Score    float64        `json:"score"`
	Title    any            `json:"title"` // may be null when the source uri is absent
	Content  string         `json:"content"`
}

// RetrievalResponse is the body returned on success.
type RetrievalResponse struct {
	Records []Record `json:"records"`
}

// EmptyResponse returns a response that serializes as {"records": []}.
func EmptyResponse() *RetrievalResponse {
	return &RetrievalResponse{Records: []Record{}}
}
