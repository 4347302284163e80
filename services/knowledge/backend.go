package knowledge

import "context"

// SearchTypeHybrid asks the knowledge base to combine semantic and lexical matching.
// It is not configurable per request.
const SearchTypeHybrid = "HYBRID"

// Query is one retrieve call against a knowledge base.
type Query struct {
	KnowledgeBaseID string
	// NumberOfResults is forwarded as received; nil leaves the count to the backend.
	NumberOfResults *int
	SearchType      string
	Text            string
}

// BackendResult is one chunk returned by the knowledge base.
type BackendResult struct {
	Score    float64
	Metadata map[string]any
	Content  string
}

// BackendResponse is the knowledge base answer.
// Results is nil when the response carried no results field.
type BackendResponse struct {
	StatusCode int
	Results    []BackendResult
}

// Backend issues retrieve calls against a knowledge base in a given region.
type Backend interface {
	Retrieve(ctx context.Context, region string, q Query) (*BackendResponse, error)
}
