package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/document"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	smithydocument "github.com/aws/smithy-go/document"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/upb/external-knowledge-api/config"
	"github.com/upb/external-knowledge-api/services/knowledge"
	"go.uber.org/zap"
)

// RetrieveAPI is the subset of the Bedrock Agent Runtime client used here,
// enabling mock injection for testing.
type RetrieveAPI interface {
	Retrieve(
		ctx context.Context,
		params *bedrockagentruntime.RetrieveInput,
		optFns ...func(*bedrockagentruntime.Options),
	) (*bedrockagentruntime.RetrieveOutput, error)
}

// ClientFactory returns a Retrieve client bound to a region.
type ClientFactory func(ctx context.Context, region string) (RetrieveAPI, error)

// NewClientFactory returns a factory building a fresh regional client per call
// from the default AWS configuration chain, optionally overridden by cfg.
// An empty region falls back to the region the SDK resolves from the environment.
func NewClientFactory(cfg config.BedrockConfig) ClientFactory {
	return func(ctx context.Context, region string) (RetrieveAPI, error) {
		var opts []func(*awsconfig.LoadOptions) error
		// An empty region leaves resolution to the SDK chain (AWS_REGION, profile).
		if region != "" {
			opts = append(opts, awsconfig.WithRegion(region))
		}
		if cfg.HasStaticCredentials() {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)))
		}
		if cfg.MaxAttempts > 0 {
			opts = append(opts, awsconfig.WithRetryMaxAttempts(cfg.MaxAttempts))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		return bedrockagentruntime.NewFromConfig(awsCfg, func(o *bedrockagentruntime.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
		}), nil
	}
}

// Client implements knowledge.Backend over Bedrock knowledge bases.
type Client struct {
	newClient ClientFactory
	logger    *zap.Logger
}

var _ knowledge.Backend = (*Client)(nil)

// NewClient creates a new knowledge base client
func NewClient(factory ClientFactory, logger *zap.Logger) *Client {
	return &Client{
		newClient: factory,
		logger:    logger,
	}
}

// Retrieve runs one Retrieve call in region. Errors from the SDK are returned unwrapped.
func (c *Client) Retrieve(ctx context.Context, region string, q knowledge.Query) (*knowledge.BackendResponse, error) {
	input, err := buildRetrieveInput(q)
	if err != nil {
		return nil, err
	}

	api, err := c.newClient(ctx, region)
	if err != nil {
		return nil, err
	}

	output, err := api.Retrieve(ctx, input)
	if err != nil {
		c.logger.Debug("bedrock retrieve failed",
			zap.String("region", region),
			zap.String("knowledge_base_id", q.KnowledgeBaseID),
			zap.Error(err))
		return nil, err
	}

	return c.convertOutput(output), nil
}

// buildRetrieveInput maps q onto the SDK input. numberOfResults is an int32 on
// the wire, so values outside that range are rejected instead of truncated.
func buildRetrieveInput(q knowledge.Query) (*bedrockagentruntime.RetrieveInput, error) {
	vector := &types.KnowledgeBaseVectorSearchConfiguration{
		OverrideSearchType: types.SearchType(q.SearchType),
	}
	if q.NumberOfResults != nil {
		n := *q.NumberOfResults
		if n > math.MaxInt32 || n < math.MinInt32 {
			return nil, fmt.Errorf("numberOfResults %d out of range", n)
		}
		vector.NumberOfResults = aws.Int32(int32(n))
	}

	return &bedrockagentruntime.RetrieveInput{
		KnowledgeBaseId: aws.String(q.KnowledgeBaseID),
		RetrievalQuery: &types.KnowledgeBaseQuery{
			Text: aws.String(q.Text),
		},
		RetrievalConfiguration: &types.KnowledgeBaseRetrievalConfiguration{
			VectorSearchConfiguration: vector,
		},
	}, nil
}

func (c *Client) convertOutput(output *bedrockagentruntime.RetrieveOutput) *knowledge.BackendResponse {
	if output == nil {
		return &knowledge.BackendResponse{}
	}

	resp := &knowledge.BackendResponse{
		StatusCode: statusCode(output),
	}
	if output.RetrievalResults == nil {
		return resp
	}

	resp.Results = make([]knowledge.BackendResult, 0, len(output.RetrievalResults))
	for _, result := range output.RetrievalResults {
		converted := knowledge.BackendResult{
			Score:    aws.ToFloat64(result.Score),
			Metadata: c.decodeMetadata(result.Metadata),
		}
		if result.Content != nil {
			converted.Content = aws.ToString(result.Content.Text)
		}
		resp.Results = append(resp.Results, converted)
	}
	return resp
}

// statusCode reads the HTTP status from the raw response recorded by the SDK.
// The SDK only returns an output for successful calls, so a missing raw
// response is treated as 200.
func statusCode(output *bedrockagentruntime.RetrieveOutput) int {
	if raw, ok := awsmiddleware.GetRawResponse(output.ResultMetadata).(*smithyhttp.Response); ok && raw != nil && raw.Response != nil {
		return raw.StatusCode
	}
	return http.StatusOK
}

func (c *Client) decodeMetadata(metadata map[string]document.Interface) map[string]any {
	if metadata == nil {
		return nil
	}

	out := make(map[string]any, len(metadata))
	for key, doc := range metadata {
		if doc == nil {
			out[key] = nil
			continue
		}
		var value any
		if err := doc.UnmarshalSmithyDocument(&value); err != nil {
			c.logger.Warn("failed to decode metadata value",
				zap.String("key", key),
				zap.Error(err))
			continue
		}
		out[key] = normalizeDocument(value)
	}
	return out
}

// normalizeDocument converts smithy document numbers into json.Number so they
// serialize as JSON numbers rather than strings.
func normalizeDocument(v any) any {
	switch val := v.(type) {
	case smithydocument.Number:
		return json.Number(val)
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeDocument(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeDocument(item)
		}
		return val
	default:
		return val
	}
}
