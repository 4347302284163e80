package knowledge

import "strings"

// SDKDefaultRegion labels a target whose region is resolved by the AWS SDK chain.
const SDKDefaultRegion = "sdk-default"

// Target is the knowledge base a retrieval is sent to.
// An empty Region defers to the AWS SDK region chain.
type Target struct {
	Region          string
	KnowledgeBaseID string
}

// ParseKnowledgeID resolves a knowledge id of the form "<region>:<kb-id>" or "<kb-id>".
// Anything that does not split into exactly two parts on ':' is used verbatim
// as the knowledge base id in the default region.
func ParseKnowledgeID(id, defaultRegion string) Target {
	parts := strings.Split(id, ":")
	if len(parts) == 2 {
		return Target{Region: parts[0], KnowledgeBaseID: parts[1]}
	}
	return Target{Region: defaultRegion, KnowledgeBaseID: id}
}

// RegionLabel returns the region for logs and metrics
func (t Target) RegionLabel() string {
	if t.Region == "" {
		return SDKDefaultRegion
	}
	return t.Region
}
