package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKnowledgeID(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		defaultRegion string
		want          Target
	}{
		{
			name:          "region prefix",
			id:            "us-west-2:kb-123",
			defaultRegion: "us-east-1",
			want:          Target{Region: "us-west-2", KnowledgeBaseID: "kb-123"},
		},
		{
			name:          "no colon uses default region",
			id:            "kb-123",
			defaultRegion: "us-east-1",
			want:          Target{Region: "us-east-1", KnowledgeBaseID: "kb-123"},
		},
		{
			name:          "more than one colon is used verbatim",
			id:            "a:b:c",
			defaultRegion: "us-east-1",
			want:          Target{Region: "us-east-1", KnowledgeBaseID: "a:b:c"},
		},
		{
			name:          "empty id",
			id:            "",
			defaultRegion: "eu-west-1",
			want:          Target{Region: "eu-west-1", KnowledgeBaseID: ""},
		},
		{
			name:          "trailing colon yields empty knowledge base id",
			id:            "ap-northeast-1:",
			defaultRegion: "us-east-1",
			want:          Target{Region: "ap-northeast-1", KnowledgeBaseID: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKnowledgeID(tt.id, tt.defaultRegion))
		})
	}
}

func TestTarget_RegionLabel(t *testing.T) {
	unprefixed := ParseKnowledgeID("kb-123", "")
	assert.Equal(t, "", unprefixed.Region)
	assert.Equal(t, SDKDefaultRegion, unprefixed.RegionLabel())

	prefixed := ParseKnowledgeID("ap-northeast-1:kb-123", "")
	assert.Equal(t, "ap-northeast-1", prefixed.RegionLabel())
}
