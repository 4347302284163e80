package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testSetting struct {
	TopK *int `json:"top_k"`
}

type testRequest struct {
	Query   *string      `json:"query" validate:"required"`
	Setting *testSetting `json:"retrieval_setting" validate:"required"`
	Skipped string       `json:"-"`
}

func TestValidateStruct(t *testing.T) {
	query := ""

	t.Run("present pointers pass even when empty", func(t *testing.T) {
		s := testRequest{Query: &query, Setting: &testSetting{}}

		assert.NoError(t, ValidateStruct(&s))
	})

	t.Run("missing required fields reported by json name", func(t *testing.T) {
		s := testRequest{}

		err := ValidateStruct(&s)
		assert.Error(t, err)
		assert.True(t, IsValidationError(err))

		fields := GetValidationFields(err)
		assert.Equal(t, "query is required", fields["query"])
		assert.Equal(t, "retrieval_setting is required", fields["retrieval_setting"])
	})

	t.Run("other tags get a generic message", func(t *testing.T) {
		type withLimit struct {
			Limit int `json:"limit" validate:"max=10"`
		}

		err := ValidateStruct(&withLimit{Limit: 11})
		assert.Error(t, err)
		assert.Equal(t, "limit validation failed on 'max' tag", GetValidationFields(err)["limit"])
	})
}

func TestGetValidationFields(t *testing.T) {
	assert.Nil(t, GetValidationFields(errors.New("plain")))
	assert.False(t, IsValidationError(errors.New("plain")))
}
