package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/ats-matcher/internal/domain"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	t.Parallel()
	sentinels := []error{
		domain.ErrInvalidArgument,
		domain.ErrNotFound,
		domain.ErrRateLimited,
		domain.ErrUpstreamTimeout,
		domain.ErrEmbeddingUnavailable,
		domain.ErrTaxonomyInvalid,
		domain.ErrInternal,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestSentinelWrapping(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("%w: resume text required", domain.ErrInvalidArgument)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "resume text required")
}

func TestAnalysisStatusValues(t *testing.T) {
	t.Parallel()
	assert.Equal(t, domain.AnalysisStatus("completed"), domain.AnalysisCompleted)
	assert.Equal(t, domain.AnalysisStatus("degraded"), domain.AnalysisDegraded)
	assert.Equal(t, domain.AnalysisStatus("failed"), domain.AnalysisFailed)
}
