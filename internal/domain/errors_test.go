package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
)

func TestWorkflowError_IsComparaPorKind(t *testing.T) {
	err := domain.Ineligible("must be active", "needs 5 images, has 3")

	assert.True(t, errors.Is(err, domain.ErrIneligibleTransition))
	assert.False(t, errors.Is(err, domain.ErrInvalidRejection))
	assert.Equal(t, "ineligible_transition: must be active; needs 5 images, has 3", err.Error())
}

func TestWorkflowError_NotFoundSatisfaceErrNotFound(t *testing.T) {
	err := fmt.Errorf("approve: %w", domain.NewWorkflowError(domain.KindNotFound, "approval request not found"))

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, []string{"approval request not found"}, domain.ReasonsOf(err))
}

func TestReasonsOf_ErrorPlano(t *testing.T) {
	assert.Nil(t, domain.ReasonsOf(domain.ErrConflict))
}
