package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"navhub/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestWith_MatchesKind(t *testing.T) {
	err := serrors.With(serrors.ErrNotFound, "category %q not found", "Design")

	require.True(t, errors.Is(err, serrors.ErrNotFound))
	require.False(t, errors.Is(err, serrors.ErrConflict))
	require.Equal(t, `category "Design" not found`, err.Error())
}

func TestWrap_MatchesKindAndCause(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := serrors.Wrap(serrors.ErrConflict, cause, "could not create category")

	require.True(t, errors.Is(err, serrors.ErrConflict))
	require.True(t, errors.Is(err, cause))
	require.Equal(t, "could not create category: "+cause.Error(), err.Error())
}

func TestWrap_SurvivesFurtherWrapping(t *testing.T) {
	inner := serrors.With(serrors.ErrTimeout, "fetch timed out")
	outer := fmt.Errorf("could not extract website info: %w", inner)

	require.True(t, errors.Is(outer, serrors.ErrTimeout))

	var sErr *serrors.Error
	require.True(t, errors.As(outer, &sErr))
	require.Equal(t, serrors.ErrTimeout, sErr.Kind())
}

func TestError_KindOnlyString(t *testing.T) {
	err := serrors.With(serrors.ErrUnavailable, "")
	require.Equal(t, "UNAVAILABLE", err.Error())
}
