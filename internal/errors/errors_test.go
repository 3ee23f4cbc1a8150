package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPipelineError_ErrorIncludesCause(t *testing.T) {
	cause := errors.New("yaml: line 3: mapping values")
	err := ParseFailed("article.yaml", cause)

	require.Contains(t, err.Error(), "parse (fatal)")
	require.Contains(t, err.Error(), "mapping values")
	require.ErrorIs(t, err, cause)
}

func TestIsCategory_MatchesOwnCategoryOnly(t *testing.T) {
	err := MissingField("article.slug")

	require.True(t, IsCategory(err, CategoryValidation))
	require.False(t, IsCategory(err, CategoryParse))
	require.False(t, IsCategory(errors.New("plain"), CategoryValidation))
}

func TestGetCategory_PlainErrorIsInternal(t *testing.T) {
	require.Equal(t, CategoryInternal, GetCategory(fmt.Errorf("wrapped: %w", errors.New("x"))))
	require.Equal(t, CategoryTemplate, GetCategory(TemplateError("article.html.tmpl", errors.New("missing"))))
}

func TestWithContext_AccumulatesFields(t *testing.T) {
	err := UnsupportedFormat("notes.toml").WithContext("hint", "use .yaml or .json")

	require.Equal(t, "notes.toml", err.Context["path"])
	require.Equal(t, "use .yaml or .json", err.Context["hint"])
}
