package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_BuildsClassifiedError(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := WrapError(cause, CategoryFileSystem, "cannot read file").
		WithContext("path", "docs/a.md").
		Build()

	require.Equal(t, CategoryFileSystem, err.Category())
	require.Equal(t, SeverityError, err.Severity())
	require.Equal(t, "cannot read file", err.Message())
	require.ErrorIs(t, err, cause)
	require.Equal(t, "[filesystem:error] cannot read file: permission denied", err.Error())

	path, ok := err.Context().GetString("path")
	require.True(t, ok)
	require.Equal(t, "docs/a.md", path)
}

func TestConfigError_IsFatal(t *testing.T) {
	err := ConfigError("no paths").Build()
	require.True(t, err.IsFatal())
	require.True(t, err.IsCategory(CategoryConfig))
}

func TestAsClassified_ThroughWrapping(t *testing.T) {
	inner := NetworkError("probe failed").Build()
	wrapped := fmt.Errorf("check: %w", inner)

	got, ok := AsClassified(wrapped)
	require.True(t, ok)
	require.Same(t, inner, got)
	require.True(t, HasCategory(wrapped, CategoryNetwork))
	require.Equal(t, CategoryNetwork, GetCategory(wrapped))
	require.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
}

func TestErrBrokenReferences_Is(t *testing.T) {
	wrapped := fmt.Errorf("run: %w", ErrBrokenReferences)
	require.ErrorIs(t, wrapped, ErrBrokenReferences)
	require.True(t, HasCategory(wrapped, CategoryValidation))
}

func TestWithContext_DoesNotMutateOriginal(t *testing.T) {
	base := InternalError("boom").Build()
	derived := base.WithContext("k", "v")

	_, ok := base.Context().Get("k")
	require.False(t, ok)
	v, ok := derived.Context().Get("k")
	require.True(t, ok)
	require.Equal(t, "v", v)
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	require.Equal(t, 0, a.ExitCodeFor(nil))
	require.Equal(t, 1, a.ExitCodeFor(stderrors.New("x")))
	require.Equal(t, 1, a.ExitCodeFor(ErrBrokenReferences))
	require.Equal(t, 1, a.ExitCodeFor(ConfigError("bad").Build()))
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	require.Empty(t, quiet.FormatError(nil))
	require.Equal(t, "Error: plain", quiet.FormatError(stderrors.New("plain")))
	require.Equal(t, "Error: no paths", quiet.FormatError(ConfigError("no paths").Build()))

	verbose := NewCLIErrorAdapter(true, nil)
	require.Equal(t, "[config:fatal] no paths", verbose.FormatError(ConfigError("no paths").Build()))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	a := NewCLIErrorAdapter(false, logger)
	a.out = &out
	code := -1
	a.exit = func(c int) { code = c }

	a.HandleError(nil)
	require.Equal(t, -1, code)

	a.HandleError(ErrBrokenReferences)
	require.Equal(t, 1, code)
	require.Empty(t, out.String())

	code = -1
	a.HandleError(ConfigError("no paths").WithContext("source", "flags").Build())
	require.Equal(t, 1, code)
	require.Equal(t, "Error: no paths\n", out.String())
	require.Contains(t, logs.String(), "category=config")
	require.Contains(t, logs.String(), "source=flags")
}
