package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "reading %s", "doclets.json")

	assert.Contains(t, wrapped.Error(), "reading doclets.json")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("no doclets"), "run jsdoc with -X")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "run jsdoc with -X", hints[0])
}

type fatalDetail struct {
	longname string
}

func (e *fatalDetail) Error() string { return "fatal: " + e.longname }

func TestMarkedFatal(t *testing.T) {
	err := Mark(&fatalDetail{longname: "Foo"}, ErrFatal)
	err = Wrap(err, "compile")

	assert.True(t, IsFatal(err))
	assert.False(t, IsInvalidInputError(err))

	var target *fatalDetail
	require.True(t, As(err, &target))
	assert.Equal(t, "Foo", target.longname)
}

func TestInvalidInputHelpers(t *testing.T) {
	err := NewInvalidInputError("doclet %d has no kind", 3)
	assert.True(t, IsInvalidInputError(err))
	assert.Contains(t, err.Error(), "doclet 3 has no kind")

	wrapped := WrapInvalidInput(New("unexpected token"), "doclets.yaml")
	assert.True(t, IsInvalidInputError(wrapped))
	assert.Contains(t, wrapped.Error(), "doclets.yaml")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsFatal(nil))
}

func ExampleWrap() {
	baseErr := New("unexpected end of input")
	err := Wrap(baseErr, "failed to decode doclets")
	fmt.Println(err)
	// Output: failed to decode doclets: unexpected end of input
}
