package core

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewErrorLogsOnlyInnermost(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(os.Stderr)

	cause := errors.New("disk on fire")
	inner := NewError(KindLoad, "SceneManager", "loadScene", cause)
	middle := NewError(KindLoad, "Engine", "loadScene", fmt.Errorf("failed to load scene: %w", inner))
	outer := NewError(KindResource, "Engine", "run", middle)

	assert.Equal(t, 1, strings.Count(buf.String(), "disk on fire"))
	assert.Contains(t, buf.String(), "SceneManager")
	assert.ErrorIs(t, outer, cause)
	assert.True(t, IsKind(outer, KindLoad))
	assert.True(t, IsKind(outer, KindResource))
	assert.False(t, IsKind(outer, KindPrecondition))
}
