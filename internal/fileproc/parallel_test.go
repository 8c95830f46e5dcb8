package fileproc

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachFile(t *testing.T) {
	files := []string{"a.ts", "b.ts", "c.ts"}

	results, errs := ForEachFile(files, func(path string) (string, error) {
		return strings.ToUpper(path), nil
	})

	assert.Nil(t, errs)
	sort.Strings(results)
	assert.Equal(t, []string{"A.TS", "B.TS", "C.TS"}, results)
}

func TestForEachFileEmptyInput(t *testing.T) {
	results, errs := ForEachFile(nil, func(path string) (int, error) {
		return 0, nil
	})
	assert.Nil(t, results)
	assert.Nil(t, errs)
}

func TestForEachFileCollectsErrors(t *testing.T) {
	files := []string{"good.ts", "bad.ts", "also-good.ts"}

	results, errs := ForEachFile(files, func(path string) (string, error) {
		if path == "bad.ts" {
			return "", errors.New("boom")
		}
		return path, nil
	})

	// One failure does not discard the other results.
	assert.Len(t, results, 2)
	require.NotNil(t, errs)
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, "bad.ts", errs.Errors[0].Path)
	assert.Contains(t, errs.Error(), "bad.ts")
}

func TestForEachFileNProgress(t *testing.T) {
	files := []string{"a", "b", "c", "d"}
	var ticks atomic.Int64

	_, errs := ForEachFileN(files, 2, func(path string) (struct{}, error) {
		return struct{}{}, nil
	}, func() { ticks.Add(1) })

	assert.Nil(t, errs)
	assert.Equal(t, int64(4), ticks.Load())
}

func TestForEachFileWithContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := []string{"a", "b", "c"}
	results, errs := ForEachFileWithContext(ctx, files, 1, func(path string) (string, error) {
		return path, nil
	}, nil)

	// Everything is cancelled before processing.
	assert.Empty(t, results)
	require.NotNil(t, errs)
	assert.True(t, errs.HasErrors())
}

func TestProcessingErrorsMessage(t *testing.T) {
	errs := &ProcessingErrors{}
	assert.Equal(t, "no errors", errs.Error())

	errs.Add("a.ts", errors.New("first"))
	assert.Equal(t, "a.ts: first", errs.Error())

	errs.Add("b.ts", errors.New("second"))
	assert.Contains(t, errs.Error(), "2 files failed")
}

func TestWorkers(t *testing.T) {
	assert.Equal(t, 3, Workers(3))
	assert.Greater(t, Workers(0), 0)
	assert.Greater(t, Workers(-1), 0)
}
