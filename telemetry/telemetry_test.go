package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/insight/output"
)

func TestFromContextDefaultsToNoOp(t *testing.T) {
	collector := FromContext(context.Background())
	_, ok := collector.(noOpCollector)
	assert.True(t, ok)

	var buf bytes.Buffer
	timer := collector.Start("refresh")
	timer.Child("fetch").End()
	timer.End()
	collector.Report(&buf, nil)
	assert.Equal(t, 0, buf.Len())
}

func TestWithCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	got, ok := FromContext(ctx).(*TimingCollector)
	assert.True(t, ok)
	assert.True(t, got == collector)
}

func TestStartNestsUnderContextTimer(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	ctx, refresh := Start(ctx, "refresh")
	fetchCtx, fetch := Start(ctx, "fetch expenses")
	_, decode := Start(fetchCtx, "decode")
	decode.End()
	fetch.End()
	_, build := Start(ctx, "build snapshot")
	build.End()
	refresh.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, 4, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "refresh: "))
	assert.True(t, strings.HasPrefix(lines[1], "├─ fetch expenses: "))
	assert.True(t, strings.HasPrefix(lines[2], "│  └─ decode: "))
	assert.True(t, strings.HasPrefix(lines[3], "└─ build snapshot: "))
}

func TestStartWithoutCollectorIsNoOp(t *testing.T) {
	ctx, timer := Start(context.Background(), "refresh")
	_, ok := timer.(noOpTimer)
	assert.True(t, ok)

	_, child := Start(ctx, "fetch")
	_, ok = child.(noOpTimer)
	assert.True(t, ok)
}

func TestReportStyled(t *testing.T) {
	collector := NewTimingCollector()
	timer := collector.Start("refresh")
	timer.Child("fetch").End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, output.NewStyles(&buf))
	assert.Contains(t, buf.String(), "refresh")
	assert.Contains(t, buf.String(), "fetch")
}

func TestEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	NewTimingCollector().Report(&buf, nil)
	assert.Equal(t, 0, buf.Len())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{time.Millisecond, "1ms"},
		{999 * time.Millisecond, "999ms"},
		{time.Second, "1.00s"},
		{1500 * time.Millisecond, "1.50s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.duration))
	}
}
