package audit

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/i18n"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

type gaugeRecorder struct {
	metrics.NoopRecorder
	mu      sync.Mutex
	missing map[string]int
}

func (g *gaugeRecorder) SetMissingTranslations(locale string, n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.missing == nil {
		g.missing = map[string]int{}
	}
	g.missing[locale] = n
}

func (g *gaugeRecorder) get(locale string) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.missing[locale]
	return n, ok
}

func newAuditor(t *testing.T, rec metrics.Recorder, logs *bytes.Buffer) *Auditor {
	t.Helper()
	reg, err := i18n.NewRegistry([]i18n.Definition{{Code: "en"}, {Code: "fa"}, {Code: "ru"}}, "en")
	require.NoError(t, err)
	store, err := content.NewStore(map[i18n.Locale]fs.FS{
		"en": fstest.MapFS{"a.mdx": {Data: []byte("a")}, "b/c.mdx": {Data: []byte("c")}},
		"fa": fstest.MapFS{"a.mdx": {Data: []byte("a")}, "b/c.mdx": {Data: []byte("c")}},
		"ru": fstest.MapFS{"a.mdx": {Data: []byte("a")}},
	}, "en")
	require.NoError(t, err)
	return NewAuditor(store, reg, rec, slog.New(slog.NewTextHandler(logs, nil)))
}

func TestAuditor_Run(t *testing.T) {
	rec := &gaugeRecorder{}
	var logs bytes.Buffer
	a := newAuditor(t, rec, &logs)

	_, _, ok := a.Last()
	assert.False(t, ok)

	report := a.Run()
	assert.Equal(t, 1, report.MissingCount())

	n, ok := rec.get("fa")
	require.True(t, ok)
	assert.Equal(t, 0, n)
	n, _ = rec.get("ru")
	assert.Equal(t, 1, n)

	assert.Contains(t, logs.String(), "Missing translations")
	assert.Contains(t, logs.String(), "locale=ru")
	assert.NotContains(t, logs.String(), "locale=fa")

	last, at, ok := a.Last()
	require.True(t, ok)
	assert.False(t, at.IsZero())
	assert.Equal(t, report, last)
}

func TestScheduler_ScheduleCoverage(t *testing.T) {
	t.Run("runs immediately and returns job id", func(t *testing.T) {
		s, err := NewScheduler()
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Stop(context.Background()) })

		rec := &gaugeRecorder{}
		a := newAuditor(t, rec, &bytes.Buffer{})
		id, err := s.ScheduleCoverage(time.Hour, a)
		require.NoError(t, err)
		require.NotEmpty(t, id)
		assert.Equal(t, 1, s.Jobs())

		s.Start(context.Background())
		require.Eventually(t, func() bool {
			_, ok := rec.get("ru")
			return ok
		}, 5*time.Second, 10*time.Millisecond)
	})

	t.Run("zero interval disables", func(t *testing.T) {
		s, err := NewScheduler()
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Stop(context.Background()) })

		id, err := s.ScheduleCoverage(0, newAuditor(t, nil, &bytes.Buffer{}))
		require.NoError(t, err)
		assert.Empty(t, id)
		assert.Equal(t, 0, s.Jobs())
	})
}

func TestScheduler_ScheduleCoverageCron(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	a := newAuditor(t, nil, &bytes.Buffer{})
	id, err := s.ScheduleCoverageCron("0 */6 * * *", a)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = s.ScheduleCoverageCron("this is not a cron", a)
	require.Error(t, err)
}
