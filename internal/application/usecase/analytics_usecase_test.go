package usecase

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

type stubViews struct {
	repository.MenuViewRepository
	byDay      []repository.DailyViews
	byLanguage []repository.LanguageViews
	list       []*entity.MenuView
	from, to   time.Time
}

func (s *stubViews) CountByDay(_ context.Context, _ string, from, to time.Time) ([]repository.DailyViews, error) {
	s.from, s.to = from, to
	return s.byDay, nil
}

func (s *stubViews) CountByLanguage(context.Context, string, time.Time, time.Time) ([]repository.LanguageViews, error) {
	return s.byLanguage, nil
}

func (s *stubViews) List(context.Context, string, time.Time, time.Time) ([]*entity.MenuView, error) {
	return s.list, nil
}

func day(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func TestAnalyticsSummary_ZeroFillsAndShares(t *testing.T) {
	views := &stubViews{
		byDay: []repository.DailyViews{{Day: day("2024-05-01"), Views: 4}, {Day: day("2024-05-03"), Views: 2}},
		byLanguage: []repository.LanguageViews{
			{Language: "es", Views: 5},
			{Language: "", Views: 1},
		},
	}
	uc := NewAnalyticsUseCase(views)

	out, err := uc.Summary(context.Background(), "r1", dto.AnalyticsRequest{StartDate: "2024-05-01", EndDate: "2024-05-03"})
	require.NoError(t, err)

	assert.Equal(t, day("2024-05-01"), views.from)
	assert.Equal(t, day("2024-05-04"), views.to, "end_date es inclusivo")
	assert.Equal(t, 6, out.TotalViews)
	assert.Equal(t, "2.0", out.DailyAvg)
	require.Len(t, out.ByDay, 3)
	assert.Equal(t, dto.DailyViewsDTO{Date: "2024-05-02", Views: 0}, out.ByDay[1])
	require.Len(t, out.ByLanguage, 2)
	assert.Equal(t, "83.3", out.ByLanguage[0].Pct)
	assert.Equal(t, "unknown", out.ByLanguage[1].Language)
}

func TestAnalyticsSummary_DefaultPeriodIsLast30Days(t *testing.T) {
	views := &stubViews{}
	uc := NewAnalyticsUseCase(views)
	uc.now = func() time.Time { return time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC) }

	out, err := uc.Summary(context.Background(), "r1", dto.AnalyticsRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", out.StartDate)
	assert.Equal(t, "2024-06-30", out.EndDate)
	assert.Len(t, out.ByDay, 30)
	assert.Equal(t, "0.0", out.DailyAvg)
}

func TestAnalyticsSummary_InvalidPeriod(t *testing.T) {
	uc := NewAnalyticsUseCase(&stubViews{})
	for _, req := range []dto.AnalyticsRequest{
		{StartDate: "2024-05-10", EndDate: "2024-05-01"},
		{StartDate: "ayer"},
		{StartDate: "2022-01-01", EndDate: "2024-01-01"},
	} {
		_, err := uc.Summary(context.Background(), "r1", req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, req)
	}
}

func TestAnalyticsExportCSV(t *testing.T) {
	views := &stubViews{list: []*entity.MenuView{
		{ViewedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), Language: "es", UserAgent: `Mozilla "5.0", iPhone`},
		{ViewedAt: time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)},
	}}
	uc := NewAnalyticsUseCase(views)

	raw, err := uc.ExportCSV(context.Background(), "r1", dto.AnalyticsRequest{StartDate: "2024-05-01", EndDate: "2024-05-02"})
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"viewed_at", "language", "user_agent"}, rows[0])
	assert.Equal(t, []string{"2024-05-01T12:00:00Z", "es", `Mozilla "5.0", iPhone`}, rows[1])
	assert.Equal(t, "unknown", rows[2][1])
}
