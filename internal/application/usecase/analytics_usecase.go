package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

const (
	dateLayout        = "2006-01-02"
	defaultPeriodDays = 30
	maxPeriodDays     = 366
	unknownLanguage   = "unknown"
)

var hundred = decimal.NewFromInt(100)

// AnalyticsUseCase resume las vistas del menú público de un restaurante.
type AnalyticsUseCase struct {
	views repository.MenuViewRepository
	now   func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(views repository.MenuViewRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{views: views, now: time.Now}
}

// Summary devuelve total, promedio diario, serie por día (con ceros) y reparto por idioma.
func (uc *AnalyticsUseCase) Summary(ctx context.Context, restaurantID string, req dto.AnalyticsRequest) (*dto.AnalyticsSummaryResponse, error) {
	from, to, err := parsePeriod(req.StartDate, req.EndDate, uc.now())
	if err != nil {
		return nil, err
	}

	// Consultas independientes en paralelo.
	type dayResult struct {
		rows []repository.DailyViews
		err  error
	}
	type langResult struct {
		rows []repository.LanguageViews
		err  error
	}
	dayChan := make(chan dayResult, 1)
	langChan := make(chan langResult, 1)
	go func() {
		rows, err := uc.views.CountByDay(ctx, restaurantID, from, to)
		dayChan <- dayResult{rows, err}
	}()
	go func() {
		rows, err := uc.views.CountByLanguage(ctx, restaurantID, from, to)
		langChan <- langResult{rows, err}
	}()
	dayRes := <-dayChan
	langRes := <-langChan
	if dayRes.err != nil {
		return nil, fmt.Errorf("analytics: por día: %w", dayRes.err)
	}
	if langRes.err != nil {
		return nil, fmt.Errorf("analytics: por idioma: %w", langRes.err)
	}

	byDay, total := fillDays(dayRes.rows, from, to)
	days := len(byDay)
	avg := decimal.Zero
	if days > 0 {
		avg = decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(days))).Round(1)
	}

	return &dto.AnalyticsSummaryResponse{
		StartDate:  from.Format(dateLayout),
		EndDate:    to.AddDate(0, 0, -1).Format(dateLayout),
		TotalViews: total,
		DailyAvg:   avg.StringFixed(1),
		ByDay:      byDay,
		ByLanguage: buildLanguageShare(langRes.rows),
	}, nil
}

// ExportCSV genera un CSV con una fila por vista del período (viewed_at, language, user_agent).
func (uc *AnalyticsUseCase) ExportCSV(ctx context.Context, restaurantID string, req dto.AnalyticsRequest) ([]byte, error) {
	from, to, err := parsePeriod(req.StartDate, req.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	views, err := uc.views.List(ctx, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics: export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"viewed_at", "language", "user_agent"}); err != nil {
		return nil, err
	}
	for _, v := range views {
		lang := v.Language
		if lang == "" {
			lang = unknownLanguage
		}
		if err := w.Write([]string{v.ViewedAt.UTC().Format(time.RFC3339), lang, v.UserAgent}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fillDays completa con ceros los días sin vistas dentro de [from, to).
func fillDays(rows []repository.DailyViews, from, to time.Time) ([]dto.DailyViewsDTO, int) {
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Day.UTC().Format(dateLayout)] += r.Views
	}
	out := make([]dto.DailyViewsDTO, 0)
	total := 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		out = append(out, dto.DailyViewsDTO{Date: key, Views: counts[key]})
		total += counts[key]
	}
	return out, total
}

func buildLanguageShare(rows []repository.LanguageViews) []dto.LanguageViewsDTO {
	total := 0
	for _, r := range rows {
		total += r.Views
	}
	out := make([]dto.LanguageViewsDTO, 0, len(rows))
	for _, r := range rows {
		lang := r.Language
		if lang == "" {
			lang = unknownLanguage
		}
		pct := decimal.Zero
		if total > 0 {
			pct = decimal.NewFromInt(int64(r.Views)).Div(decimal.NewFromInt(int64(total))).Mul(hundred)
		}
		out = append(out, dto.LanguageViewsDTO{Language: lang, Views: r.Views, Pct: pct.StringFixed(1)})
	}
	return out
}

// parsePeriod convierte las fechas (UTC) en el rango semiabierto [from, to).
// Por defecto cubre los últimos 30 días incluyendo hoy.
func parsePeriod(startStr, endStr string, now time.Time) (from, to time.Time, err error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	end := today
	if endStr != "" {
		end, err = time.Parse(dateLayout, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, invalid("end_date inválido")
		}
	}
	to = end.AddDate(0, 0, 1)

	if startStr == "" {
		from = end.AddDate(0, 0, -(defaultPeriodDays - 1))
	} else {
		from, err = time.Parse(dateLayout, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, invalid("start_date inválido")
		}
	}

	if !from.Before(to) {
		return time.Time{}, time.Time{}, invalid("start_date no puede ser posterior a end_date")
	}
	if to.Sub(from) > maxPeriodDays*24*time.Hour {
		return time.Time{}, time.Time{}, invalid("el período máximo es de 366 días")
	}
	return from, to, nil
}
