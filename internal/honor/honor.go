package honor

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/asdos-web/internal/models"
)

// ErrInvalidPeriod reports a month outside 1..12 or a non-positive year.
var ErrInvalidPeriod = errors.New("invalid honor period")

// Period identifies the month an honor figure is computed for.
type Period struct {
	Month int `json:"bulan"`
	Year  int `json:"tahun"`
}

// Validate checks the month and year ranges.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidPeriod, p.Month)
	}
	if p.Year <= 0 {
		return fmt.Errorf("%w: year %d", ErrInvalidPeriod, p.Year)
	}
	return nil
}

// HoursFromHonor converts an honor amount into hours at rate, rounded to two
// decimals. A non-positive rate yields zero.
func HoursFromHonor(total, rate float64) float64 {
	if rate <= 0 {
		return 0
	}
	return math.Round(total/rate*100) / 100
}

// FetchFunc returns the backend-computed honor for one vacancy.
type FetchFunc func(ctx context.Context, lowonganID string) (float64, error)

// Item is the honor earned on one vacancy.
type Item struct {
	LowonganID string  `json:"idLowongan"`
	Honor      float64 `json:"honor"`
	Hours      float64 `json:"jam"`
}

// Summary aggregates honor across vacancies.
type Summary struct {
	Period     Period  `json:"periode"`
	Rate       float64 `json:"tarifPerJam"`
	TotalHonor float64 `json:"totalHonor"`
	TotalHours float64 `json:"totalJam"`
	Items      []Item  `json:"rincian"`
}

// AcceptedVacancies returns the distinct vacancies with at least one accepted
// log, in order of first appearance.
func AcceptedVacancies(logs []models.Log) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0)
	for _, entry := range logs {
		if entry.Status != models.StatusDiterima || entry.IDLowongan == "" {
			continue
		}
		if _, ok := seen[entry.IDLowongan]; ok {
			continue
		}
		seen[entry.IDLowongan] = struct{}{}
		result = append(result, entry.IDLowongan)
	}
	return result
}

// Aggregate fetches the honor of every vacancy concurrently and sums them. The
// first fetch error cancels the rest and is returned.
func Aggregate(ctx context.Context, fetch FetchFunc, period Period, lowonganIDs []string, rate float64) (Summary, error) {
	if err := period.Validate(); err != nil {
		return Summary{}, err
	}

	amounts := make([]float64, len(lowonganIDs))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, id := range lowonganIDs {
		i, id := i, id
		group.Go(func() error {
			amount, err := fetch(groupCtx, id)
			if err != nil {
				return fmt.Errorf("honor for lowongan %s: %w", id, err)
			}
			amounts[i] = amount
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Period: period,
		Rate:   rate,
		Items:  make([]Item, 0, len(lowonganIDs)),
	}
	for i, id := range lowonganIDs {
		summary.TotalHonor += amounts[i]
		summary.Items = append(summary.Items, Item{
			LowonganID: id,
			Honor:      amounts[i],
			Hours:      HoursFromHonor(amounts[i], rate),
		})
	}
	summary.TotalHours = HoursFromHonor(summary.TotalHonor, rate)

	return summary, nil
}
