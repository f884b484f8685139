package service

import (
	"context"
	"testing"
	"time"

	"brvm-market-api/internal/api/repository"
	"brvm-market-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCompanyRepo struct {
	snapshot    *repository.CompanySnapshotRow
	peers       []repository.PeerRow
	comparisons []repository.ComparisonRow
	err         error
}

func (m *mockCompanyRepo) FindSnapshot(ctx context.Context, symbol string) (*repository.CompanySnapshotRow, error) {
	return m.snapshot, m.err
}

func (m *mockCompanyRepo) FindPeers(ctx context.Context, sector, excludeSymbol string, refPrice float64, refVolume int64, limit int) ([]repository.PeerRow, error) {
	return m.peers, m.err
}

func (m *mockCompanyRepo) FindComparisonRows(ctx context.Context, windowStart time.Time, symbols []string) ([]repository.ComparisonRow, error) {
	return m.comparisons, m.err
}

func newTestCompanyService(repo repository.CompanyRepository) *companyService {
	log, _ := logger.New("error", "json")
	return &companyService{
		companyRepo: repo,
		logger:      log,
		now:         func() time.Time { return testNow },
	}
}

func TestGetComparable_UnknownSymbol(t *testing.T) {
	svc := newTestCompanyService(&mockCompanyRepo{})

	_, err := svc.GetComparable(context.Background(), "ZZZZ", 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetComparable_NoSector(t *testing.T) {
	svc := newTestCompanyService(&mockCompanyRepo{
		snapshot: &repository.CompanySnapshotRow{Symbol: "BICC", Name: "BICC SA"},
	})

	_, err := svc.GetComparable(context.Background(), "BICC", 5)
	assert.ErrorIs(t, err, ErrSectorNotDefined)
}

func TestGetComparable_MapsPeers(t *testing.T) {
	svc := newTestCompanyService(&mockCompanyRepo{
		snapshot: &repository.CompanySnapshotRow{
			Symbol: "BICC",
			Name:   "BICC SA",
			Sector: sptr("Banking"),
			Price:  fptr(5000),
			Volume: iptr(1200),
		},
		peers: []repository.PeerRow{
			{Symbol: "SGBC", Name: "SGBC SA", Sector: "Banking", CurrentPrice: 5100, Volume: iptr(900), SimilarityScore: 100.3},
		},
	})

	resp, err := svc.GetComparable(context.Background(), "BICC", 5)
	require.NoError(t, err)
	assert.Equal(t, "BICC", resp.ReferenceCompany)
	assert.Equal(t, "Banking", resp.ReferenceSector)
	require.Len(t, resp.ComparableCompanies, 1)
	assert.Equal(t, "SGBC", resp.ComparableCompanies[0].Symbol)
	assert.InDelta(t, 100.3, resp.ComparableCompanies[0].SimilarityScore, 1e-9)
}

func TestCompareWith_ComputesVerdict(t *testing.T) {
	svc := newTestCompanyService(&mockCompanyRepo{
		comparisons: []repository.ComparisonRow{
			{Symbol: "BICC", Name: "BICC SA", Sector: sptr("Banking"), StartPrice: fptr(100), CurrentPrice: fptr(120), AvgVolume: fptr(1000)},
			{Symbol: "SGBC", Name: "SGBC SA", Sector: sptr("Banking"), StartPrice: fptr(100), CurrentPrice: fptr(110), AvgVolume: fptr(500)},
		},
	})

	resp, err := svc.CompareWith(context.Background(), "BICC", "SGBC", "3M")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, resp.Company1.Performance, 1e-9)
	assert.InDelta(t, 10.0, resp.Company2.Performance, 1e-9)
	assert.InDelta(t, 10.0, resp.Comparison.PerformanceDifference, 1e-9)
	assert.Equal(t, "BICC", resp.Comparison.BetterPerformer)
	assert.InDelta(t, 100.0, resp.Comparison.VolumeDifferencePercent, 1e-9)
	assert.True(t, resp.Comparison.SameSector)
}

func TestCompareWith_MissingCompany(t *testing.T) {
	svc := newTestCompanyService(&mockCompanyRepo{
		comparisons: []repository.ComparisonRow{
			{Symbol: "BICC", Name: "BICC SA"},
		},
	})

	_, err := svc.CompareWith(context.Background(), "BICC", "ZZZZ", "3M")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompareWith_YTDRejected(t *testing.T) {
	svc := newTestCompanyService(&mockCompanyRepo{})

	_, err := svc.CompareWith(context.Background(), "BICC", "SGBC", "YTD")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
