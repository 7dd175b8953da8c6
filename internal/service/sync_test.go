package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jbweber/homelab/territoire/internal/cache"
	cachemocks "github.com/jbweber/homelab/territoire/internal/cache/mocks"
	"github.com/jbweber/homelab/territoire/internal/domain"
	"github.com/jbweber/homelab/territoire/internal/logger"
	"github.com/jbweber/homelab/territoire/internal/metrics"
	"github.com/jbweber/homelab/territoire/internal/repository"
	"github.com/jbweber/homelab/territoire/internal/service/mocks"
	"github.com/jbweber/homelab/territoire/internal/testutil"
)

func TestSyncService_Sync(t *testing.T) {
	ds := testutil.SetupTestDatastore(t, t.Name())
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	core, logs := observer.New(zap.WarnLevel)

	testutil.SeedDepartement(t, ds, "01", "Ain")
	testutil.SeedDepartement(t, ds, "02", "")
	testutil.SeedDepartement(t, ds, "03", "Allier")

	source.EXPECT().FetchDepartements(gomock.Any()).Return([]domain.ExternalDepartement{
		{Code: " 01 ", Nom: "Ain "},
		{Code: "02", Nom: "Aisne"},
		{Code: "03", Nom: ""},
		{Code: "2a", Nom: "Corse-du-Sud"},
		{Code: "", Nom: "Sans code"},
		{Code: "04", Nom: "Alpes"},
		{Code: "04", Nom: "Alpes-de-Haute-Provence"},
	}, nil)

	departements := repository.NewDepartementRepository(ds, nil)
	svc := NewSyncService(ds, departements, source, nil, m, logger.FromZap(zap.New(core)))

	report, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, SyncReport{Created: 2, Updated: 1, Ignored: 2, Total: 5}, report)
	assert.Equal(t, 1, logs.FilterMessage("duplicate code in reference list, keeping the last entry").Len())

	aisne, err := departements.FindByCode(ctx, "02")
	require.NoError(t, err)
	assert.Equal(t, "Aisne", domain.StringValue(aisne.Nom))

	allier, err := departements.FindByCode(ctx, "03")
	require.NoError(t, err)
	assert.Equal(t, "Allier", domain.StringValue(allier.Nom))

	alpes, err := departements.FindByCode(ctx, "04")
	require.NoError(t, err)
	assert.Equal(t, "Alpes-de-Haute-Provence", domain.StringValue(alpes.Nom))

	_, err = departements.FindByCode(ctx, "2A")
	require.NoError(t, err)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.SyncRuns.WithLabelValues("success")))
	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.DepartementsCreated))
}

func TestSyncService_SyncIsIdempotent(t *testing.T) {
	ds := testutil.SetupTestDatastore(t, t.Name())
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)

	reference := []domain.ExternalDepartement{{Code: "34", Nom: "Hérault"}, {Code: "30", Nom: "Gard"}}
	source.EXPECT().FetchDepartements(gomock.Any()).Return(reference, nil).Times(2)

	svc := NewSyncService(ds, repository.NewDepartementRepository(ds, nil), source, nil, nil, nil)

	first, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)

	second, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, SyncReport{Ignored: 2, Total: 2}, second)
}

func TestSyncService_SourceFailure(t *testing.T) {
	ds := testutil.SetupTestDatastore(t, t.Name())
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())

	source.EXPECT().FetchDepartements(gomock.Any()).Return(nil, errors.New("connection refused"))

	svc := NewSyncService(ds, repository.NewDepartementRepository(ds, nil), source, nil, m, nil)
	_, err := svc.Sync(context.Background())
	assert.True(t, domain.IsCode(err, domain.CodeInternal))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.SyncRuns.WithLabelValues("failure")))

	n, err := repository.NewDepartementRepository(ds, nil).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSyncService_RenameInvalidatesStats(t *testing.T) {
	ds := testutil.SetupTestDatastore(t, t.Name())
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	c := cachemocks.NewMockCache(ctrl)

	testutil.SeedDepartement(t, ds, "34", "Herault")
	testutil.SeedDepartement(t, ds, "30", "Gard")

	source.EXPECT().FetchDepartements(gomock.Any()).Return([]domain.ExternalDepartement{
		{Code: "34", Nom: "Hérault"},
		{Code: "30", Nom: "Gard"},
		{Code: "13", Nom: "Bouches-du-Rhône"},
	}, nil)
	c.EXPECT().Incr(gomock.Any(), cache.StatsVersionKey("34")).Return(int64(1), nil)

	svc := NewSyncService(ds, repository.NewDepartementRepository(ds, nil), source, c, nil, nil)
	report, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SyncReport{Created: 1, Updated: 1, Ignored: 1, Total: 3}, report)
}
