package services

import (
	"context"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/dhrms-backend/internal/database"
	"github.com/AnshRaj112/dhrms-backend/internal/models"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestDashboard_Build(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	repo := NewRepository(store, log.NewNopLogger())
	agg := NewDashboardAggregator(repo, func() time.Time { return fixedNow })

	require.NoError(t, repo.SaveUsers(ctx, "p1", []models.User{
		{ID: "1", Username: "ravi", Password: "secret1"},
		{ID: "2", Username: "asha", Password: "pw"},
	}))
	require.NoError(t, repo.SaveFormBlob(ctx, "p1", models.PageVaccinations, models.FormBlob{"vaccine_name": "BCG"}))
	require.NoError(t, repo.SaveFormBlob(ctx, "p1", models.PageWorkers, models.FormBlob{"first_name": "Ravi"}))
	require.NoError(t, repo.SaveFormBlob(ctx, "p1", models.PageFacilities, models.FormBlob{}))

	admin := &models.User{ID: "admin", Username: "admin", FullName: "System Administrator", Role: models.RoleAdmin}
	d, err := agg.Build(ctx, "p1", admin)
	require.NoError(t, err)

	assert.Equal(t, "System Administrator", d.Greeting)
	assert.Equal(t, Stats{TotalUsers: 2, FormsSubmitted: 2, GeneratedAt: fixedNow}, d.Stats)
	assert.Equal(t, *admin, d.Session)
	assert.Len(t, d.Panels, 5)
	assert.NotEmpty(t, d.Actions)

	require.Len(t, d.Users, 2)
	for _, u := range d.Users {
		assert.Equal(t, MaskedPassword, u.Password)
	}
	stored, _ := repo.Users(ctx, "p1")
	assert.Equal(t, "secret1", stored[0].Password, "masking must not touch the store")

	require.Len(t, d.Forms, len(FormSequence))
	for i, f := range d.Forms {
		assert.Equal(t, FormSequence[i], f.Page)
		assert.NotNil(t, f.Data)
	}
	assert.Equal(t, "Ravi", d.Forms[0].Data["first_name"])
	assert.Empty(t, d.Forms[1].Data)
	assert.Equal(t, "BCG", d.Forms[2].Data["vaccine_name"])
}

type countingStore struct {
	database.Store
	gets int
}

func (s *countingStore) Get(ctx context.Context, profile, key string) ([]byte, bool, error) {
	s.gets++
	return s.Store.Get(ctx, profile, key)
}

func TestDashboard_GuardsBeforeReading(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: database.NewMemoryStore()}
	agg := NewDashboardAggregator(NewRepository(store, log.NewNopLogger()), nil)

	d, err := agg.Build(ctx, "p1", nil)
	assert.Nil(t, d)
	assert.True(t, IsUnauthenticated(err))

	d, err = agg.Build(ctx, "p1", &models.User{Username: "ravi", Role: models.RoleHealthcare})
	assert.Nil(t, d)
	assert.True(t, IsUnauthorized(err))

	assert.Zero(t, store.gets, "no panel data may be read for non-admins")
}

func TestDashboard_Stats(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(database.NewMemoryStore(), log.NewNopLogger())
	agg := NewDashboardAggregator(repo, func() time.Time { return fixedNow })

	s, err := agg.Stats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, Stats{GeneratedAt: fixedNow}, s)

	require.NoError(t, repo.SaveFormBlob(ctx, "p1", models.PageMedicalVisits, models.FormBlob{"facility": "PHC"}))
	s, err = agg.Stats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.FormsSubmitted)
}

func TestDashboard_StoreFailure(t *testing.T) {
	agg := NewDashboardAggregator(NewRepository(failingStore{}, log.NewNopLogger()), nil)
	_, err := agg.Build(context.Background(), "p1", &models.User{Username: "admin"})
	assert.True(t, IsInternal(err))
}
