package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/app/repository"
	"github.com/skillora/skillora-backend/internal/db"
)

func setupStatsServiceTest(t *testing.T) (StatsService, OfferService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	reviewRepo := repository.NewReviewRepository(testDB)
	profileRepo := repository.NewProfileRepository(testDB)
	offerRepo := repository.NewOfferRepository(testDB)
	statsService := NewStatsService(reviewRepo, profileRepo, offerRepo)
	offerService := NewOfferService(offerRepo, profileRepo, testDB)

	return statsService, offerService, testDB
}

func TestStatsService_BaseInfo_Empty(t *testing.T) {
	statsService, _, _ := setupStatsServiceTest(t)

	info, err := statsService.BaseInfo()
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.ReviewCount)
	assert.Equal(t, 0.0, info.AverageRating)
	assert.Equal(t, int64(0), info.BusinessProfileCount)
	assert.Equal(t, int64(0), info.OfferCount)
}

func TestStatsService_BaseInfo(t *testing.T) {
	statsService, offerService, testDB := setupStatsServiceTest(t)

	kevin := seedServiceUser(t, testDB, "kevin", model.TypeBusiness)
	mila := seedServiceUser(t, testDB, "mila", model.TypeBusiness)
	anna := seedServiceUser(t, testDB, "anna", model.TypeCustomer)
	tom := seedServiceUser(t, testDB, "tom", model.TypeCustomer)
	lisa := seedServiceUser(t, testDB, "lisa", model.TypeCustomer)

	_, err := offerService.Create(kevin.ID, "Logo Design", "", "", threeTiers())
	require.NoError(t, err)

	// 5, 4 and 4 average to 4.333..., rounded to one decimal
	require.NoError(t, testDB.Create(&model.Review{BusinessUserID: kevin.ID, ReviewerID: anna.ID, Rating: 5}).Error)
	require.NoError(t, testDB.Create(&model.Review{BusinessUserID: kevin.ID, ReviewerID: tom.ID, Rating: 4}).Error)
	require.NoError(t, testDB.Create(&model.Review{BusinessUserID: mila.ID, ReviewerID: lisa.ID, Rating: 4}).Error)

	info, err := statsService.BaseInfo()
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.ReviewCount)
	assert.Equal(t, 4.3, info.AverageRating)
	assert.Equal(t, int64(2), info.BusinessProfileCount)
	assert.Equal(t, int64(1), info.OfferCount)
}
