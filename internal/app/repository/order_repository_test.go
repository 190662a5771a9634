package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/db"
)

func setupOrderTest(t *testing.T) (*gorm.DB, OrderRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewOrderRepository(testDB)
	return testDB, repo
}

func TestOrderRepository_Create(t *testing.T) {
	testDB, repo := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	kevin := seedRepoUser(t, testDB, "kevin")
	anna := seedRepoUser(t, testDB, "anna")
	seedRepoOffer(t, testDB, kevin.ID, "Logo Design", [3]float64{100, 200, 500})

	order := &model.Order{
		BuyerID:       anna.ID,
		OfferDetailID: 1,
		Status:        model.OrderStatusInProgress,
	}
	err := repo.Create(order)
	assert.NoError(t, err)
	assert.NotZero(t, order.ID)
}

func TestOrderRepository_FindByID(t *testing.T) {
	testDB, repo := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	kevin := seedRepoUser(t, testDB, "kevin")
	anna := seedRepoUser(t, testDB, "anna")
	seedRepoOffer(t, testDB, kevin.ID, "Logo Design", [3]float64{100, 200, 500})

	order := &model.Order{BuyerID: anna.ID, OfferDetailID: 2, Status: model.OrderStatusInProgress}
	require.NoError(t, testDB.Create(order).Error)

	found, err := repo.FindByID(order.ID)
	assert.NoError(t, err)
	// The tier and its offer come preloaded; OwnerID depends on both
	assert.Equal(t, model.OfferTypeStandard, found.OfferDetail.OfferType)
	assert.Equal(t, "Logo Design", found.OfferDetail.Offer.Title)
	assert.Equal(t, kevin.ID, found.OwnerID())

	_, err = repo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepository_FindForUser(t *testing.T) {
	testDB, repo := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	kevin := seedRepoUser(t, testDB, "kevin")
	anna := seedRepoUser(t, testDB, "anna")
	tom := seedRepoUser(t, testDB, "tom")
	seedRepoOffer(t, testDB, kevin.ID, "Logo Design", [3]float64{100, 200, 500})

	first := &model.Order{BuyerID: anna.ID, OfferDetailID: 1, Status: model.OrderStatusInProgress}
	require.NoError(t, testDB.Create(first).Error)
	second := &model.Order{BuyerID: tom.ID, OfferDetailID: 2, Status: model.OrderStatusInProgress}
	require.NoError(t, testDB.Create(second).Error)

	// The buyer sees only their own order
	orders, err := repo.FindForUser(anna.ID)
	assert.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, first.ID, orders[0].ID)

	// The offer creator sees orders on all their tiers, newest first
	orders, err = repo.FindForUser(kevin.ID)
	assert.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	// An uninvolved user sees nothing
	other := seedRepoUser(t, testDB, "lisa")
	orders, err = repo.FindForUser(other.ID)
	assert.NoError(t, err)
	assert.Len(t, orders, 0)
}

func TestOrderRepository_CountForBusinessByStatus(t *testing.T) {
	testDB, repo := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	kevin := seedRepoUser(t, testDB, "kevin")
	anna := seedRepoUser(t, testDB, "anna")
	tom := seedRepoUser(t, testDB, "tom")
	seedRepoOffer(t, testDB, kevin.ID, "Logo Design", [3]float64{100, 200, 500})

	require.NoError(t, testDB.Create(&model.Order{BuyerID: anna.ID, OfferDetailID: 1, Status: model.OrderStatusInProgress}).Error)
	require.NoError(t, testDB.Create(&model.Order{BuyerID: tom.ID, OfferDetailID: 2, Status: model.OrderStatusInProgress}).Error)
	require.NoError(t, testDB.Create(&model.Order{BuyerID: anna.ID, OfferDetailID: 3, Status: model.OrderStatusCompleted}).Error)

	count, err := repo.CountForBusinessByStatus(kevin.ID, model.OrderStatusInProgress)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountForBusinessByStatus(kevin.ID, model.OrderStatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountForBusinessByStatus(anna.ID, model.OrderStatusInProgress)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestOrderRepository_Update(t *testing.T) {
	testDB, repo := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	kevin := seedRepoUser(t, testDB, "kevin")
	anna := seedRepoUser(t, testDB, "anna")
	seedRepoOffer(t, testDB, kevin.ID, "Logo Design", [3]float64{100, 200, 500})

	order := &model.Order{BuyerID: anna.ID, OfferDetailID: 1, Status: model.OrderStatusInProgress}
	require.NoError(t, testDB.Create(order).Error)

	order.Status = model.OrderStatusCompleted
	err := repo.Update(order)
	assert.NoError(t, err)

	var stored model.Order
	require.NoError(t, testDB.First(&stored, order.ID).Error)
	assert.Equal(t, model.OrderStatusCompleted, stored.Status)
}
