package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varejolabs/catalog_api/internal/models"
	"github.com/varejolabs/catalog_api/internal/utils"
)

// mockProductStore keeps products in a map, including soft-deleted
// rows, so the uniqueness-among-live-rows rules can be exercised
// without a database.
type mockProductStore struct {
	products map[uuid.UUID]*models.Product

	// Error injection
	getAllError error
	insertError error
	updateError error

	// Simulates a row soft-deleted between the existence check and the
	// write: Update reports zero rows affected.
	updateAffectsNothing bool
}

func newMockProductStore() *mockProductStore {
	return &mockProductStore{products: make(map[uuid.UUID]*models.Product)}
}

func (m *mockProductStore) GetAll(ctx context.Context) ([]models.Product, error) {
	if m.getAllError != nil {
		return nil, m.getAllError
	}
	result := []models.Product{}
	for _, p := range m.products {
		if !p.IsDeleted {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockProductStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	copy := *p
	return &copy, nil
}

func (m *mockProductStore) Insert(ctx context.Context, p *models.Product) error {
	if m.insertError != nil {
		return m.insertError
	}
	for _, existing := range m.products {
		if !existing.IsDeleted && existing.Code == p.Code {
			return utils.ErrDuplicateCode
		}
	}
	copy := *p
	m.products[p.ID] = &copy
	return nil
}

func (m *mockProductStore) Update(ctx context.Context, p *models.Product) (int64, error) {
	if m.updateError != nil {
		return 0, m.updateError
	}
	if m.updateAffectsNothing {
		return 0, nil
	}
	existing, ok := m.products[p.ID]
	if !ok || existing.IsDeleted {
		return 0, nil
	}
	existing.Code = p.Code
	existing.Description = p.Description
	existing.DepartmentCode = p.DepartmentCode
	existing.Price = p.Price
	existing.Active = p.Active
	existing.UpdatedAt = p.UpdatedAt
	return 1, nil
}

func (m *mockProductStore) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	existing, ok := m.products[id]
	if !ok || existing.IsDeleted {
		return 0, nil
	}
	existing.IsDeleted = true
	return 1, nil
}

func (m *mockProductStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	p, ok := m.products[id]
	return ok && !p.IsDeleted, nil
}

func (m *mockProductStore) CodeExists(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	for _, p := range m.products {
		if p.IsDeleted || p.Code != code {
			continue
		}
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func validInput() *ProductInput {
	active := true
	return &ProductInput{
		Code:           "SKU1",
		Description:    "Item",
		DepartmentCode: "010",
		Price:          decimal.RequireFromString("9.99"),
		Active:         &active,
	}
}

func TestCreateStampsIdentityAndTimestamps(t *testing.T) {
	store := newMockProductStore()
	svc := NewProductService(store)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.True(t, created.Active)

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, *created, *fetched)
}

func TestCreateDefaultsActiveTrue(t *testing.T) {
	store := newMockProductStore()
	svc := NewProductService(store)

	input := validInput()
	input.Active = nil

	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, created.Active)
}

func TestCreateDuplicateCodeConflicts(t *testing.T) {
	store := newMockProductStore()
	svc := NewProductService(store)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	second := validInput()
	second.Description = "Other item"
	_, err = svc.Create(context.Background(), second)
	assert.ErrorIs(t, err, utils.ErrDuplicateCode)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateReusesCodeOfDeletedProduct(t *testing.T) {
	store := newMockProductStore()
	svc := NewProductService(store)

	first, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), first.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	second, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUpdateUnknownIDReturnsAbsent(t *testing.T) {
	store := newMockProductStore()
	svc := NewProductService(store)

	updated, err := svc.Update(context.Background(), uuid.New(), validInput())
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdateDeletedProductReturnsAbsent(t *testing.T) {
	store := newMockProductStore()
	svc := NewProductService(store)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	_, err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, validInput())
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdateCodeHeldByOtherProductConflicts(t *testing.T) {
	store := newMockProductStore()
	svc := NewProductService(store)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	other := validInput()
	other.Code = "SKU2"
	second, err := svc.Create(context.Background(), other)
	require.NoError(t, err)

	steal := validInput()
	_, err = svc.Update(context.Background(), second.ID, steal)
	assert.ErrorIs(t, err, utils.ErrDuplicateCode)
}

func TestUpdateKeepsOwnCode(t *testing.T) {
	store := newMockProductStore()
	svc := NewProductService(store)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	input := validInput()
	input.Description = "Renamed"
	updated, err := svc.Update(context.Background(), created.ID, input)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Renamed", updated.Description)
	assert.Equal(t, created.Code, updated.Code)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestUpdateRaceWithDeleteReturnsAbsent(t *testing.T) {
	store := newMockProductStore()
	svc := NewProductService(store)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	// The row passes the existence check but the write affects nothing,
	// as if another request soft-deleted it in between.
	store.updateAffectsNothing = true

	updated, err := svc.Update(context.Background(), created.ID, validInput())
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDeleteTwice(t *testing.T) {
	store := newMockProductStore()
	svc := NewProductService(store)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	first, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, second)
}

func TestDeletedProductInvisibleToReads(t *testing.T) {
	store := newMockProductStore()
	svc := NewProductService(store)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	_, err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched)

	exists, err := svc.Exists(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCodeExistsExcludesOwnID(t *testing.T) {
	store := newMockProductStore()
	svc := NewProductService(store)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	taken, err := svc.CodeExists(context.Background(), created.Code, nil)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = svc.CodeExists(context.Background(), created.Code, &created.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestStoreErrorsPropagate(t *testing.T) {
	store := newMockProductStore()
	svc := NewProductService(store)

	boom := errors.New("connection refused")
	store.getAllError = boom
	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, boom)

	store.getAllError = nil
	store.insertError = boom
	_, err = svc.Create(context.Background(), validInput())
	assert.ErrorIs(t, err, boom)
}
