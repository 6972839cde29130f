package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/shared"
)

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p, err := catalog.NewProduct("Wool Coat")
	require.NoError(t, err)
	p.Brand = "Acme"
	require.NoError(t, p.SetCostPrice(decimal.NewFromInt(40000)))

	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wool Coat", found.Name)
	assert.Equal(t, "Acme", found.Brand)
	require.NotNil(t, found.CostPrice)
	assert.True(t, found.CostPrice.Equal(decimal.NewFromInt(40000)))
	assert.Nil(t, found.SellingPriceUSD, "underived price stays NULL")
}

func TestGormProductRepository_FindAllFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	catRepo := NewGormCategoryRepository(db)
	ctx := context.Background()

	cat, err := catalog.NewCategory("Outerwear")
	require.NoError(t, err)
	require.NoError(t, catRepo.Save(ctx, cat))

	p1, err := catalog.NewProduct("Wool Coat")
	require.NoError(t, err)
	p1.CategoryID = &cat.ID
	require.NoError(t, repo.Save(ctx, p1))

	p2, err := catalog.NewProduct("Sneakers")
	require.NoError(t, err)
	p2.IsActive = false
	require.NoError(t, repo.Save(ctx, p2))

	products, total, err := repo.FindAll(ctx, catalog.ProductFilter{CategoryID: &cat.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Wool Coat", products[0].Name)
	require.NotNil(t, products[0].Category, "category comes back resolved")
	assert.Equal(t, "Outerwear", products[0].Category.Name)

	active := true
	products, total, err = repo.FindAll(ctx, catalog.ProductFilter{IsActive: &active})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Wool Coat", products[0].Name)
}

func TestGormProductRepository_ReplaceAttributeValues(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	catRepo := NewGormCategoryRepository(db)
	ctx := context.Background()

	cat, err := catalog.NewCategory("Skincare")
	require.NoError(t, err)
	require.NoError(t, catRepo.Save(ctx, cat))

	volume, err := catalog.NewCategoryAttribute(cat.ID, "Volume", 0)
	require.NoError(t, err)
	require.NoError(t, catRepo.SaveAttribute(ctx, volume))
	shade, err := catalog.NewCategoryAttribute(cat.ID, "Shade", 1)
	require.NoError(t, err)
	require.NoError(t, catRepo.SaveAttribute(ctx, shade))

	p, err := catalog.NewProduct("Cushion")
	require.NoError(t, err)
	p.CategoryID = &cat.ID
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, repo.ReplaceAttributeValues(ctx, p.ID, []catalog.ProductAttributeValue{
		*catalog.NewProductAttributeValue(p.ID, volume.ID, "15g"),
		*catalog.NewProductAttributeValue(p.ID, shade.ID, "21N"),
	}))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, found.AttributeValues, 2)
	byName := make(map[string]string)
	for _, v := range found.AttributeValues {
		require.NotNil(t, v.Attribute, "attribute comes back resolved")
		byName[v.Attribute.AttributeName] = v.Value
	}
	assert.Equal(t, "15g", byName["Volume"])
	assert.Equal(t, "21N", byName["Shade"])

	// Replacing again swaps the whole set, re-using an attribute is fine.
	require.NoError(t, repo.ReplaceAttributeValues(ctx, p.ID, []catalog.ProductAttributeValue{
		*catalog.NewProductAttributeValue(p.ID, shade.ID, "23W"),
	}))
	found, err = repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, found.AttributeValues, 1)
	assert.Equal(t, "23W", found.AttributeValues[0].Value)

	require.NoError(t, repo.ReplaceAttributeValues(ctx, p.ID, nil))
	found, err = repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, found.AttributeValues)
}

func TestGormCategoryRepository_Attributes(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	cat, err := catalog.NewCategory("Makeup")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cat))

	second, err := catalog.NewCategoryAttribute(cat.ID, "Finish", 1)
	require.NoError(t, err)
	require.NoError(t, repo.SaveAttribute(ctx, second))
	first, err := catalog.NewCategoryAttribute(cat.ID, "Shade", 0)
	require.NoError(t, err)
	require.NoError(t, repo.SaveAttribute(ctx, first))

	found, err := repo.FindByID(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, found.Attributes, 2)
	assert.Equal(t, "Shade", found.Attributes[0].AttributeName, "sort_order wins over insertion order")
	assert.Equal(t, "Finish", found.Attributes[1].AttributeName)

	require.NoError(t, repo.DeleteAttribute(ctx, first.ID))
	_, err = repo.FindAttributeByID(ctx, first.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.DeleteAttribute(ctx, first.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCategoryRepository_FindByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	cat, err := catalog.NewCategory("Shoes")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cat))

	found, err := repo.FindByName(ctx, "Shoes")
	require.NoError(t, err)
	assert.Equal(t, cat.ID, found.ID)

	_, err = repo.FindByName(ctx, "Hats")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
