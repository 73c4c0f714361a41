package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/testhelpers"
)

func shoppingFixture(t *testing.T) (*ShoppingService, *gorm.DB, models.User, models.User) {
	t.Helper()
	db := testhelpers.NewTestDB(t)

	owner := models.User{Email: "owner@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	intruder := models.User{Email: "intruder@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&intruder).Error)

	return NewShoppingService(db), db, owner, intruder
}

func TestShoppingCreate(t *testing.T) {
	svc, _, owner, _ := shoppingFixture(t)

	t.Run("creates list with items", func(t *testing.T) {
		qty := 2.0
		unit := "cups"
		list, err := svc.Create(owner.ID, "Weekly shop", []NewItem{
			{Label: "flour", Quantity: &qty, Unit: &unit},
			{Label: "eggs"},
		})
		require.NoError(t, err)
		assert.Len(t, list.Items, 2)
		assert.Equal(t, "flour", list.Items[0].Label)
	})

	t.Run("rejects empty and oversized names", func(t *testing.T) {
		_, err := svc.Create(owner.ID, "", nil)
		assert.Error(t, err)

		long := make([]byte, 61)
		for i := range long {
			long[i] = 'a'
		}
		_, err = svc.Create(owner.ID, string(long), nil)
		assert.Error(t, err)
	})

	t.Run("rejects empty item labels", func(t *testing.T) {
		_, err := svc.Create(owner.ID, "List", []NewItem{{Label: ""}})
		assert.Error(t, err)
	})
}

func TestShoppingOwnership(t *testing.T) {
	svc, _, owner, intruder := shoppingFixture(t)

	list, err := svc.Create(owner.ID, "Mine", []NewItem{{Label: "milk"}})
	require.NoError(t, err)
	item := list.Items[0]

	t.Run("intruder cannot check items", func(t *testing.T) {
		_, err := svc.SetChecked(intruder.ID, item.ID, true)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("intruder cannot delete the list", func(t *testing.T) {
		err := svc.DeleteList(intruder.ID, list.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owner checks item", func(t *testing.T) {
		updated, err := svc.SetChecked(owner.ID, item.ID, true)
		require.NoError(t, err)
		assert.True(t, updated.Checked)
	})

	t.Run("owner deletes item then list", func(t *testing.T) {
		require.NoError(t, svc.DeleteItem(owner.ID, item.ID))
		require.NoError(t, svc.DeleteList(owner.ID, list.ID))

		lists, err := svc.Lists(owner.ID)
		require.NoError(t, err)
		assert.Empty(t, lists)
	})
}

func TestShoppingLists(t *testing.T) {
	svc, _, owner, intruder := shoppingFixture(t)

	_, err := svc.Create(owner.ID, "Groceries", []NewItem{{Label: "rice"}})
	require.NoError(t, err)
	_, err = svc.Create(intruder.ID, "Theirs", nil)
	require.NoError(t, err)

	lists, err := svc.Lists(owner.ID)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Groceries", lists[0].Name)
	require.Len(t, lists[0].Items, 1)
	assert.Equal(t, "rice", lists[0].Items[0].Label)
}
