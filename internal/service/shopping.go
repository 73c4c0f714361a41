package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

var ErrNotFound = errors.New("not found")

// ShoppingService manages per-user shopping lists and their items.
type ShoppingService struct {
	db *gorm.DB
}

func NewShoppingService(db *gorm.DB) *ShoppingService {
	return &ShoppingService{db: db}
}

// NewItem is one item in a list-creation request.
type NewItem struct {
	Label    string   `json:"label"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
}

// Lists returns the user's shopping lists with items, newest list first.
func (s *ShoppingService) Lists(userID uuid.UUID) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	if err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	return lists, nil
}

// Create makes a new list with the given items.
func (s *ShoppingService) Create(userID uuid.UUID, name string, items []NewItem) (*models.ShoppingList, error) {
	if name == "" || len(name) > 60 {
		return nil, fmt.Errorf("list name must be 1-60 characters")
	}
	for _, it := range items {
		if it.Label == "" || len(it.Label) > 200 {
			return nil, fmt.Errorf("item labels must be 1-200 characters")
		}
	}

	list := models.ShoppingList{UserID: userID, Name: name}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&list).Error; err != nil {
			return err
		}
		for _, it := range items {
			item := models.ShoppingItem{
				ListID:   list.ID,
				Label:    it.Label,
				Quantity: it.Quantity,
				Unit:     it.Unit,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			list.Items = append(list.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}
	return &list, nil
}

// SetChecked marks an item checked or unchecked. Ownership is enforced
// through the parent list.
func (s *ShoppingService) SetChecked(userID, itemID uuid.UUID, checked bool) (*models.ShoppingItem, error) {
	var item models.ShoppingItem
	if err := s.db.Where("id = ?", itemID).First(&item).Error; err != nil {
		return nil, ErrNotFound
	}
	if err := s.ownsList(userID, item.ListID); err != nil {
		return nil, err
	}
	if err := s.db.Model(&item).Update("checked", checked).Error; err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	item.Checked = checked
	return &item, nil
}

// DeleteList removes a list and its items. Returns ErrNotFound when the list
// does not exist or belongs to another user.
func (s *ShoppingService) DeleteList(userID, listID uuid.UUID) error {
	if err := s.ownsList(userID, listID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", listID).Delete(&models.ShoppingItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", listID).Delete(&models.ShoppingList{}).Error
	})
}

// DeleteItem removes a single item, enforcing ownership through its list.
func (s *ShoppingService) DeleteItem(userID, itemID uuid.UUID) error {
	var item models.ShoppingItem
	if err := s.db.Where("id = ?", itemID).First(&item).Error; err != nil {
		return ErrNotFound
	}
	if err := s.ownsList(userID, item.ListID); err != nil {
		return err
	}
	return s.db.Delete(&item).Error
}

func (s *ShoppingService) ownsList(userID, listID uuid.UUID) error {
	var list models.ShoppingList
	if err := s.db.Select("id", "user_id").Where("id = ?", listID).First(&list).Error; err != nil {
		return ErrNotFound
	}
	if list.UserID != userID {
		return ErrNotFound
	}
	return nil
}
