package items_test

import (
	"strings"
	"testing"

	"campusfinder/backend/internal/apperr"
	"campusfinder/backend/internal/items"
	"campusfinder/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of the registry's storage slice.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateItem(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockStore) GetItemByID(id uint) (*models.Item, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockStore) ListItemsByType(itemType string) ([]models.Item, error) {
	args := m.Called(itemType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockStore) ListItemsByUser(userID, itemType string) ([]models.Item, error) {
	args := m.Called(userID, itemType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func validFoundInput() items.ReportFoundInput {
	return items.ReportFoundInput{
		Title:       "Blue Backpack",
		Category:    "Bags",
		Description: "Found near the library entrance",
		Location:    "Library",
		DateFound:   "2026-08-20",
	}
}

// TestReportFound_HappyPath checks the initial status and the unique id shape.
func TestReportFound_HappyPath(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := items.NewService(store)
	reporter := &models.User{ID: "finder-1"}

	store.On("CreateItem", mock.AnythingOfType("*models.Item")).Return(nil).Once()

	// Act
	item, err := svc.ReportFound(reporter, validFoundInput())

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.ItemTypeFound, item.Type)
	assert.Equal(t, models.ItemStatusPending, item.Status)
	assert.Equal(t, "finder-1", item.UserID)
	assert.True(t, strings.HasPrefix(item.UniqueItemID, "FOUND-"))
	assert.Len(t, item.UniqueItemID, len("FOUND-")+10)
	assert.Equal(t, strings.ToUpper(item.UniqueItemID), item.UniqueItemID)
	store.AssertExpectations(t)
}

// TestReportFound_BannedUser is rejected before any insert.
func TestReportFound_BannedUser(t *testing.T) {
	store := new(MockStore)
	svc := items.NewService(store)

	_, err := svc.ReportFound(&models.User{ID: "u", IsBanned: true}, validFoundInput())

	assert.True(t, apperr.IsKind(err, apperr.Forbidden))
	store.AssertNotCalled(t, "CreateItem", mock.Anything)
}

// TestReportFound_MissingFields covers each required field.
func TestReportFound_MissingFields(t *testing.T) {
	store := new(MockStore)
	svc := items.NewService(store)
	reporter := &models.User{ID: "u"}

	mutations := []func(*items.ReportFoundInput){
		func(in *items.ReportFoundInput) { in.Title = "" },
		func(in *items.ReportFoundInput) { in.Category = "" },
		func(in *items.ReportFoundInput) { in.Description = "" },
		func(in *items.ReportFoundInput) { in.Location = "" },
		func(in *items.ReportFoundInput) { in.DateFound = "" },
	}

	for _, mutate := range mutations {
		in := validFoundInput()
		mutate(&in)
		_, err := svc.ReportFound(reporter, in)
		assert.True(t, apperr.IsKind(err, apperr.Validation))
	}
	store.AssertNotCalled(t, "CreateItem", mock.Anything)
}

// TestReportLost_StatusAndProof verifies the reported status and that the
// private proof is stored as supplied.
func TestReportLost_StatusAndProof(t *testing.T) {
	store := new(MockStore)
	svc := items.NewService(store)
	store.On("CreateItem", mock.AnythingOfType("*models.Item")).Return(nil).Once()

	item, err := svc.ReportLost(&models.User{ID: "loser-1"}, items.ReportLostInput{
		Title:        "Student ID Card",
		Category:     "Documents",
		Description:  "Lost somewhere in Block C",
		Location:     "Block C",
		DateLost:     "2026-08-19",
		PrivateProof: "Card number ends in 4471",
		RewardAmount: 100,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.ItemStatusReported, item.Status)
	assert.Equal(t, "Card number ends in 4471", item.PrivateProof)
	assert.Equal(t, 100, item.RewardAmount)
	assert.True(t, strings.HasPrefix(item.UniqueItemID, "LOST-"))
}

// TestGetItem_ProofVisibility verifies the private proof never leaks to a
// viewer who is neither the owner nor authority.
func TestGetItem_ProofVisibility(t *testing.T) {
	stored := &models.Item{
		Type:         models.ItemTypeLost,
		UserID:       "owner-1",
		Title:        "Wallet",
		PrivateProof: "Has a train ticket inside",
	}

	tests := []struct {
		name      string
		requester *models.User
		wantProof string
	}{
		{"anonymous", nil, ""},
		{"stranger", &models.User{ID: "someone-else", Role: models.RoleNormal}, ""},
		{"assisted", &models.User{ID: "helper", Role: models.RoleAssisted}, ""},
		{"owner", &models.User{ID: "owner-1", Role: models.RoleNormal}, "Has a train ticket inside"},
		{"authority", &models.User{ID: "staff", Role: models.RoleAuthority}, "Has a train ticket inside"},
		{"admin", &models.User{ID: "root", Role: models.RoleAdmin}, "Has a train ticket inside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			svc := items.NewService(store)
			store.On("GetItemByID", uint(7)).Return(stored, nil).Once()

			item, err := svc.GetItem(7, tt.requester)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantProof, item.PrivateProof)
			// Redaction must not mutate the stored row.
			assert.Equal(t, "Has a train ticket inside", stored.PrivateProof)
		})
	}
}

// TestGetItem_NotFound maps a missing id to the NotFound kind.
func TestGetItem_NotFound(t *testing.T) {
	store := new(MockStore)
	svc := items.NewService(store)
	store.On("GetItemByID", uint(99)).Return(nil, nil).Once()

	_, err := svc.GetItem(99, nil)

	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

// TestListLost_StripsProofs verifies the public lost listing is redacted.
func TestListLost_StripsProofs(t *testing.T) {
	store := new(MockStore)
	svc := items.NewService(store)
	store.On("ListItemsByType", models.ItemTypeLost).Return([]models.Item{
		{Title: "Keys", PrivateProof: "red keychain"},
		{Title: "Phone", PrivateProof: "lock screen photo"},
	}, nil).Once()

	list, err := svc.ListLost()

	assert.NoError(t, err)
	for _, item := range list {
		assert.Empty(t, item.PrivateProof)
	}
}
