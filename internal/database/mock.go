package database

import (
	"github.com/stretchr/testify/mock"
)

type MockLostFoundRepository struct {
	mock.Mock
}

func (m *MockLostFoundRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockLostFoundRepository) CreateUser(params CreateUserParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockLostFoundRepository) GetUserById(id string) (User, error) {
	args := m.Called(id)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockLostFoundRepository) GetUserByEmail(email string) (User, error) {
	args := m.Called(email)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockLostFoundRepository) CountUsers() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}
func (m *MockLostFoundRepository) ListRoles() ([]Role, error) {
	args := m.Called()
	return args.Get(0).([]Role), args.Error(1)
}
func (m *MockLostFoundRepository) ListCategories() ([]ItemCategory, error) {
	args := m.Called()
	return args.Get(0).([]ItemCategory), args.Error(1)
}
func (m *MockLostFoundRepository) CreateLostItem(params CreateLostItemParams) (LostItem, error) {
	args := m.Called(params)
	return args.Get(0).(LostItem), args.Error(1)
}
func (m *MockLostFoundRepository) GetLostItemByReference(referenceId string) (LostItem, error) {
	args := m.Called(referenceId)
	return args.Get(0).(LostItem), args.Error(1)
}
func (m *MockLostFoundRepository) ListLostItems(status ItemStatus) ([]LostItem, error) {
	args := m.Called(status)
	return args.Get(0).([]LostItem), args.Error(1)
}
func (m *MockLostFoundRepository) ClaimLostItem(referenceId, userId string) (LostItem, error) {
	args := m.Called(referenceId, userId)
	return args.Get(0).(LostItem), args.Error(1)
}
func (m *MockLostFoundRepository) CollectLostItem(referenceId, userId string) (LostItem, error) {
	args := m.Called(referenceId, userId)
	return args.Get(0).(LostItem), args.Error(1)
}
func (m *MockLostFoundRepository) RoleNames() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockLostFoundRepository) InsertRoles(names []string) error {
	args := m.Called(names)
	return args.Error(0)
}
func (m *MockLostFoundRepository) CategoryNames() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockLostFoundRepository) InsertCategories(names []string) error {
	args := m.Called(names)
	return args.Error(0)
}
func (m *MockLostFoundRepository) DropOffLocationNames() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockLostFoundRepository) InsertDropOffLocations(locations []DropOffLocation) error {
	args := m.Called(locations)
	return args.Error(0)
}
func (m *MockLostFoundRepository) RoomCodes() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockLostFoundRepository) InsertRooms(codes []string) error {
	args := m.Called(codes)
	return args.Error(0)
}
