package seed

import (
	"strings"
	"testing"

	"github.com/campusops/lostfound/internal/database"
	"github.com/campusops/lostfound/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func Test_missingKeys(t *testing.T) {
	tcases := []struct {
		name     string
		desired  []string
		existing []string
		expected []string
	}{
		{
			name:     "empty store inserts everything",
			desired:  []string{"student", "staff", "admin"},
			existing: nil,
			expected: []string{"student", "staff", "admin"},
		},
		{
			name:     "fully seeded store inserts nothing",
			desired:  []string{"student", "staff", "admin"},
			existing: []string{"student", "staff", "admin"},
			expected: nil,
		},
		{
			name:     "partial overlap preserves desired order",
			desired:  []string{"a", "b", "c", "d"},
			existing: []string{"b", "d"},
			expected: []string{"a", "c"},
		},
		{
			name:     "duplicate desired keys inserted once",
			desired:  []string{"a", "a", "b"},
			existing: nil,
			expected: []string{"a", "b"},
		},
		{
			name:     "extra existing keys are left alone",
			desired:  []string{"a"},
			existing: []string{"a", "z"},
			expected: nil,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, missingKeys(tc.desired, tc.existing))
		})
	}
}

func Test_cleanKeys(t *testing.T) {
	logger := testutil.TestLogger(t)

	cleaned := cleanKeys(logger, "role", []string{" student ", "", "   ", "staff"})
	assert.Equal(t, []string{"student", "staff"}, cleaned)
}

func Test_loadDropOffLocations(t *testing.T) {
	logger := testutil.TestLogger(t)

	locations, err := loadDropOffLocations(logger)
	assert.NoError(t, err)
	assert.NotEmpty(t, locations)

	for _, loc := range locations {
		assert.NotEmpty(t, loc.Name)
		assert.Equal(t, strings.TrimSpace(loc.Name), loc.Name, "names are trimmed")
	}
}

func Test_loadRoomCodes(t *testing.T) {
	logger := testutil.TestLogger(t)

	codes, err := loadRoomCodes(logger)
	assert.NoError(t, err)
	assert.NotEmpty(t, codes)
	assert.Contains(t, codes, "GYM")
}

func TestRun(t *testing.T) {
	logger := testutil.TestLogger(t)

	mockRepo := &database.MockLostFoundRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("RoleNames").Return([]string(nil), nil).Once()
	mockRepo.On("InsertRoles", []string{"student", "staff", "admin"}).Return(nil).Once()
	mockRepo.On("CategoryNames").Return([]string{"Electronics"}, nil).Once()
	mockRepo.On("InsertCategories", mock.MatchedBy(func(names []string) bool {
		for _, name := range names {
			if name == "Electronics" {
				return false
			}
		}
		return len(names) > 0
	})).Return(nil).Once()
	mockRepo.On("DropOffLocationNames").Return([]string(nil), nil).Once()
	mockRepo.On("InsertDropOffLocations", mock.MatchedBy(func(locs []database.DropOffLocation) bool {
		return len(locs) > 0
	})).Return(nil).Once()
	mockRepo.On("RoomCodes").Return([]string(nil), nil).Once()
	mockRepo.On("InsertRooms", mock.MatchedBy(func(codes []string) bool {
		return len(codes) > 0
	})).Return(nil).Once()

	err := Run(logger, mockRepo)
	assert.NoError(t, err)
}

// A store that already holds every natural key gets no inserts, so running
// the seeder again cannot create duplicate reference rows.
func TestRun_idempotent(t *testing.T) {
	logger := testutil.TestLogger(t)

	locations, err := loadDropOffLocations(logger)
	assert.NoError(t, err)
	locationNames := make([]string, 0, len(locations))
	for _, loc := range locations {
		locationNames = append(locationNames, loc.Name)
	}

	roomCodes, err := loadRoomCodes(logger)
	assert.NoError(t, err)

	mockRepo := &database.MockLostFoundRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("RoleNames").Return(UserRoles(), nil).Once()
	mockRepo.On("InsertRoles", []string(nil)).Return(nil).Once()
	mockRepo.On("CategoryNames").Return(itemCategories, nil).Once()
	mockRepo.On("InsertCategories", []string(nil)).Return(nil).Once()
	mockRepo.On("DropOffLocationNames").Return(locationNames, nil).Once()
	mockRepo.On("InsertDropOffLocations", []database.DropOffLocation(nil)).Return(nil).Once()
	mockRepo.On("RoomCodes").Return(roomCodes, nil).Once()
	mockRepo.On("InsertRooms", []string(nil)).Return(nil).Once()

	err = Run(logger, mockRepo)
	assert.NoError(t, err)
}

func TestRun_storeError(t *testing.T) {
	logger := testutil.TestLogger(t)

	mockRepo := &database.MockLostFoundRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("RoleNames").Return([]string(nil), assert.AnError).Once()

	err := Run(logger, mockRepo)
	assert.Error(t, err)
}
