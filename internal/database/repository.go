package database

type LostFoundRepository interface {
	Ping() error
	CreateUser(params CreateUserParams) (User, error)
	GetUserById(id string) (User, error)
	GetUserByEmail(email string) (User, error)
	CountUsers() (int, error)
	ListRoles() ([]Role, error)
	ListCategories() ([]ItemCategory, error)
	CreateLostItem(params CreateLostItemParams) (LostItem, error)
	GetLostItemByReference(referenceId string) (LostItem, error)
	ListLostItems(status ItemStatus) ([]LostItem, error)
	ClaimLostItem(referenceId, userId string) (LostItem, error)
	CollectLostItem(referenceId, userId string) (LostItem, error)

	// Seed store operations, one transaction per insert batch.
	RoleNames() ([]string, error)
	InsertRoles(names []string) error
	CategoryNames() ([]string, error)
	InsertCategories(names []string) error
	DropOffLocationNames() ([]string, error)
	InsertDropOffLocations(locations []DropOffLocation) error
	RoomCodes() ([]string, error)
	InsertRooms(codes []string) error
}
