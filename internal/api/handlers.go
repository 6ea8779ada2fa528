package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/campusops/lostfound/internal/database"
	"github.com/campusops/lostfound/internal/events"
	"github.com/campusops/lostfound/internal/types"
	"github.com/gorilla/websocket"
	"github.com/teris-io/shortid"
)

type AddUserRequest struct {
	Id        string `json:"id"`
	RoleName  string `json:"role_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type AddUserResponse struct {
	Message string `json:"message"`
	UserId  string `json:"user_id"`
}

type ReportItemRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageUrl     string `json:"image_url"`
	DroppedOffBy string `json:"dropped_off_by"`
	FoundIn      int    `json:"found_in"`
	DroppedOffAt int    `json:"dropped_off_at"`
	CategoryId   int    `json:"category_id"`
}

type TransitionItemRequest struct {
	ClaimedBy   string `json:"claimed_by"`
	CollectedBy string `json:"collected_by"`
}

func (s *LostFoundApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

func (s *LostFoundApp) healthCheck(w http.ResponseWriter, _ *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.log.Println("health check:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *LostFoundApp) addUser(w http.ResponseWriter, r *http.Request) {
	var req AddUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	roleName := strings.ToLower(strings.TrimSpace(req.RoleName))

	roles, err := s.db.ListRoles()
	if err != nil {
		s.log.Println("list roles:", err)
		errResp := NewPersistenceError("An error occurred while adding the user.", err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	roleIdx := slices.IndexFunc(roles, func(role database.Role) bool {
		return role.Name == roleName
	})
	if roleIdx < 0 {
		names := make([]string, len(roles))
		for i, role := range roles {
			names[i] = role.Name
		}
		errResp := NewValidationError(fmt.Sprintf("Invalid role name: %s. Valid roles are: %s.",
			req.RoleName, strings.Join(names, ", ")))
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	id := strings.TrimSpace(req.Id)
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := strings.TrimSpace(req.Email)

	if id == "" || firstName == "" || lastName == "" || email == "" {
		errResp := NewValidationError("Id, first name, last name, and email are required.")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	pwdHash, err := hashPassword(defaultPassword(firstName, email))
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	newUser, err := s.db.CreateUser(database.CreateUserParams{
		Id:           id,
		RoleId:       roles[roleIdx].Id,
		FirstName:    firstName,
		LastName:     lastName,
		EmailAddress: email,
		PasswordHash: pwdHash,
	})
	if err != nil {
		var errResp *ApiError
		if database.IsUniqueViolation(err) {
			errResp = NewValidationError("A user with this id or email already exists.")
		} else {
			s.log.Println("create user:", err)
			errResp = NewPersistenceError("An error occurred while adding the user.", err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, AddUserResponse{
		Message: "User added successfully",
		UserId:  newUser.Id,
	})
}

func (s *LostFoundApp) userCount(w http.ResponseWriter, _ *http.Request) {
	count, err := s.db.CountUsers()
	if err != nil {
		s.log.Println("count users:", err)
		errResp := NewPersistenceError("An error occurred while fetching user count.", err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, map[string]int{"user_count": count})
}

func (s *LostFoundApp) listCategories(w http.ResponseWriter, _ *http.Request) {
	dbCategories, err := s.db.ListCategories()
	if err != nil {
		s.log.Println("list categories:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if len(dbCategories) == 0 {
		errResp := NewNotFoundMessageError("No categories found.")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	categories := make([]types.ItemCategory, 0, len(dbCategories))
	for _, c := range dbCategories {
		categories = append(categories, types.ItemCategory{Id: c.Id, Name: c.Name})
	}

	s.writeJson(w, http.StatusOK, map[string][]types.ItemCategory{"categories": categories})
}

func (s *LostFoundApp) reportItem(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req ReportItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errResp := NewValidationError("Item name is required.")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}
	if req.FoundIn <= 0 || req.DroppedOffAt <= 0 || req.CategoryId <= 0 {
		errResp := NewValidationError("Room, drop-off location, and category are required.")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = "No description provided"
	}

	referenceId, err := shortid.Generate()
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	item, err := s.db.CreateLostItem(database.CreateLostItemParams{
		ReferenceId:  referenceId,
		Name:         name,
		Description:  description,
		ImageUrl:     strings.TrimSpace(req.ImageUrl),
		FoundBy:      userId,
		DroppedOffBy: strings.TrimSpace(req.DroppedOffBy),
		FoundIn:      req.FoundIn,
		DroppedOffAt: req.DroppedOffAt,
		CategoryId:   req.CategoryId,
	})
	if err != nil {
		s.log.Println("create lost item:", err)
		errResp := NewPersistenceError("An error occurred while reporting the item.", err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	itemResp := toTypesItem(item)
	s.hub.Publish(events.EventItemReported, itemResp)

	s.writeJson(w, http.StatusCreated, itemResp)
}

func (s *LostFoundApp) listItems(w http.ResponseWriter, r *http.Request) {
	status := database.ItemStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		errResp := NewValidationError(fmt.Sprintf("Invalid status: %s.", status))
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbItems, err := s.db.ListLostItems(status)
	if err != nil {
		s.log.Println("list lost items:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	items := make([]types.LostItem, 0, len(dbItems))
	for _, item := range dbItems {
		items = append(items, toTypesItem(item))
	}

	s.writeJson(w, http.StatusOK, map[string][]types.LostItem{"items": items})
}

func (s *LostFoundApp) getItem(w http.ResponseWriter, r *http.Request) {
	referenceId := r.PathValue("reference")

	item, err := s.db.GetLostItemByReference(referenceId)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError()
		} else {
			s.log.Println("get lost item:", err)
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, toTypesItem(item))
}

func (s *LostFoundApp) claimItem(w http.ResponseWriter, r *http.Request) {
	var req TransitionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	claimedBy := strings.TrimSpace(req.ClaimedBy)
	if claimedBy == "" {
		errResp := NewValidationError("claimed_by is required.")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	item, ok := s.transitionItem(w, r.PathValue("reference"), claimedBy, s.db.ClaimLostItem)
	if !ok {
		return
	}

	itemResp := toTypesItem(item)
	s.hub.Publish(events.EventItemClaimed, itemResp)

	s.writeJson(w, http.StatusOK, itemResp)
}

func (s *LostFoundApp) collectItem(w http.ResponseWriter, r *http.Request) {
	var req TransitionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	collectedBy := strings.TrimSpace(req.CollectedBy)
	if collectedBy == "" {
		errResp := NewValidationError("collected_by is required.")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	item, ok := s.transitionItem(w, r.PathValue("reference"), collectedBy, s.db.CollectLostItem)
	if !ok {
		return
	}

	itemResp := toTypesItem(item)
	s.hub.Publish(events.EventItemCollected, itemResp)

	s.writeJson(w, http.StatusOK, itemResp)
}

func (s *LostFoundApp) transitionItem(w http.ResponseWriter, referenceId, userId string, transition func(string, string) (database.LostItem, error)) (database.LostItem, bool) {
	item, err := transition(referenceId, userId)
	if err != nil {
		var errResp *ApiError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			errResp = NewNotFoundError()
		case errors.Is(err, database.ErrInvalidTransition):
			errResp = NewConflictError(err.Error())
		default:
			s.log.Println("transition lost item:", err)
			errResp = NewPersistenceError("An error occurred while updating the item.", err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return database.LostItem{}, false
	}

	return item, true
}

func (s *LostFoundApp) serveWs(w http.ResponseWriter, r *http.Request) {
	id, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	user, err := s.db.GetUserById(id)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError()
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			return slices.Contains(s.allowedOrigins, origin)
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Println("error upgrading connection:", err)
		return
	}

	client := events.NewClient(types.User{
		Id:           user.Id,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		EmailAddress: user.EmailAddress,
	}, conn, s.hub, s.log)

	s.hub.RegisterClient(client)
	go client.Write()
	go client.Read()
}

func toTypesItem(item database.LostItem) types.LostItem {
	return types.LostItem{
		Id:           item.Id,
		ReferenceId:  item.ReferenceId,
		Name:         item.Name,
		Description:  item.Description,
		ImageUrl:     item.ImageUrl,
		Status:       string(item.Status),
		FoundBy:      item.FoundBy,
		DroppedOffBy: item.DroppedOffBy.String,
		FoundIn:      item.FoundIn,
		ClaimedBy:    item.ClaimedBy.String,
		CollectedBy:  item.CollectedBy.String,
		DroppedOffAt: item.DroppedOffAt,
		CategoryId:   item.CategoryId,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
