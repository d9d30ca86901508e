package services

import (
	"context"
	"math"

	"tech-shop/models"
	"tech-shop/utils"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User, actor string) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	FindAll(ctx context.Context, name, email, role string, page, limit int) ([]models.User, int, error)
	Update(ctx context.Context, user *models.User, actor string) error
	Delete(ctx context.Context, id int) error
}

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetUsers(ctx context.Context, name, email, role string, page, limit int) ([]models.User, models.PaginationMeta, error) {
	page, limit = normalizePage(page, limit, 10)

	users, total, err := s.users.FindAll(ctx, name, email, role, page, limit)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	return users, paginationMeta(page, limit, total), nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest, actor string) (*models.User, error) {
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil && !isNoRows(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	gender := req.Gender
	if gender == "" {
		gender = models.GenderOther
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     req.Role,
		Gender:   gender,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	if err := s.users.Create(ctx, user, actor); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, req models.UpdateUserRequest, actor string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, req.ID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Email != "" && req.Email != user.Email {
		existing, err := s.users.FindByEmail(ctx, req.Email)
		if err != nil && !isNoRows(err) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailTaken
		}
		user.Email = req.Email
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}

	if err := s.users.Update(ctx, user, actor); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile lets a user edit their own account; identity and role are
// untouched.
func (s *UserService) UpdateProfile(ctx context.Context, userID int, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := s.users.Update(ctx, user, user.Email); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	return s.users.Delete(ctx, id)
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func paginationMeta(page, limit, total int) models.PaginationMeta {
	return models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
