package user

import (
	"context"
	"errors"

	"leftunder/domain"
	"leftunder/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserService interface {
		GetUser(ctx context.Context, telegramUserID int64) (domain.GetUserResponse, error)
		RegisterUser(ctx context.Context, payload domain.RegisterUserPayload) (domain.RegisterUserResponse, error)
	}

	userService struct {
		userRepository UserRepository
	}
)

func NewUserService(userRepository UserRepository) UserService {
	return &userService{userRepository: userRepository}
}

func (s *userService) GetUser(ctx context.Context, telegramUserID int64) (domain.GetUserResponse, error) {
	user, err := s.userRepository.GetUserByTelegramID(ctx, telegramUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.GetUserResponse{}, domain.ErrUserNotFound
		}
		return domain.GetUserResponse{}, err
	}

	return domain.GetUserResponse{
		BaseResponse: domain.BaseResponse{Success: true, Message: domain.MessageSuccessGetUser},
		User:         toUserResponse(user),
	}, nil
}

func (s *userService) RegisterUser(ctx context.Context, payload domain.RegisterUserPayload) (domain.RegisterUserResponse, error) {
	user := &entities.User{
		ID:               uuid.New(),
		TelegramUserID:   payload.TelegramUserID,
		TelegramUsername: payload.TelegramUsername,
		FirstName:        payload.FirstName,
		LastName:         payload.LastName,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.RegisterUserResponse{}, err
	}

	return domain.RegisterUserResponse{
		BaseResponse: domain.BaseResponse{Success: true, Message: domain.MessageSuccessRegisterUser},
		User:         toUserResponse(user),
	}, nil
}

func toUserResponse(user *entities.User) *domain.UserResponse {
	return &domain.UserResponse{
		ID:               user.ID.String(),
		TelegramUserID:   user.TelegramUserID,
		TelegramUsername: user.TelegramUsername,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}
