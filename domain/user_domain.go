package domain

import "time"

var (
	MessageSuccessGetUser      = "User found"
	MessageSuccessRegisterUser = "User registered"

	MessageFailedGetUser      = "failed to get user"
	MessageFailedRegisterUser = "failed to register user"
)

type (
	RegisterUserPayload struct {
		TelegramUserID   int64  `json:"telegram_user_id" validate:"required"`
		TelegramUsername string `json:"telegram_username"`
		FirstName        string `json:"first_name"`
		LastName         string `json:"last_name"`
	}

	UserResponse struct {
		ID               string    `json:"id"`
		TelegramUserID   int64     `json:"telegram_user_id"`
		TelegramUsername string    `json:"telegram_username"`
		FirstName        string    `json:"first_name"`
		LastName         string    `json:"last_name"`
		CreatedAt        time.Time `json:"created_at"`
		UpdatedAt        time.Time `json:"updated_at"`
	}

	GetUserResponse struct {
		BaseResponse
		User *UserResponse `json:"user,omitempty"`
	}

	RegisterUserResponse struct {
		BaseResponse
		User *UserResponse `json:"user,omitempty"`
	}
)
