package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository"
	"go.uber.org/zap"
)

type UserService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewUserService(store repository.Store, logger *zap.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

// RegisterUser регистрирует или обновляет пользователя
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*model.User, error) {
	var user *model.User
	created := false

	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		created = false

		// Проверяем существует ли пользователь
		existing, err := tx.Users().GetByTelegramID(ctx, telegramID)
		if err != nil {
			return fmt.Errorf("check existing user: %w", err)
		}

		// Если пользователь уже существует, обновляем данные
		if existing != nil {
			existing.Username = username
			existing.FirstName = firstName
			existing.LastName = lastName

			if err := tx.Users().Update(ctx, existing); err != nil {
				return fmt.Errorf("update user: %w", err)
			}

			user = existing
			return nil
		}

		// По умолчанию студент
		user = &model.User{
			TelegramID: telegramID,
			Username:   username,
			FirstName:  firstName,
			LastName:   lastName,
			Role:       model.RoleStudent,
		}

		if err := tx.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		created = true
		return nil
	})

	if err != nil {
		return nil, err
	}

	if created {
		s.logger.Info("New user registered",
			zap.Int64("user_id", user.ID),
			zap.Int64("telegram_id", telegramID),
			zap.String("username", username),
		)
	} else {
		s.logger.Info("User updated",
			zap.Int64("telegram_id", telegramID),
			zap.String("username", username),
		)
	}

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID, nil если не зарегистрирован
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user *model.User
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		var err error
		user, err = tx.Users().GetByTelegramID(ctx, telegramID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}
	return user, nil
}

// BecomeTutor переводит пользователя в роль учителя
func (s *UserService) BecomeTutor(ctx context.Context, userID int64) error {
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		user, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		if user == nil {
			return apperror.NotFound("user not found")
		}

		if user.IsTutor() {
			return apperror.Conflict("already a tutor")
		}

		return tx.Users().SetRole(ctx, userID, model.RoleTutor)
	})
	if err != nil {
		return err
	}

	s.logger.Info("User became a tutor", zap.Int64("user_id", userID))

	return nil
}
