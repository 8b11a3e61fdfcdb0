package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/booking-bridge/internal/domain/conversation"
	"github.com/BruksfildServices01/booking-bridge/internal/models"
)

type ConversationGormRepository struct {
	db *gorm.DB
}

func NewConversationGormRepository(db *gorm.DB) *ConversationGormRepository {
	return &ConversationGormRepository{db: db}
}

func (r *ConversationGormRepository) GetOrCreateSession(
	ctx context.Context,
	clientPhone string,
) (*models.ConversationSession, error) {

	var session models.ConversationSession
	err := r.db.WithContext(ctx).
		Where("client_phone = ?", clientPhone).
		First(&session).Error

	if err == nil {
		return &session, nil
	}

	session = models.ConversationSession{
		ClientPhone:  clientPhone,
		LastActiveAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *ConversationGormRepository) AppendMessage(
	ctx context.Context,
	sessionID uint,
	role string,
	content string,
) (*models.ConversationMessage, error) {

	msg := models.ConversationMessage{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}

	if err := r.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}

	return &msg, nil
}

func (r *ConversationGormRepository) TouchSession(
	ctx context.Context,
	sessionID uint,
	at time.Time,
) error {

	return r.db.WithContext(ctx).
		Model(&models.ConversationSession{}).
		Where("id = ?", sessionID).
		Update("last_active_at", at).Error
}

func (r *ConversationGormRepository) LatestMessageAt(
	ctx context.Context,
	clientPhone string,
) (time.Time, error) {

	// Caller messages only: this anchors the debounce window, and the
	// redis path records nothing for system messages either.
	var msg models.ConversationMessage
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_sessions ON conversation_sessions.id = conversation_messages.session_id").
		Where(
			"conversation_sessions.client_phone = ? AND conversation_messages.role = ?",
			clientPhone,
			models.RoleCaller,
		).
		Order("conversation_messages.created_at DESC, conversation_messages.id DESC").
		First(&msg).Error

	if err != nil {
		if IsNotFound(err) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}

	return msg.CreatedAt, nil
}

func (r *ConversationGormRepository) ListMessages(
	ctx context.Context,
	clientPhone string,
) ([]models.ConversationMessage, error) {

	var msgs []models.ConversationMessage
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_sessions ON conversation_sessions.id = conversation_messages.session_id").
		Where("conversation_sessions.client_phone = ?", clientPhone).
		Order("conversation_messages.created_at ASC, conversation_messages.id ASC").
		Find(&msgs).Error

	return msgs, err
}

func (r *ConversationGormRepository) ListUnprocessedCallerMessages(
	ctx context.Context,
	clientPhone string,
) ([]models.ConversationMessage, error) {

	var msgs []models.ConversationMessage
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_sessions ON conversation_sessions.id = conversation_messages.session_id").
		Where(
			"conversation_sessions.client_phone = ? AND conversation_messages.role = ? AND conversation_messages.processed = false",
			clientPhone,
			models.RoleCaller,
		).
		Order("conversation_messages.created_at ASC, conversation_messages.id ASC").
		Find(&msgs).Error

	return msgs, err
}

func (r *ConversationGormRepository) MarkProcessed(
	ctx context.Context,
	messageIDs []uint,
) error {

	if len(messageIDs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&models.ConversationMessage{}).
		Where("id IN ?", messageIDs).
		Update("processed", true).Error
}

func (r *ConversationGormRepository) ClearSession(
	ctx context.Context,
	clientPhone string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session models.ConversationSession
		if err := tx.Where("client_phone = ?", clientPhone).
			First(&session).Error; err != nil {
			if IsNotFound(err) {
				return nil
			}
			return err
		}

		if err := tx.Where("session_id = ?", session.ID).
			Delete(&models.ConversationMessage{}).Error; err != nil {
			return err
		}

		return tx.Delete(&session).Error
	})
}

// Compile-time check
var _ domain.Repository = (*ConversationGormRepository)(nil)
