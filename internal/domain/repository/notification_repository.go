package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// NotificationRepository define el puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	ListByCompany(companyID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	CountUnread(companyID string) (int, error)
	MarkRead(id string) error
	MarkAllRead(companyID string) error
}
