package usecase

import (
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// NotificationUseCase consulta y marcado de notificaciones del panel.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List lista notificaciones con el contador de no leídas.
func (uc *NotificationUseCase) List(companyID string, onlyUnread bool, page dto.PageRequest) (*dto.NotificationListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, onlyUnread, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.CountUnread(companyID)
	if err != nil {
		return nil, err
	}
	out := dto.NotificationListResponse{
		Items:  make([]dto.NotificationResponse, 0, len(list)),
		Unread: unread,
		Page:   dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, n := range list {
		out.Items = append(out.Items, toNotificationResponse(n))
	}
	return &out, nil
}

// CountUnread retorna el número de notificaciones sin leer.
func (uc *NotificationUseCase) CountUnread(companyID string) (int, error) {
	return uc.repo.CountUnread(companyID)
}

// MarkRead marca una notificación como leída.
func (uc *NotificationUseCase) MarkRead(id string) error {
	return uc.repo.MarkRead(id)
}

// MarkAllRead marca todas las notificaciones de la empresa como leídas.
func (uc *NotificationUseCase) MarkAllRead(companyID string) error {
	return uc.repo.MarkAllRead(companyID)
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Priority:  n.Priority,
		Category:  n.Category,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
