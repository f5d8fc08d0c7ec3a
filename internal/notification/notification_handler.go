package notification

import (
	"github.com/Nir-Bhay/LinkedIn-clone/internal/svc"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type NotificationHandler struct {
	svc *svc.ServiceContext
}

func NewNotificationHandler(svc *svc.ServiceContext) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}
