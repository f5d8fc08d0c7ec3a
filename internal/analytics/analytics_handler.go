package analytics

import (
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/svc"
)

const (
	activeWindow = 7 * 24 * time.Hour
	growthDays   = 30
	topPostLimit = 5
)

type AnalyticsHandler struct {
	svc *svc.ServiceContext
	now func() time.Time
}

func NewAnalyticsHandler(svc *svc.ServiceContext) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, now: time.Now}
}
