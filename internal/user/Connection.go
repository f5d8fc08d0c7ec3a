package user

import (
	"net/http"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/db"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ConnectionView struct {
	ID        uint                    `json:"id"`
	Peer      models.UserBrief        `json:"peer"`
	Status    models.ConnectionStatus `json:"status"`
	Incoming  bool                    `json:"incoming"`
	CreatedAt string                  `json:"createdAt"`
}

// RequestConnection creates a pending connection from the principal to :userId.
func (h *UserHandler) RequestConnection(c *gin.Context) {
	targetID, ok := utils.ParseID(c, "userId")
	if !ok {
		utils.Error(c, http.StatusBadRequest, "Invalid user id")
		return
	}
	me, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}
	if me == targetID {
		utils.Error(c, http.StatusBadRequest, "You can't connect with yourself")
		return
	}
	if err := h.requireActiveUser(c, targetID); err != nil {
		return
	}

	ctx := c.Request.Context()
	var existing int64
	if err := h.svc.DB.WithContext(ctx).Model(&models.Connection{}).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)", me, targetID, targetID, me).
		Count(&existing).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}
	if existing > 0 {
		utils.Error(c, http.StatusConflict, "Connection already exists")
		return
	}

	conn := models.Connection{RequesterID: me, AddresseeID: targetID, Status: models.ConnectionPending}
	if err := h.svc.DB.WithContext(ctx).Create(&conn).Error; err != nil {
		if db.IsDuplicateKey(err) {
			utils.Error(c, http.StatusConflict, "Connection already exists")
			return
		}
		utils.Fail(c, err, "")
		return
	}

	h.svc.Notifier.Dispatch(ctx, models.NotificationMsg{
		RecipientID: targetID,
		SenderID:    me,
		Type:        models.NotificationConnectionRequest,
	})

	utils.Created(c, conn)
}

// AcceptConnection is only allowed for the addressee of a pending request.
func (h *UserHandler) AcceptConnection(c *gin.Context) {
	connID, ok := utils.ParseID(c, "connectionId")
	if !ok {
		utils.Error(c, http.StatusNotFound, "Connection request not found")
		return
	}
	me, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	ctx := c.Request.Context()
	result := h.svc.DB.WithContext(ctx).Model(&models.Connection{}).
		Where("id = ? AND addressee_id = ? AND status = ?", connID, me, models.ConnectionPending).
		Update("status", models.ConnectionAccepted)
	if result.Error != nil {
		utils.Fail(c, result.Error, "")
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Connection request not found")
		return
	}

	var conn models.Connection
	if err := h.svc.DB.WithContext(ctx).First(&conn, connID).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}

	h.svc.Notifier.Dispatch(ctx, models.NotificationMsg{
		RecipientID: conn.RequesterID,
		SenderID:    me,
		Type:        models.NotificationConnectionAccepted,
	})

	utils.Success(c, conn)
}

// ListConnections returns the principal's connections, optionally filtered by ?status=.
func (h *UserHandler) ListConnections(c *gin.Context) {
	me, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	query := h.svc.DB.WithContext(c.Request.Context()).
		Preload("Requester", selectBrief).
		Preload("Addressee", selectBrief).
		Where("requester_id = ? OR addressee_id = ?", me, me).
		Order("created_at DESC, id DESC")

	switch status := models.ConnectionStatus(c.Query("status")); status {
	case "":
	case models.ConnectionPending, models.ConnectionAccepted:
		query = query.Where("status = ?", status)
	default:
		utils.Error(c, http.StatusBadRequest, "status must be pending or accepted")
		return
	}

	var conns []models.Connection
	if err := query.Find(&conns).Error; err != nil {
		utils.Fail(c, err, "")
		return
	}

	views := make([]ConnectionView, 0, len(conns))
	for _, conn := range conns {
		peer := conn.Addressee
		if conn.AddresseeID == me {
			peer = conn.Requester
		}
		v := ConnectionView{
			ID:        conn.ID,
			Peer:      models.UserBrief{ID: conn.Peer(me)},
			Status:    conn.Status,
			Incoming:  conn.AddresseeID == me,
			CreatedAt: conn.CreatedAt.UTC().Format(DateLayout),
		}
		if peer != nil {
			v.Peer = peer.Brief()
		}
		views = append(views, v)
	}
	utils.Success(c, views)
}

func selectBrief(db *gorm.DB) *gorm.DB {
	return db.Select("id, name, profile_picture, job_title")
}

