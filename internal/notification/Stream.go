package notification

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/notify"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const keepAliveInterval = 25 * time.Second

// Stream pushes the caller's new notifications as server-sent events until
// the client disconnects. It needs Redis pub/sub.
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	ctx := c.Request.Context()
	sub, err := h.svc.Cache.Subscribe(ctx, notify.ChannelKey(userID))
	if err != nil {
		utils.Error(c, http.StatusServiceUnavailable, "Live notifications are unavailable")
		return
	}
	defer sub.Close()

	messages := sub.Channel()
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	zap.L().Debug("notification stream opened", zap.Uint("user_id", userID))
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			c.SSEvent("ping", "")
			return true
		case msg, ok := <-messages:
			if !ok {
				return false
			}
			var view models.NotificationView
			if err := json.Unmarshal([]byte(msg.Payload), &view); err != nil {
				return true
			}
			c.SSEvent("notification", view)
			return true
		}
	})
}
