package app

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talkincode/supermarkt/internal/domain"
	"github.com/talkincode/supermarkt/internal/goods"
	"github.com/talkincode/supermarkt/internal/inventory"
)

func (a *Application) subscribeEvents() {
	subs := map[string]interface{}{
		inventory.TopicProductAdded: func(id string, category goods.Category) {
			zap.L().Debug("product added", zap.String("namespace", "inventory"),
				zap.String("id", id), zap.String("category", category.String()))
			a.recordShelfEvent(id, "added", category.String())
		},
		inventory.TopicProductRemoved: func(id string) {
			zap.L().Info("product removed", zap.String("namespace", "inventory"), zap.String("id", id))
			a.recordShelfEvent(id, "removed", "")
		},
		inventory.TopicDayAdvanced: func(rep inventory.DayReport) {
			detail := fmt.Sprintf("advanced=%d expired=%s to_remove=%s",
				rep.Advanced, strings.Join(rep.Expired, ","), strings.Join(rep.ToRemove, ","))
			a.recordShelfEvent("", "advanced", detail)
		},
	}
	for topic, fn := range subs {
		if err := a.bus.SubscribeAsync(topic, fn, true); err != nil {
			zap.L().Error("event subscribe failed", zap.String("topic", topic), zap.Error(err))
		}
	}
}

func (a *Application) recordShelfEvent(productID, action, detail string) {
	if a.gormDB == nil {
		return
	}
	ev := &domain.ShelfEvent{
		ID:        a.idNode.Generate().Int64(),
		ProductID: productID,
		Action:    action,
		Detail:    detail,
		EventTime: time.Now(),
	}
	if err := a.gormDB.Create(ev).Error; err != nil {
		zap.L().Error("failed to record shelf event", zap.String("action", action), zap.Error(err))
	}
}
