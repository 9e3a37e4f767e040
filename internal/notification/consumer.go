package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/oguzkaan/campus-events-backend/config"
	"github.com/oguzkaan/campus-events-backend/utils"
)

const consumerGroupID = "campus-events-notifications"

// StartConsumer runs the activity consumer until ctx is cancelled. Malformed
// messages are logged and skipped so one bad record cannot wedge the group.
func StartConsumer(ctx context.Context, cfg *config.Config, svc Service) {
	reader := utils.NewActivityReader(cfg, consumerGroupID)

	go func() {
		defer reader.Close()

		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
					return
				}
				log.Printf("activity consumer read failed: %v", err)
				continue
			}

			var a Activity
			if err := json.Unmarshal(msg.Value, &a); err != nil {
				log.Printf("activity consumer: malformed message at offset %d: %v", msg.Offset, err)
				continue
			}

			if err := svc.HandleActivity(ctx, a); err != nil {
				log.Printf("activity consumer: handling %s for event %s failed: %v", a.Action, a.EventID, err)
			}
		}
	}()
}
