package slot_lifecycle

import (
	"fmt"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/notifier"
)

func meetingTitle(slot *domain.Slot) string {
	if slot.Description != "" {
		return slot.Description
	}
	return fmt.Sprintf("Interview %s %s-%s", slot.Date.Format(domain.DateFormat), slot.StartTime, slot.EndTime)
}

// slotRemovedNotifications уведомления при отмене или удалении слота рекрутером
// Кандидат, державший слот, получает одно уведомление, даже если у него была принятая заявка
func slotRemovedNotifications(slot *domain.Slot, holder *int64, cancelled []*domain.Application) []notifier.Notification {
	when := fmt.Sprintf("%s %s-%s", slot.Date.Format(domain.DateFormat), slot.StartTime, slot.EndTime)

	notifications := make([]notifier.Notification, 0, len(cancelled)+1)
	notified := make(map[int64]bool)

	if holder != nil {
		notifications = append(notifications, notifier.Notification{
			UserID:  *holder,
			Kind:    notifier.KindSlotCancelled,
			Title:   "Interview cancelled",
			Message: fmt.Sprintf("The recruiter cancelled your interview on %s.", when),
			RelatedEntity: notifier.RelatedEntity{
				Type: "slot",
				ID:   slot.ID.String(),
			},
		})
		notified[*holder] = true
	}

	for _, app := range cancelled {
		if notified[app.CandidateID] {
			continue
		}
		notifications = append(notifications, notifier.Notification{
			UserID:  app.CandidateID,
			Kind:    notifier.KindApplicationCancelled,
			Title:   "Application cancelled",
			Message: fmt.Sprintf("Your application was cancelled because the interview on %s was withdrawn.", when),
			RelatedEntity: notifier.RelatedEntity{
				Type: "application",
				ID:   app.ID.String(),
			},
		})
		notified[app.CandidateID] = true
	}

	return notifications
}
