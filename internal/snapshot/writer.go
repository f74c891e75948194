// Package snapshot freezes a live shopping list into an immutable saved
// list record and clears the live rows.
package snapshot

import (
	"time"

	"github.com/caoimherice/FoodMiles/internal/data"
	"github.com/caoimherice/FoodMiles/internal/exceptions"
	"github.com/caoimherice/FoodMiles/internal/notifications"
	"github.com/sirupsen/logrus"
)

// Writer persists the saved list first and clears live entries second.
// The two writes are not atomic: a crash in between leaves the same items
// in both places, and the stream reconciler in internal/events repairs
// that window idempotently.
type Writer struct {
	Shopping      data.ShoppingListDataService
	Saved         data.SavedListDataService
	Notifications notifications.NotificationService
	Log           *logrus.Logger
}

func NewWriter(shopping data.ShoppingListDataService, saved data.SavedListDataService, service notifications.NotificationService, log *logrus.Logger) *Writer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Writer{
		Shopping:      shopping,
		Saved:         saved,
		Notifications: service,
		Log:           log,
	}
}

// Save snapshots the supplied refs for the user. The record stores item
// ids only, never computed totals: a saved list is a frozen selection,
// not a frozen measurement, so later reads reflect catalog updates.
func (w *Writer) Save(userId string, refs []data.ItemRef) (data.SavedListDTO, error) {
	if userId == "" {
		return data.SavedListDTO{}, exceptions.InvalidInput("Please provide a \"userId\"")
	}
	if len(refs) == 0 {
		return data.SavedListDTO{}, exceptions.InvalidInput("Please provide a non-empty \"items\" list")
	}
	itemIds := make([]string, len(refs))
	for i, ref := range refs {
		normalized, err := data.NewItemRef(ref.Name, ref.Origin)
		if err != nil {
			return data.SavedListDTO{}, err
		}
		itemIds[i] = normalized.ItemId()
	}
	saved, err := w.Saved.PutSavedList(userId, data.SavedListInputDTO{
		ItemIds: &itemIds,
	})
	if err != nil {
		return data.SavedListDTO{}, err
	}
	// Clearing is best-effort: a failed delete never rolls back the save,
	// the reconciler retries it off the stream record.
	for _, itemId := range itemIds {
		if err := w.Shopping.DeleteEntry(userId, itemId); err != nil {
			w.Log.WithFields(logrus.Fields{
				"userId": userId,
				"itemId": itemId,
			}).WithError(err).Warn("failed to clear shopping list entry after save")
		}
	}
	if w.Notifications != nil {
		_, err := w.Notifications.PublishSavedList(notifications.SavedListMessage{
			UserId:    userId,
			ListId:    saved.ListId,
			ItemIds:   saved.ItemIds,
			CreatedAt: saved.CreateTime.UTC().Format(time.RFC3339),
		})
		if err != nil {
			w.Log.WithField("listId", saved.ListId).WithError(err).Warn("failed to publish saved list notification")
		}
	}
	return saved, nil
}
