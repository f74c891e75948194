package events

import (
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/caoimherice/FoodMiles/internal/data"
	"github.com/sirupsen/logrus"
)

const _savedListSuffix = ":SavedList"

// ReconcileSnapshotHandler repairs the non-atomic save-then-clear window:
// whenever a SavedList record lands on the stream, any of its item ids
// still present on the user's live shopping list are deleted. Deletes are
// idempotent, so replayed records and entries already cleared by the
// writer are both harmless.
type ReconcileSnapshotHandler struct {
	Shopping data.ShoppingListDataService
	Log      *logrus.Logger
}

func DefaultReconcileSnapshotHandler(shopping data.ShoppingListDataService, log *logrus.Logger) *ReconcileSnapshotHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ReconcileSnapshotHandler{
		Shopping: shopping,
		Log:      log,
	}
}

func (rh *ReconcileSnapshotHandler) Filter(record events.DynamoDBEventRecord) bool {
	pk := record.Change.Keys["PK"]
	return record.EventName == "INSERT" && strings.HasSuffix(pk.String(), _savedListSuffix)
}

func (rh *ReconcileSnapshotHandler) Apply(record events.DynamoDBEventRecord) error {
	pk := record.Change.Keys["PK"]
	userId := strings.TrimSuffix(pk.String(), _savedListSuffix)
	itemIds, ok := record.Change.NewImage["itemIds"]
	if !ok {
		return nil
	}
	for _, attr := range itemIds.List() {
		itemId := attr.String()
		if err := rh.Shopping.DeleteEntry(userId, itemId); err != nil {
			rh.Log.WithFields(logrus.Fields{
				"userId": userId,
				"itemId": itemId,
			}).WithError(err).Error("failed to reconcile saved list entry")
			return err
		}
	}
	return nil
}
