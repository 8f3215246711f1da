// Package joins owns the join-request lifecycle for activities. Every
// decision that can change an activity's participant set runs inside a
// transaction holding a row lock on the activity, so the participant
// count can never exceed the activity's capacity even under concurrent
// accepts for the last slot.
package joins

import (
	"context"
	"errors"

	"github.com/oakmeet/meetup_backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound                 = errors.New("not found")
	ErrAlreadyParticipant       = errors.New("already a participant in this activity")
	ErrDuplicatePending         = errors.New("a request for this activity already exists")
	ErrActivityFull             = errors.New("activity is full")
	ErrActivityFullAtAcceptance = errors.New("activity filled up before the request was accepted")
	ErrUnauthorized             = errors.New("only the activity owner can handle join requests")
	ErrAlreadyHandled           = errors.New("join request has already been handled")
)

// Action is an owner's decision on a pending join request.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

// Coordinator serializes join-request mutations per activity.
type Coordinator struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) *Coordinator {
	return &Coordinator{db: db, log: log}
}

// lockForUpdate applies a row-level lock on dialects that support it.
// SQLite has no FOR UPDATE and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// RequestJoin files a PENDING join request for userID on activityID.
// Preconditions are checked in order: membership, duplicate request,
// capacity. A request that passes all three is created atomically with
// the checks.
//
// Capacity is only advisory here: requests already pending are allowed
// to outnumber the remaining slots, and the definitive check happens at
// accept time.
func (c *Coordinator) RequestJoin(ctx context.Context, userID, activityID uint) (*models.JoinRequest, error) {
	var request models.JoinRequest

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var activity models.Activity
		if err := lockForUpdate(tx).
			First(&activity, activityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var isMember int64
		if err := tx.Model(&models.ActivityParticipant{}).
			Where("activity_id = ? AND user_id = ?", activityID, userID).
			Count(&isMember).Error; err != nil {
			return err
		}
		if isMember > 0 {
			return ErrAlreadyParticipant
		}

		// The unique index on (user_id, activity_id) allows at most one
		// request per pair, so any existing row blocks a new one.
		var existing int64
		if err := tx.Model(&models.JoinRequest{}).
			Where("user_id = ? AND activity_id = ?", userID, activityID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicatePending
		}

		count, err := c.participantCount(tx, activityID)
		if err != nil {
			return err
		}
		if count >= int64(activity.MaxParticipants) {
			return ErrActivityFull
		}

		request = models.JoinRequest{
			UserID:     userID,
			ActivityID: activityID,
			Status:     models.JoinRequestPending,
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("join request created",
		zap.Uint("user_id", userID), zap.Uint("activity_id", activityID))
	return &request, nil
}

// HandleRequest resolves a pending request as accepted or rejected. Only
// the activity owner may call it. An accept re-checks capacity under the
// activity row lock: if the activity filled up since the request was
// filed, the request resolves REJECTED and ErrActivityFullAtAcceptance
// is returned alongside the updated request.
//
// Requests that are no longer PENDING return ErrAlreadyHandled untouched.
func (c *Coordinator) HandleRequest(ctx context.Context, actorID, requestID uint, action Action) (*models.JoinRequest, error) {
	var (
		request      models.JoinRequest
		fullAtAccept bool
	)

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the request row too: two concurrent handlers must not both
		// observe PENDING, or a late reject could overwrite an accept.
		if err := lockForUpdate(tx).First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var activity models.Activity
		if err := lockForUpdate(tx).
			First(&activity, request.ActivityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if activity.OwnerID != actorID {
			return ErrUnauthorized
		}
		if request.Status != models.JoinRequestPending {
			return ErrAlreadyHandled
		}

		if action == ActionReject {
			request.Status = models.JoinRequestRejected
			return tx.Save(&request).Error
		}

		count, err := c.participantCount(tx, activity.ID)
		if err != nil {
			return err
		}
		if count >= int64(activity.MaxParticipants) {
			request.Status = models.JoinRequestRejected
			fullAtAccept = true
			return tx.Save(&request).Error
		}

		request.Status = models.JoinRequestAccepted
		if err := tx.Save(&request).Error; err != nil {
			return err
		}
		return tx.Create(&models.ActivityParticipant{
			ActivityID: activity.ID,
			UserID:     request.UserID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	if fullAtAccept {
		c.log.Info("join request rejected, activity full at acceptance",
			zap.Uint("request_id", requestID))
		return &request, ErrActivityFullAtAcceptance
	}

	c.log.Info("join request handled",
		zap.Uint("request_id", requestID), zap.String("action", string(action)),
		zap.String("status", request.Status))
	return &request, nil
}

// PendingForOwner lists pending requests across all activities owned by
// ownerID, newest first.
func (c *Coordinator) PendingForOwner(ctx context.Context, ownerID uint) ([]models.JoinRequest, error) {
	var requests []models.JoinRequest
	err := c.db.WithContext(ctx).
		Joins("JOIN activities ON activities.id = join_requests.activity_id").
		Where("activities.owner_id = ? AND join_requests.status = ?", ownerID, models.JoinRequestPending).
		Preload("User").Preload("Activity").
		Order("join_requests.created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (c *Coordinator) participantCount(tx *gorm.DB, activityID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.ActivityParticipant{}).
		Where("activity_id = ?", activityID).
		Count(&count).Error
	return count, err
}
