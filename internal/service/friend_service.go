package service

import (
	"context"

	"rawabit/internal/i18n"
	"rawabit/internal/models"
	"rawabit/internal/observability"
	"rawabit/internal/repository"
)

const defaultSuggestionLimit = 10

// FriendService drives the friend request state machine between two users.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// Status derives the relationship from viewer to target. An accepted
// friendship wins over any request row, then outgoing over incoming.
func (s *FriendService) Status(ctx context.Context, viewerID, targetID uint) (models.FriendshipStatus, error) {
	if viewerID == targetID {
		return models.FriendshipNone, nil
	}
	friends, err := s.friendRepo.AreFriends(ctx, viewerID, targetID)
	if err != nil {
		return "", err
	}
	if friends {
		return models.FriendshipFriends, nil
	}
	sent, err := s.friendRepo.PendingRequest(ctx, viewerID, targetID)
	if err != nil {
		return "", err
	}
	if sent != nil {
		return models.FriendshipPendingSent, nil
	}
	received, err := s.friendRepo.PendingRequest(ctx, targetID, viewerID)
	if err != nil {
		return "", err
	}
	if received != nil {
		return models.FriendshipPendingReceived, nil
	}
	return models.FriendshipNone, nil
}

// SendRequest moves none -> pending_sent and notifies the receiver.
func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID uint) (*models.FriendRequest, error) {
	if senderID == receiverID {
		return nil, models.NewValidationError(i18n.FriendSelf)
	}
	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	status, err := s.Status(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	switch status {
	case models.FriendshipFriends:
		return nil, models.NewValidationError(i18n.FriendAlready)
	case models.FriendshipPendingSent:
		return nil, models.NewValidationError(i18n.FriendPending)
	case models.FriendshipPendingReceived:
		return nil, models.NewValidationError(i18n.FriendIncoming)
	}

	notify := models.NewNotification(models.NotificationFriendRequest, receiverID, sender, "", 0, nil)
	req, err := s.friendRepo.CreateRequest(ctx, senderID, receiverID, notify)
	if err != nil {
		return nil, err
	}
	observability.FriendTransitionsTotal.WithLabelValues("send").Inc()
	recordCreated(ctx, notify)
	req.Sender = *sender
	return req, nil
}

// AcceptRequest is run by the receiver of a pending request from senderID.
func (s *FriendService) AcceptRequest(ctx context.Context, receiverID, senderID uint) error {
	if err := s.requireStatus(ctx, receiverID, senderID, models.FriendshipPendingReceived, i18n.FriendNoIncoming); err != nil {
		return err
	}
	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		return err
	}

	notify := models.NewNotification(models.NotificationFriendAccept, senderID, receiver, "", 0, nil)
	if err := s.friendRepo.AcceptRequest(ctx, senderID, receiverID, notify); err != nil {
		return err
	}
	observability.FriendTransitionsTotal.WithLabelValues("accept").Inc()
	recordCreated(ctx, notify)
	return nil
}

// DeclineRequest marks a pending request from senderID as rejected.
func (s *FriendService) DeclineRequest(ctx context.Context, receiverID, senderID uint) error {
	if err := s.requireStatus(ctx, receiverID, senderID, models.FriendshipPendingReceived, i18n.FriendNoIncoming); err != nil {
		return err
	}
	if err := s.friendRepo.DeclineRequest(ctx, senderID, receiverID); err != nil {
		return err
	}
	observability.FriendTransitionsTotal.WithLabelValues("decline").Inc()
	return nil
}

// CancelRequest withdraws a pending request between the two users, whichever
// side sent it.
func (s *FriendService) CancelRequest(ctx context.Context, userID, otherID uint) error {
	status, err := s.Status(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if status != models.FriendshipPendingSent && status != models.FriendshipPendingReceived {
		return models.NewValidationError(i18n.FriendNoOutgoing)
	}
	if err := s.friendRepo.CancelRequests(ctx, userID, otherID); err != nil {
		return err
	}
	observability.FriendTransitionsTotal.WithLabelValues("cancel").Inc()
	return nil
}

// RemoveFriend ends an accepted friendship in both directions.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if err := s.requireStatus(ctx, userID, friendID, models.FriendshipFriends, i18n.FriendNotFriends); err != nil {
		return err
	}
	if err := s.friendRepo.RemoveFriendship(ctx, userID, friendID); err != nil {
		return err
	}
	observability.FriendTransitionsTotal.WithLabelValues("remove").Inc()
	return nil
}

func (s *FriendService) requireStatus(ctx context.Context, viewerID, targetID uint, want models.FriendshipStatus, key i18n.Key) error {
	if viewerID == targetID {
		return models.NewValidationError(i18n.FriendSelf)
	}
	status, err := s.Status(ctx, viewerID, targetID)
	if err != nil {
		return err
	}
	if status != want {
		return models.NewValidationError(key)
	}
	return nil
}

// GetFriends lists the user's friends, most recent first.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.ListFriends(ctx, userID)
}

// GetPendingRequests lists requests waiting for userID to answer.
func (s *FriendService) GetPendingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.ListIncoming(ctx, userID)
}

// GetSentRequests lists userID's outgoing pending requests.
func (s *FriendService) GetSentRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.ListSent(ctx, userID)
}

// Suggestions ranks friends-of-friends by mutual count and tops the list up
// with the newest users the viewer has no relation to.
func (s *FriendService) Suggestions(ctx context.Context, userID uint, limit int) ([]models.FriendSuggestion, error) {
	if limit <= 0 || limit > models.MaxLimit {
		limit = defaultSuggestionLimit
	}
	candidates, err := s.friendRepo.MutualCandidates(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.UserID)
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.FriendSuggestion, 0, limit)
	for _, c := range candidates {
		if u, ok := users[c.UserID]; ok {
			out = append(out, models.FriendSuggestion{User: u, MutualFriends: c.Mutual})
		}
	}
	if len(out) >= limit {
		return out, nil
	}

	friendIDs, err := s.friendRepo.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	pendingIDs, err := s.friendRepo.PendingPeerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	exclude := append([]uint{userID}, friendIDs...)
	exclude = append(exclude, pendingIDs...)
	exclude = append(exclude, ids...)

	newest, err := s.userRepo.Newest(ctx, limit-len(out), exclude)
	if err != nil {
		return nil, err
	}
	for _, u := range newest {
		out = append(out, models.FriendSuggestion{User: u})
	}
	return out, nil
}
