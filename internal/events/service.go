package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	notifdto "community-backend/internal/notification/dto"
	"community-backend/internal/notification/usecase"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// SocialEvent is the message shape the database triggers publish when a
// comment or like lands.
type SocialEvent struct {
	Type         string `json:"type"` // "comment" or "like"
	PostID       string `json:"postId"`
	CommentID    string `json:"commentId,omitempty"`
	ActorID      string `json:"actorId"`
	PostAuthorID string `json:"postAuthorId"`
}

// Service consumes social events from Pub/Sub and runs the same trigger
// usecases as the HTTP endpoints.
type Service struct {
	pubsubClient *pubsub.Client
	notifier     usecase.Notifier
	topicName    string
	subName      string
}

func NewService(projectID, topicName string, notifier usecase.Notifier, credentialsFile string) (*Service, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %v", err)
	}

	return &Service{
		pubsubClient: client,
		notifier:     notifier,
		topicName:    topicName,
		subName:      topicName + "-sub", // Convention: topic-sub
	}, nil
}

func (s *Service) Start(ctx context.Context) {
	log.Printf("[PubSub] Starting event subscriber with topic: %s, subscription: %s", s.topicName, s.subName)

	sub := s.pubsubClient.Subscription(s.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		log.Printf("[PubSub] Error checking subscription existence: %v", err)
		return
	}

	if !exists {
		topic := s.pubsubClient.Topic(s.topicName)
		topicExists, err := topic.Exists(ctx)
		if err != nil {
			log.Printf("[PubSub] Error checking topic existence: %v", err)
			return
		}
		if !topicExists {
			log.Printf("[PubSub] Topic %s does not exist, cannot create subscription", s.topicName)
			return
		}

		sub, err = s.pubsubClient.CreateSubscription(ctx, s.subName, pubsub.SubscriptionConfig{
			Topic:       topic,
			AckDeadline: 10 * time.Second,
		})
		if err != nil {
			log.Printf("[PubSub] Failed to create subscription: %v", err)
			return
		}
		log.Printf("[PubSub] Created subscription: %s", s.subName)
	}

	log.Printf("[PubSub] Listening for social events on subscription: %s", s.subName)
	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		s.handleMessage(ctx, msg)
		// Ack unconditionally: failed notifications are not retried.
		msg.Ack()
	})
	if err != nil {
		log.Printf("[PubSub] Error receiving messages: %v", err)
	}
}

func (s *Service) handleMessage(ctx context.Context, msg *pubsub.Message) {
	var event SocialEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Printf("[PubSub] Failed to unmarshal social event: %v", err)
		return
	}

	switch event.Type {
	case "comment":
		result, err := s.notifier.NotifyComment(ctx, &notifdto.CommentNotificationRequest{
			PostID:       event.PostID,
			CommentID:    event.CommentID,
			CommenterID:  event.ActorID,
			PostAuthorID: event.PostAuthorID,
		})
		s.logResult("comment", event.PostID, result, err)
	case "like":
		result, err := s.notifier.NotifyLike(ctx, &notifdto.LikeNotificationRequest{
			PostID:       event.PostID,
			LikerID:      event.ActorID,
			PostAuthorID: event.PostAuthorID,
		})
		s.logResult("like", event.PostID, result, err)
	default:
		log.Printf("[PubSub] Unknown event type %q, dropping", event.Type)
	}
}

func (s *Service) logResult(kind, postID string, result *usecase.NotifyResult, err error) {
	if err != nil {
		log.Printf("[PubSub] %s notification for post %s failed: %v", kind, postID, err)
		return
	}
	if result.Skipped {
		log.Printf("[PubSub] %s notification for post %s skipped: %s", kind, postID, result.Message)
		return
	}
	log.Printf("[PubSub] %s notification for post %s: %d sent, %d failed", kind, postID, result.Summary.Sent, result.Summary.Failed)
}
