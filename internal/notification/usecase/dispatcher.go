package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"community-backend/internal/notification/domain"
	"community-backend/internal/notification/dto"
	"community-backend/internal/notification/repository"
	"community-backend/pkg/fcm"
)

var (
	ErrMissingFields  = errors.New("userId, title and body are required")
	ErrNoDeviceTokens = errors.New("no device tokens registered for user")
)

// PushSender delivers one push to one device. *fcm.Client satisfies it.
type PushSender interface {
	Send(ctx context.Context, p fcm.Push) (string, error)
}

// PushDispatcher fans a notification out to every device a user has
// registered, one send per token, failures isolated per token.
type PushDispatcher interface {
	Dispatch(ctx context.Context, req *dto.PushRequest) (*domain.DispatchSummary, error)
}

type pushDispatcher struct {
	tokenRepo repository.DeviceTokenRepository
	sender    PushSender
}

func NewPushDispatcher(tokenRepo repository.DeviceTokenRepository, sender PushSender) PushDispatcher {
	return &pushDispatcher{
		tokenRepo: tokenRepo,
		sender:    sender,
	}
}

// Dispatch loads the user's device tokens and sends to all of them
// concurrently. It waits for every send to settle; one token failing never
// cancels the others. The summary carries exactly one result per token.
func (d *pushDispatcher) Dispatch(ctx context.Context, req *dto.PushRequest) (*domain.DispatchSummary, error) {
	if req.UserID == "" || req.Title == "" || req.Body == "" {
		return nil, ErrMissingFields
	}

	tokens, err := d.tokenRepo.GetTokensByUserID(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load device tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil, ErrNoDeviceTokens
	}

	typeTag, _ := req.Data["type"].(string)
	channel := ResolveChannel(req.ChannelID, typeTag)
	data := stringifyData(req.Data)

	results := make([]domain.DispatchResult, len(tokens))
	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token domain.DeviceToken) {
			defer wg.Done()
			id, err := d.sender.Send(ctx, fcm.Push{
				Token:      token.Token,
				DeviceType: token.DeviceType,
				Title:      req.Title,
				Body:       req.Body,
				ChannelID:  channel,
				Data:       data,
			})
			if err != nil {
				results[i] = domain.DispatchResult{Token: token.Token, Error: err.Error()}
				return
			}
			results[i] = domain.DispatchResult{Success: true, Token: token.Token, Result: id}
		}(i, token)
	}
	wg.Wait()

	sent := 0
	for _, r := range results {
		if r.Success {
			sent++
		}
	}
	log.Printf("[Dispatch] user %s: %d sent, %d failed", req.UserID, sent, len(results)-sent)

	return &domain.DispatchSummary{
		Success: true,
		Sent:    sent,
		Failed:  len(results) - sent,
		Results: results,
	}, nil
}

// stringifyData flattens the request's data payload into the string map
// FCM requires. Non-string values (like counts) are formatted with %v.
func stringifyData(data map[string]any) map[string]string {
	if data == nil {
		return nil
	}
	out := make(map[string]string, len(data))
	for k, v := range data {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			// JSON numbers decode as float64; print integers without a
			// fractional part.
			if val == float64(int64(val)) {
				out[k] = fmt.Sprintf("%d", int64(val))
			} else {
				out[k] = fmt.Sprintf("%v", val)
			}
		default:
			out[k] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
