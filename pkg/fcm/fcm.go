package fcm

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Marker the Flutter client matches on to route notification taps.
const ClickAction = "FLUTTER_NOTIFICATION_CLICK"

// MessagingClient is the subset of the Firebase messaging API the client
// uses. It lets tests substitute a fake for *messaging.Client.
type MessagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Client wraps Firebase Cloud Messaging functionality
type Client struct {
	messaging MessagingClient
}

// NewClient creates a new FCM client using the provided credentials file
func NewClient(credentialsFile string) (*Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("[FCM] Client initialized successfully")
	return &Client{messaging: messagingClient}, nil
}

// NewClientWithMessaging wires the client to an existing messaging
// implementation, used by tests.
func NewClientWithMessaging(m MessagingClient) *Client {
	return &Client{messaging: m}
}

// Push describes one notification addressed to one device.
type Push struct {
	Token      string
	DeviceType string // "ios", "android" or "web"
	Title      string
	Body       string
	ChannelID  string
	Data       map[string]string
}

// NewMessage builds the platform-specific FCM message for a push. The
// channel identifier lands where each platform expects it: channel_id on
// Android, the APNs category on iOS and the notification tag on web.
func NewMessage(p Push) *messaging.Message {
	msg := &messaging.Message{
		Token: p.Token,
		Notification: &messaging.Notification{
			Title: p.Title,
			Body:  p.Body,
		},
	}

	if p.Data != nil {
		data := make(map[string]string, len(p.Data)+1)
		for k, v := range p.Data {
			data[k] = v
		}
		data["click_action"] = ClickAction
		msg.Data = data
	}

	switch p.DeviceType {
	case "android":
		msg.Android = &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: p.ChannelID,
				Sound:     "default",
				Priority:  messaging.PriorityHigh,
			},
		}
	case "ios":
		badge := 1
		msg.APNS = &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound:            "default",
					Badge:            &badge,
					Category:         p.ChannelID,
					ContentAvailable: true,
				},
			},
		}
		// Legacy top-level fields for clients still reading the old payload.
		if msg.Data == nil {
			msg.Data = map[string]string{}
		}
		msg.Data["sound"] = "default"
		msg.Data["badge"] = "1"
	case "web":
		msg.Webpush = &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: p.Title,
				Body:  p.Body,
				Tag:   p.ChannelID,
			},
		}
	}

	return msg
}

// Send delivers one push and returns the FCM message ID.
func (c *Client) Send(ctx context.Context, p Push) (string, error) {
	id, err := c.messaging.Send(ctx, NewMessage(p))
	if err != nil {
		return "", fmt.Errorf("failed to send FCM message: %w", err)
	}
	return id, nil
}
