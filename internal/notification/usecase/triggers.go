package usecase

import (
	"context"
	"fmt"
	"log"

	"community-backend/internal/notification/domain"
	"community-backend/internal/notification/dto"
	postrepo "community-backend/internal/post/repository"
	profilerepo "community-backend/internal/profile/repository"
)

const previewLimit = 50

// NotifyResult is the outcome of a trigger. Skipped is set when the actor
// is the content owner and no notification was dispatched.
type NotifyResult struct {
	Skipped bool
	Message string
	Summary *domain.DispatchSummary
}

// Notifier composes and dispatches comment/like notifications.
type Notifier interface {
	NotifyComment(ctx context.Context, req *dto.CommentNotificationRequest) (*NotifyResult, error)
	NotifyLike(ctx context.Context, req *dto.LikeNotificationRequest) (*NotifyResult, error)
}

type notifier struct {
	profileRepo profilerepo.ProfileRepository
	postRepo    postrepo.PostRepository
	dispatcher  PushDispatcher
}

func NewNotifier(profileRepo profilerepo.ProfileRepository, postRepo postrepo.PostRepository, dispatcher PushDispatcher) Notifier {
	return &notifier{
		profileRepo: profileRepo,
		postRepo:    postRepo,
		dispatcher:  dispatcher,
	}
}

// lookup is a best-effort query result: either a found value or a marker
// that the fallback should be used. Keeping it explicit means the fallback
// path is typed instead of hidden behind swallowed errors.
type lookup struct {
	value string
	found bool
}

func (l lookup) or(fallback string) string {
	if l.found {
		return l.value
	}
	return fallback
}

func (n *notifier) NotifyComment(ctx context.Context, req *dto.CommentNotificationRequest) (*NotifyResult, error) {
	if req.CommenterID == req.PostAuthorID {
		return &NotifyResult{
			Skipped: true,
			Message: "comment on own post, no notification sent",
		}, nil
	}

	name := n.actorName(req.CommenterID).or("Someone")
	preview := n.postPreview(req.PostID).or("your post")

	summary, err := n.dispatcher.Dispatch(ctx, &dto.PushRequest{
		UserID: req.PostAuthorID,
		Title:  "New comment on your post",
		Body:   fmt.Sprintf("%s commented: %s", name, preview),
		Data: map[string]any{
			"type":        "comment",
			"postId":      req.PostID,
			"commentId":   req.CommentID,
			"commenterId": req.CommenterID,
		},
	})
	if err != nil {
		return nil, err
	}

	return &NotifyResult{
		Message: "comment notification sent",
		Summary: summary,
	}, nil
}

func (n *notifier) NotifyLike(ctx context.Context, req *dto.LikeNotificationRequest) (*NotifyResult, error) {
	if req.LikerID == req.PostAuthorID {
		return &NotifyResult{
			Skipped: true,
			Message: "like on own post, no notification sent",
		}, nil
	}

	name := n.actorName(req.LikerID).or("Someone")

	// Count failures are treated as a single like.
	likeCount := int64(1)
	if count, err := n.postRepo.CountLikes(req.PostID); err != nil {
		log.Printf("[Notify] like count lookup failed for post %s: %v", req.PostID, err)
	} else if count > 0 {
		likeCount = count
	}

	body := fmt.Sprintf("%s liked your post", name)
	if likeCount > 1 {
		body = fmt.Sprintf("%s and %d others liked your post", name, likeCount-1)
	}

	summary, err := n.dispatcher.Dispatch(ctx, &dto.PushRequest{
		UserID: req.PostAuthorID,
		Title:  "New like on your post",
		Body:   body,
		Data: map[string]any{
			"type":      "like",
			"postId":    req.PostID,
			"likerId":   req.LikerID,
			"likeCount": likeCount,
		},
	})
	if err != nil {
		return nil, err
	}

	return &NotifyResult{
		Message: "like notification sent",
		Summary: summary,
	}, nil
}

func (n *notifier) actorName(userID string) lookup {
	profile, err := n.profileRepo.FindByID(userID)
	if err != nil {
		log.Printf("[Notify] actor profile lookup failed for %s: %v", userID, err)
		return lookup{}
	}
	if profile == nil || profile.Name == "" {
		return lookup{}
	}
	return lookup{value: profile.Name, found: true}
}

func (n *notifier) postPreview(postID string) lookup {
	post, err := n.postRepo.FindByID(postID)
	if err != nil {
		log.Printf("[Notify] post lookup failed for %s: %v", postID, err)
		return lookup{}
	}
	if post == nil || post.Content == "" {
		return lookup{}
	}
	return lookup{value: truncate(post.Content, previewLimit), found: true}
}

// truncate caps s at limit characters and appends an ellipsis when content
// was cut off.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
