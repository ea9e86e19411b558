package usecase

import (
	"context"

	notification "github.com/HarichndR/Faithconnect/internal/pkg/notification/application/domain"
	dirport "github.com/HarichndR/Faithconnect/internal/repository/port"
)

// SocialTriggers is the notification boundary consumed by the CRUD layer:
// each social action that should notify someone has one method here, so the
// wording and payload shape live in one place. Every method inherits the
// dispatcher's contract of never raising back into the caller.
type SocialTriggers struct {
	dispatcher *Dispatcher
	directory  dirport.UserDirectory
}

func NewSocialTriggers(dispatcher *Dispatcher, directory dirport.UserDirectory) *SocialTriggers {
	return &SocialTriggers{dispatcher: dispatcher, directory: directory}
}

// FollowerAdded notifies a leader about a new follower.
func (t *SocialTriggers) FollowerAdded(ctx context.Context, leaderID, followerID string) {
	t.dispatcher.Notify(ctx, Input{
		RecipientID: leaderID,
		SenderID:    followerID,
		Type:        notification.TypeFollow,
		Title:       "New Follower",
		Message:     t.displayName(ctx, followerID, "A user") + " started following you!",
		Data:        map[string]any{"followerId": followerID},
	})
}

// FollowerRemoved notifies a leader that someone unfollowed. The notice is
// deliberately anonymous, so it carries no sender; this is the one case where
// recipient and (absent) sender may coincide with a system-style record.
func (t *SocialTriggers) FollowerRemoved(ctx context.Context, leaderID string) {
	t.dispatcher.Notify(ctx, Input{
		RecipientID: leaderID,
		Type:        notification.TypeFollow,
		Title:       "Follower Update",
		Message:     "A user stopped following you.",
	})
}

// PostLiked notifies a post's author about a fresh like. Callers skip
// self-likes.
func (t *SocialTriggers) PostLiked(ctx context.Context, authorID, likerID, postID string) {
	if authorID == likerID {
		return
	}
	t.dispatcher.Notify(ctx, Input{
		RecipientID: authorID,
		SenderID:    likerID,
		Type:        notification.TypeLike,
		Title:       "Post Liked",
		Message:     t.displayName(ctx, likerID, "Someone") + " liked your post!",
		Data:        map[string]any{"postId": postID},
	})
}

// ReelLiked notifies a reel's author about a fresh like.
func (t *SocialTriggers) ReelLiked(ctx context.Context, authorID, likerID, reelID string) {
	if authorID == likerID {
		return
	}
	t.dispatcher.Notify(ctx, Input{
		RecipientID: authorID,
		SenderID:    likerID,
		Type:        notification.TypeReelLike,
		Title:       "Reel Liked",
		Message:     t.displayName(ctx, likerID, "Someone") + " liked your reel!",
		Data:        map[string]any{"reelId": reelID},
	})
}

// PostCommented notifies a post's author about a new comment.
func (t *SocialTriggers) PostCommented(ctx context.Context, authorID, commenterID, postID string) {
	if authorID == commenterID {
		return
	}
	t.dispatcher.Notify(ctx, Input{
		RecipientID: authorID,
		SenderID:    commenterID,
		Type:        notification.TypePostComment,
		Title:       "New Comment",
		Message:     t.displayName(ctx, commenterID, "Someone") + " commented on your post.",
		Data:        map[string]any{"postId": postID},
	})
}

// ReelCommented notifies a reel's author about a new comment.
func (t *SocialTriggers) ReelCommented(ctx context.Context, authorID, commenterID, reelID string) {
	if authorID == commenterID {
		return
	}
	t.dispatcher.Notify(ctx, Input{
		RecipientID: authorID,
		SenderID:    commenterID,
		Type:        notification.TypeReelComment,
		Title:       "New Comment",
		Message:     t.displayName(ctx, commenterID, "Someone") + " commented on your reel.",
		Data:        map[string]any{"reelId": reelID},
	})
}

// NewPostPublished fans a NEW_POST notification out to every follower of the
// author. Potentially hundreds of recipients; delivery is concurrent and per
// recipient isolated.
func (t *SocialTriggers) NewPostPublished(ctx context.Context, authorID, postID, postTitle string) {
	followers, err := t.directory.FollowerIDs(ctx, authorID)
	if err != nil || len(followers) == 0 {
		return
	}
	if postTitle == "" {
		postTitle = "Check it out!"
	}
	t.dispatcher.NotifyMany(ctx, followers, Input{
		SenderID: authorID,
		Type:     notification.TypeNewPost,
		Title:    "New Post from Leader",
		Message:  t.displayName(ctx, authorID, "A leader") + " shared a new post: " + postTitle,
		Data:     map[string]any{"postId": postID, "type": "POST"},
	})
}

// NewReelPublished fans a NEW_POST notification out to every follower of the
// author.
func (t *SocialTriggers) NewReelPublished(ctx context.Context, authorID, reelID string) {
	followers, err := t.directory.FollowerIDs(ctx, authorID)
	if err != nil || len(followers) == 0 {
		return
	}
	t.dispatcher.NotifyMany(ctx, followers, Input{
		SenderID: authorID,
		Type:     notification.TypeNewPost,
		Title:    "New Reel from Leader",
		Message:  t.displayName(ctx, authorID, "A leader") + " shared a new reel!",
		Data:     map[string]any{"reelId": reelID, "type": "REEL"},
	})
}

// MessageReceived notifies the other participant of a direct message: title
// is the sender's display name, body the already-truncated preview. Satisfies
// the chat use case's Notifier port.
func (t *SocialTriggers) MessageReceived(ctx context.Context, recipientID, senderID, senderName, preview, conversationID string) {
	if senderName == "" {
		senderName = "New message"
	}
	t.dispatcher.Notify(ctx, Input{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        notification.TypeMessage,
		Title:       senderName,
		Message:     preview,
		Data:        map[string]any{"chatId": conversationID, "type": "CHAT"},
	})
}

func (t *SocialTriggers) displayName(ctx context.Context, userID, fallback string) string {
	if t.directory == nil {
		return fallback
	}
	summary, err := t.directory.FindSummary(ctx, userID)
	if err != nil || summary == nil || summary.Name == "" {
		return fallback
	}
	return summary.Name
}
