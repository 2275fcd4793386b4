package service

import (
	"context"
	"strings"
	"time"

	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/modules/repo"
	"github.com/appforge-io/appforge/internal/pkg/paging"
	"github.com/google/uuid"
)

type ChatService interface {
	// Post appends a user message together with its canned assistant
	// reply and returns both rows in order.
	Post(ctx context.Context, in PostMessageInput) ([]*model.ChatMessage, error)
	List(ctx context.Context, in ListMessagesInput) (*ListMessagesOutput, error)
}

type chatService struct {
	r repo.ChatMessageRepo
}

func NewChatService(r repo.ChatMessageRepo) ChatService {
	return &chatService{r: r}
}

type PostMessageInput struct {
	ProjectID uuid.UUID `json:"project_id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
}

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 200
)

type ListMessagesInput struct {
	ProjectID uuid.UUID
	Limit     int
	Cursor    string
}

type ListMessagesOutput struct {
	Items      []*model.ChatMessage `json:"items"`
	NextCursor string               `json:"next_cursor,omitempty"`
	HasMore    bool                 `json:"has_more"`
}

// cannedReplies maps prompt keywords to assistant replies, first match
// wins. No model is consulted.
var cannedReplies = []struct {
	keyword string
	reply   string
}{
	{"deploy", "You can deploy your app from the workspace: hit Deploy and watch the build progress in the deployments panel."},
	{"error", "If something looks broken, check the file contents in the workspace editor; regenerating the project resets the skeleton."},
	{"add", "You can add files and folders from the file tree, or describe the change here and regenerate."},
	{"style", "Styling lives in the generated CSS files; edit them directly in the workspace editor."},
	{"database", "The generated skeleton has no database wired yet; add your connection settings in the server entry point."},
}

const defaultReply = "Got it. Edit the generated files in the workspace, or refine your prompt and regenerate the project."

func replyFor(message string) string {
	m := strings.ToLower(message)
	for _, c := range cannedReplies {
		if strings.Contains(m, c.keyword) {
			return c.reply
		}
	}
	return defaultReply
}

func (s *chatService) Post(ctx context.Context, in PostMessageInput) ([]*model.ChatMessage, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, ErrEmptyPrompt
	}

	userMsg := &model.ChatMessage{
		ProjectID: in.ProjectID,
		UserID:    in.UserID,
		Message:   in.Message,
	}
	if err := s.r.Create(ctx, userMsg); err != nil {
		return nil, err
	}

	reply := replyFor(in.Message)
	aiMsg := &model.ChatMessage{
		ProjectID:    in.ProjectID,
		UserID:       in.UserID,
		Message:      in.Message,
		Response:     &reply,
		IsAIResponse: true,
	}
	if err := s.r.Create(ctx, aiMsg); err != nil {
		return nil, err
	}

	return []*model.ChatMessage{userMsg, aiMsg}, nil
}

func (s *chatService) List(ctx context.Context, in ListMessagesInput) (*ListMessagesOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}

	var afterTime *time.Time
	var afterID *uuid.UUID
	if in.Cursor != "" {
		t, id, err := paging.DecodeCursor(in.Cursor)
		if err != nil {
			return nil, ErrInvalidCursor
		}
		afterTime, afterID = &t, &id
	}

	// one extra row tells us whether another page exists
	items, err := s.r.ListByProject(ctx, in.ProjectID, limit+1, afterTime, afterID)
	if err != nil {
		return nil, err
	}

	out := &ListMessagesOutput{Items: items}
	if len(items) > limit {
		out.Items = items[:limit]
		out.HasMore = true
		last := out.Items[len(out.Items)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}
	return out, nil
}
