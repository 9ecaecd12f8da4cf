package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

const (
	botFallbackReply   = "Sorry, I couldn't understand that."
	botConnectionError = "Sorry, I am having trouble connecting to the server."
	botUploadFailed    = "Failed to upload document. Please try again."
	anonymousChatUser  = "anonymous"
)

// ChatService keeps the chatbot transcript in client storage and relays
// messages and KYC documents to the API.
type ChatService struct {
	api      ports.CustomerAPI
	sessions ports.ScopedSessions
	storage  ports.ClientStorage
	log      zerolog.Logger
	now      func() time.Time

	// serialises read-modify-write of the transcript blob
	mu sync.Mutex
}

func NewChatService(api ports.CustomerAPI, sessions ports.ScopedSessions, storage ports.ClientStorage, log zerolog.Logger) *ChatService {
	return &ChatService{api: api, sessions: sessions, storage: storage, log: log, now: time.Now}
}

var _ ports.ChatService = (*ChatService)(nil)

func (s *ChatService) Transcript(ctx context.Context) ([]domain.TranscriptEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Send relays text to the chatbot. A failed call is recorded in the
// transcript rather than returned.
func (s *ChatService) Send(ctx context.Context, text string) ([]domain.TranscriptEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.sessions.Generation()
	log, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return log, nil
	}

	log = append(log, s.entry(domain.SenderUser, text, "", nil))

	userID := anonymousChatUser
	if sess, ok := s.sessions.Current(); ok {
		userID = sess.UserID
	}

	resp, err := s.api.Chat(ctx, text, userID)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Msg("chat request failed")
		log = append(log, s.entry(domain.SenderBot, botConnectionError, "error", nil))
	case resp.Response != "":
		log = append(log, s.entry(domain.SenderBot, resp.Response, "", nil))
	case len(resp.Messages) > 0:
		log = append(log, s.fromReplies(resp.Messages)...)
	default:
		log = append(log, s.entry(domain.SenderBot, botFallbackReply, "", nil))
	}

	return s.commit(ctx, gen, log)
}

// UploadKYC sends a captured document for the given chatbot upload action.
func (s *ChatService) UploadKYC(ctx context.Context, action string, file domain.UploadFile) ([]domain.TranscriptEntry, error) {
	gen := s.sessions.Generation()
	sess, ok := s.sessions.Current()
	if !ok {
		return nil, domain.ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.UploadKYC(ctx, sess.UserID, domain.KYCFileType(action), file)
	if err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("kyc upload failed")
		log = append(log, s.entry(domain.SenderBot, botUploadFailed, "error", nil))
	} else {
		log = append(log, s.fromReplies(resp.Messages)...)
	}

	return s.commit(ctx, gen, log)
}

func (s *ChatService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.sessions.Commit(s.sessions.Generation(), func() error {
		return s.storage.Remove(ctx, domain.StorageKeyChatbotLog)
	})
	return err
}

// commit persists log unless the session changed while the API call was in
// flight. A stale reply is dropped and the stored transcript returned.
func (s *ChatService) commit(ctx context.Context, gen uint64, log []domain.TranscriptEntry) ([]domain.TranscriptEntry, error) {
	saved, err := s.sessions.Commit(gen, func() error { return s.save(ctx, log) })
	if err != nil {
		return nil, err
	}
	if !saved {
		s.log.Info().Msg("session changed during chat request, reply discarded")
		return s.load(ctx)
	}
	return log, nil
}

func (s *ChatService) load(ctx context.Context) ([]domain.TranscriptEntry, error) {
	raw, err := s.storage.Get(ctx, domain.StorageKeyChatbotLog)
	if errors.Is(err, domain.ErrStorageKeyNotFound) {
		return []domain.TranscriptEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var log []domain.TranscriptEntry
	if err := json.Unmarshal([]byte(raw), &log); err != nil {
		s.log.Warn().Err(err).Msg("failed to parse chat transcript")
		return []domain.TranscriptEntry{}, nil
	}
	return log, nil
}

func (s *ChatService) save(ctx context.Context, log []domain.TranscriptEntry) error {
	data, err := json.Marshal(log)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, domain.StorageKeyChatbotLog, string(data))
}

func (s *ChatService) entry(sender domain.ChatSender, text, kind string, payload *domain.ChatPayload) domain.TranscriptEntry {
	return domain.TranscriptEntry{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: s.now().UnixMilli(),
		Type:      kind,
		Payload:   payload,
	}
}

func (s *ChatService) fromReplies(replies []domain.ChatReply) []domain.TranscriptEntry {
	out := make([]domain.TranscriptEntry, 0, len(replies))
	for _, r := range replies {
		e := s.entry(domain.SenderBot, r.Text, replyKind(r.Type), r.Payload)
		if r.ID != "" {
			e.ID = r.ID
		}
		out = append(out, e)
	}
	return out
}

func replyKind(backendType string) string {
	switch backendType {
	case "action-required":
		return "kyc-upload"
	case "extraction-success":
		return "extraction-success"
	default:
		return "text"
	}
}
