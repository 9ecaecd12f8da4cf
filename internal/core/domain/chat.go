package domain

type ChatSender string

const (
	SenderUser ChatSender = "user"
	SenderBot  ChatSender = "bot"
)

// TranscriptEntry is one line of the persisted chatbot transcript.
type TranscriptEntry struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Sender    ChatSender   `json:"sender"`
	Timestamp int64        `json:"timestamp"`
	Type      string       `json:"type,omitempty"`
	Payload   *ChatPayload `json:"payload,omitempty"`
}

// KYC upload actions emitted by the chatbot and the file types the API expects.
const (
	ActionUploadAdhar     = "upload_adhar"
	ActionUploadPAN       = "upload_pan"
	ActionUploadLivePhoto = "upload_live_photo"

	FileTypeAdhar     = "adhar"
	FileTypePAN       = "pan"
	FileTypeLivePhoto = "live_photo"
)

// KYCFileType maps a chatbot upload action to the API file type, adhar by default.
func KYCFileType(action string) string {
	switch action {
	case ActionUploadPAN:
		return FileTypePAN
	case ActionUploadLivePhoto:
		return FileTypeLivePhoto
	default:
		return FileTypeAdhar
	}
}
