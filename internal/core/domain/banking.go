package domain

// Shapes returned by the external banking API. Only the fields the client
// reads are modelled; endpoints without a stable shape are passed through
// as raw JSON by the service layer.

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type DashboardOverview struct {
	CustomerID    string  `json:"customer_id"`
	CustomerName  string  `json:"customer_name,omitempty"`
	AccountNo     string  `json:"account_no,omitempty"`
	Balance       float64 `json:"balance"`
	AccountType   string  `json:"account_type,omitempty"`
	AccountStatus string  `json:"account_status,omitempty"`
}

type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

type Transaction struct {
	TransactionID       string          `json:"transaction_id"`
	Amount              float64         `json:"amount"`
	TransactionType     TransactionType `json:"transaction_type"`
	TransactionStatus   string          `json:"transaction_status,omitempty"`
	Time                string          `json:"time,omitempty"`
	Date                string          `json:"date,omitempty"`
	TransactionCategory string          `json:"transaction_category,omitempty"`
}

// When returns whichever timestamp field the API populated.
func (t Transaction) When() string {
	if t.Time != "" {
		return t.Time
	}
	return t.Date
}

type MonthlyStat struct {
	Month  string  `json:"month"`
	Credit float64 `json:"credit"`
	Debit  float64 `json:"debit"`
}

// SpendingAnalysis maps a spending category to its total.
type SpendingAnalysis map[string]float64

type ChatPayload struct {
	ExtractedData map[string]any `json:"extractedData,omitempty"`
	Action        string         `json:"action,omitempty"`
}

// ChatReply is a single message produced by the chatbot backend.
type ChatReply struct {
	ID        string       `json:"id"`
	Type      string       `json:"type"`
	Text      string       `json:"text"`
	Timestamp string       `json:"timestamp"`
	Payload   *ChatPayload `json:"payload,omitempty"`
}

// ChatResponse has two historical shapes: a single "response" string, or a
// list of structured messages.
type ChatResponse struct {
	Response string      `json:"response,omitempty"`
	Messages []ChatReply `json:"messages,omitempty"`
}

type Alert struct {
	AlertID      string  `json:"alert_id"`
	AccountNo    string  `json:"account_no"`
	RiskScore    float64 `json:"risk_score"`
	AlertType    string  `json:"alert_type"`
	AlertMessage string  `json:"alert_message"`
	Amount       float64 `json:"amount"`
}

type Application struct {
	ApplicationNo     string `json:"application_no"`
	Firstname         string `json:"firstname"`
	Lastname          string `json:"lastname"`
	ApplicationStatus string `json:"application_status"`
	CreatedAt         string `json:"created_at"`
}

type PendingDeposit struct {
	TransactionID   string  `json:"transaction_id"`
	CreditAccountNo string  `json:"credit_account_no"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
}

type Report struct {
	ReportID    string `json:"report_id"`
	Title       string `json:"title"`
	GeneratedAt string `json:"generated_at"`
}

// UploadFile is a document captured for KYC.
type UploadFile struct {
	Name    string
	Content []byte
}
