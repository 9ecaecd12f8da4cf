package gateway

// Canned responses served by DemoFallback. They follow the live response
// shapes so every consumer renders them unchanged.

var mockOverview = []byte(`{
	"customer_id": "c0a80121-7ac0-4e1c-9a4f-5d6e7f8a9b0c",
	"customer_name": "Demo Customer",
	"account_no": "4200000001",
	"balance": 125430.75,
	"account_type": "savings",
	"account_status": "active"
}`)

var mockTransactions = []byte(`[
	{"transaction_id": "TXN-DEMO-001", "amount": 52000, "transaction_type": "credit", "transaction_status": "completed", "time": "2024-01-01T09:00:00Z", "transaction_category": "Salary"},
	{"transaction_id": "TXN-DEMO-002", "amount": 1850.5, "transaction_type": "debit", "transaction_status": "completed", "time": "2024-01-03T18:22:00Z", "transaction_category": "Groceries"},
	{"transaction_id": "TXN-DEMO-003", "amount": 12000, "transaction_type": "debit", "transaction_status": "completed", "time": "2024-01-05T08:10:00Z", "transaction_category": "Rent"},
	{"transaction_id": "TXN-DEMO-004", "amount": 649, "transaction_type": "debit", "transaction_status": "pending", "time": "2024-01-07T21:45:00Z", "transaction_category": "Entertainment"},
	{"transaction_id": "TXN-DEMO-005", "amount": 3000, "transaction_type": "credit", "transaction_status": "completed", "time": "2024-01-09T12:30:00Z", "transaction_category": "Transfer"}
]`)

var mockChatResponse = []byte(`{
	"response": "I'm currently offline, but I can still help you explore your demo account. Try again later for live assistance."
}`)
