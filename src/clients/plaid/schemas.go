package plaid

type exchangeRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	PublicToken string `json:"public_token"`
}

type ExchangeResponse struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
	RequestID   string `json:"request_id"`
}

type linkTokenRequest struct {
	ClientID     string   `json:"client_id"`
	Secret       string   `json:"secret"`
	ClientName   string   `json:"client_name"`
	Language     string   `json:"language"`
	CountryCodes []string `json:"country_codes"`
	User         linkUser `json:"user"`
	Products     []string `json:"products"`
}

type linkUser struct {
	ClientUserID string `json:"client_user_id"`
}

type LinkTokenResponse struct {
	LinkToken string `json:"link_token"`
	RequestID string `json:"request_id"`
}

type transactionsRequest struct {
	ClientID    string             `json:"client_id"`
	Secret      string             `json:"secret"`
	AccessToken string             `json:"access_token"`
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
	Options     transactionOptions `json:"options"`
}

type transactionOptions struct {
	Count  int `json:"count"`
	Offset int `json:"offset"`
}

type Transaction struct {
	TransactionID string  `json:"transaction_id"`
	AccountID     string  `json:"account_id"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	Currency      string  `json:"iso_currency_code"`
}

type TransactionsResponse struct {
	Transactions      []Transaction `json:"transactions"`
	TotalTransactions int           `json:"total_transactions"`
	RequestID         string        `json:"request_id"`
}
