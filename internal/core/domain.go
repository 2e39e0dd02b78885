package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Monthly RecurrenceType = "monthly"
	Yearly  RecurrenceType = "yearly"
	Weekly  RecurrenceType = "weekly"
	Daily   RecurrenceType = "daily"
)

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	INR Currency = "INR"
	AUD Currency = "AUD"
	CAD Currency = "CAD"
	JPY Currency = "JPY"
)

const (
	Cash          PaymentMethod = "Cash"
	CreditCard    PaymentMethod = "Credit Card"
	DebitCard     PaymentMethod = "Debit Card"
	UPI           PaymentMethod = "UPI"
	NetBanking    PaymentMethod = "Net Banking"
	DigitalWallet PaymentMethod = "Digital Wallet"
	OtherPayment  PaymentMethod = "Other"
)

type (
	RecurrenceType string

	Currency string

	PaymentMethod string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Wallet struct {
		ID       string
		Name     string
		Currency Currency
		// Balance and InitialBalance are independent snapshots taken at
		// creation. Neither is decremented when transactions are written;
		// the balance shown to users is derived at read time as
		// Balance minus the summed expenses for the wallet.
		Balance        Money
		InitialBalance Money
		CreatedAt      Date
	}

	Transaction struct {
		ID            string
		WalletID      string
		Amount        Money
		Category      string // category code, resolved via the registry
		Label         string
		Notes         string
		PaymentMethod PaymentMethod
		Date          Date
		IsRecurring   bool
		// Recurrence is a label only. No future instances are generated.
		Recurrence RecurrenceType
	}

	Budget struct {
		WalletID string
		Category string
		Limit    Money
	}

	User struct {
		ID       string
		Username string
	}
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidCurrency     = errors.New("invalid currency")
	ErrInvalidPayment      = errors.New("invalid payment method")
	ErrInvalidRecurrence   = errors.New("invalid recurrence type")
	ErrEmptyLabel          = errors.New("empty label")
	ErrEmptyName           = errors.New("empty name")
	ErrEmptyWalletID       = errors.New("empty wallet id")
	ErrEmptyCategory       = errors.New("empty category")
	ErrInvalidBudgetLimit  = errors.New("budget limit must be positive")
	ErrDuplicateBudget     = errors.New("budget already exists for this category")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound      = errors.New("budget not found")
)

// Currencies lists the supported wallet currencies.
func Currencies() []Currency {
	return []Currency{USD, EUR, GBP, INR, AUD, CAD, JPY}
}

// Symbol returns the display symbol for the currency.
func (c Currency) Symbol() string {
	switch c {
	case USD:
		return "$"
	case EUR:
		return "€"
	case GBP:
		return "£"
	case INR:
		return "₹"
	case AUD:
		return "A$"
	case CAD:
		return "C$"
	case JPY:
		return "¥"
	default:
		return string(c)
	}
}

func (c Currency) Validate() error {
	switch c {
	case USD, EUR, GBP, INR, AUD, CAD, JPY:
		return nil
	default:
		return ErrInvalidCurrency
	}
}

// PaymentMethods lists the accepted payment methods.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{Cash, CreditCard, DebitCard, UPI, NetBanking, DigitalWallet, OtherPayment}
}

func (p PaymentMethod) Validate() error {
	switch p {
	case Cash, CreditCard, DebitCard, UPI, NetBanking, DigitalWallet, OtherPayment:
		return nil
	default:
		return ErrInvalidPayment
	}
}

func (r RecurrenceType) Validate() error {
	switch r {
	case Daily, Weekly, Monthly, Yearly:
		return nil
	default:
		return ErrInvalidRecurrence
	}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (w Wallet) Validate() error {
	if strings.TrimSpace(w.ID) == "" {
		return ErrEmptyWalletID
	}
	if strings.TrimSpace(w.Name) == "" {
		return ErrEmptyName
	}
	if err := w.Currency.Validate(); err != nil {
		return err
	}
	if err := w.CreatedAt.Validate(); err != nil {
		return err
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.WalletID) == "" {
		return ErrEmptyWalletID
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(strings.TrimSpace(t.Label)) == 0 {
		return ErrEmptyLabel
	}
	if len(t.Label) > 200 {
		return errors.New("label too long (max 200 characters)")
	}
	if err := t.PaymentMethod.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.IsRecurring {
		if err := t.Recurrence.Validate(); err != nil {
			return err
		}
	} else if t.Recurrence != "" {
		return ErrInvalidRecurrence
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.WalletID) == "" {
		return ErrEmptyWalletID
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Limit.Cents <= 0 {
		return ErrInvalidBudgetLimit
	}
	return nil
}
