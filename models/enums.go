package models

// AccountType kind of financial account
type AccountType string

const (
	AccountTypeCard    AccountType = "CARD"
	AccountTypeBank    AccountType = "BANK"
	AccountTypeCash    AccountType = "CASH"
	AccountTypeEWallet AccountType = "E_WALLET"
)

// Valid reports whether t is a known account type
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeCard, AccountTypeBank, AccountTypeCash, AccountTypeEWallet:
		return true
	}
	return false
}

// TransactionType kind of ledger entry
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// Sign balance effect direction: INCOME +1, EXPENSE -1, TRANSFER 0.
// Transfer legs carry their direction in TransferLeg instead.
func (t TransactionType) Sign() int {
	switch t {
	case TransactionTypeIncome:
		return 1
	case TransactionTypeExpense:
		return -1
	}
	return 0
}

// CategoryType categories and budgets are either income or expense
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// TransactionType the transaction type a category or budget is measured against
func (t CategoryType) TransactionType() TransactionType {
	if t == CategoryTypeExpense {
		return TransactionTypeExpense
	}
	return TransactionTypeIncome
}

// DebtType DEBT is owed by the user, RECEIVABLE is owed to the user
type DebtType string

const (
	DebtTypeDebt       DebtType = "DEBT"
	DebtTypeReceivable DebtType = "RECEIVABLE"
)

func (t DebtType) Valid() bool {
	return t == DebtTypeDebt || t == DebtTypeReceivable
}

// DebtStatus OPEN -> CLOSED, never back
type DebtStatus string

const (
	DebtStatusOpen   DebtStatus = "OPEN"
	DebtStatusClosed DebtStatus = "CLOSED"
)

func (s DebtStatus) Valid() bool {
	return s == DebtStatusOpen || s == DebtStatusClosed
}

// TransferLeg direction of a transfer transaction
type TransferLeg string

const (
	TransferLegOut TransferLeg = "OUT"
	TransferLegIn  TransferLeg = "IN"
)

func (l TransferLeg) Valid() bool {
	return l == TransferLegOut || l == TransferLegIn
}

// Sign OUT debits (-1), IN credits (+1)
func (l TransferLeg) Sign() int {
	switch l {
	case TransferLegOut:
		return -1
	case TransferLegIn:
		return 1
	}
	return 0
}

// Period analytics summary window
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func (p Period) Valid() bool {
	return p == PeriodWeek || p == PeriodMonth || p == PeriodYear
}
