package ingest

// Field is a canonical field role.
type Field string

const (
	FieldID          Field = "id"
	FieldCustomerID  Field = "customer_id"
	FieldAmount      Field = "amount"
	FieldStatus      Field = "status"
	FieldCreatedAt   Field = "created_at"
	FieldFeeAmount   Field = "fee_amount"
	FieldDisputed    Field = "disputed"
	FieldDescription Field = "description"
	FieldCurrency    Field = "currency"
)

// FieldHints lists the header names that identify a field, most specific first.
type FieldHints struct {
	Field Field
	Hints []string
}

// HintTable is evaluated in order; earlier fields claim headers first.
type HintTable []FieldHints

// LedgerHints maps the internal billing/usage log.
var LedgerHints = HintTable{
	{FieldCustomerID, []string{"customer_id", "customer", "cust_id", "user_id", "account_id", "client_id"}},
	{FieldFeeAmount, []string{"fee_amount", "fee", "fees", "processing_fee"}},
	{FieldAmount, []string{"amount", "total", "amount_due", "invoice_amount", "price", "value"}},
	{FieldStatus, []string{"status", "state", "invoice_status", "subscription_status"}},
	{FieldCreatedAt, []string{"created_at", "created", "date", "timestamp", "billing_date", "period_start", "time"}},
	{FieldDisputed, []string{"disputed", "is_disputed", "dispute", "chargeback"}},
	{FieldID, []string{"id", "transaction_id", "invoice_id", "charge_id", "payment_id", "txn_id", "reference"}},
	{FieldDescription, []string{"description", "memo", "plan", "product", "note"}},
	{FieldCurrency, []string{"currency", "currency_code"}},
}

// ProcessorHints maps the payment processor export.
var ProcessorHints = HintTable{
	{FieldCustomerID, []string{"customer_id", "customer", "cust_id", "user_id", "account_id", "client_id"}},
	{FieldFeeAmount, []string{"fee", "fee_amount", "fees", "processing_fee", "stripe_fee"}},
	{FieldAmount, []string{"amount", "gross", "amount_paid", "charge_amount", "total", "value"}},
	{FieldStatus, []string{"status", "state", "outcome", "payment_status"}},
	{FieldCreatedAt, []string{"created_at", "created", "date", "timestamp", "paid_at", "available_on", "time"}},
	{FieldDisputed, []string{"disputed", "is_disputed", "dispute", "dispute_status", "chargeback"}},
	{FieldID, []string{"id", "charge_id", "payment_intent", "payment_id", "transaction_id", "txn_id", "reference"}},
	{FieldDescription, []string{"description", "statement_descriptor", "memo", "note"}},
	{FieldCurrency, []string{"currency", "currency_code"}},
}
