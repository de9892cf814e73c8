package domain

// PaymentMethod 支付方式
type PaymentMethod string

const (
	PaymentCreditCard    PaymentMethod = "Credit Card"
	PaymentDebitCard     PaymentMethod = "Debit Card"
	PaymentPayPal        PaymentMethod = "PayPal"
	PaymentDigitalWallet PaymentMethod = "Digital Wallet"
	PaymentBLPL          PaymentMethod = "BLPL"
	PaymentCOD           PaymentMethod = "COD"
)

// PaymentMethods 固定顺序，权重表按这个顺序对齐
var PaymentMethods = []PaymentMethod{
	PaymentCreditCard,
	PaymentDebitCard,
	PaymentPayPal,
	PaymentDigitalWallet,
	PaymentBLPL,
	PaymentCOD,
}
