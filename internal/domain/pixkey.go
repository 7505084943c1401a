package domain

import "time"

type PixKeyType string

const (
	PixKeyCPF    PixKeyType = "CPF"
	PixKeyCNPJ   PixKeyType = "CNPJ"
	PixKeyEmail  PixKeyType = "EMAIL"
	PixKeyPhone  PixKeyType = "PHONE"
	PixKeyRandom PixKeyType = "RANDOM"
)

func (t PixKeyType) Valid() bool {
	switch t {
	case PixKeyCPF, PixKeyCNPJ, PixKeyEmail, PixKeyPhone, PixKeyRandom:
		return true
	}
	return false
}

// PixKey is a routing alias that resolves to exactly one account. Its value
// is unique across the whole system regardless of type.
type PixKey struct {
	ID        string     `json:"id"`
	KeyType   PixKeyType `json:"key_type"`
	KeyValue  string     `json:"key_value"`
	AccountID string     `json:"account_id"`
	CreatedAt time.Time  `json:"created_at"`
}
