package pixkey

import (
	"strings"

	"vbank-service/internal/domain"

	"github.com/google/uuid"
)

// deriveKeyValue resolves the stored key value for each key type. CPF/CNPJ
// and EMAIL keys are derived from the holder's on-file data; PHONE comes from
// the caller; RANDOM is generated here and any caller-supplied value is
// ignored.
func deriveKeyValue(keyType domain.PixKeyType, rawValue string, holder *domain.User) (string, error) {
	switch keyType {
	case domain.PixKeyCPF, domain.PixKeyCNPJ:
		document := strings.TrimSpace(holder.Document)
		if document == "" {
			return "", domain.ErrInvalidData("document", "no document on file; update your registration before creating this key")
		}
		return digitsOnly(document), nil

	case domain.PixKeyEmail:
		email := strings.TrimSpace(holder.Email)
		if email == "" {
			return "", domain.ErrInvalidData("email", "no email on file; update your registration before creating this key")
		}
		return strings.ToLower(email), nil

	case domain.PixKeyPhone:
		if strings.TrimSpace(rawValue) == "" {
			return "", domain.ErrInvalidData("keyValue", "a phone number is required for PHONE keys")
		}
		phone := digitsOnly(rawValue)
		if len(phone) < 10 || len(phone) > 11 {
			return "", domain.ErrInvalidData("keyValue", "phone number must contain 10 or 11 digits")
		}
		if phone[0] == '0' {
			return "", domain.ErrInvalidData("keyValue", "phone number must not start with zero")
		}
		return phone, nil

	case domain.PixKeyRandom:
		return uuid.NewString(), nil

	default:
		return "", domain.ErrInvalidData("keyType", "unknown pix key type")
	}
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
