package pixkey

import (
	"testing"

	"vbank-service/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHolder() *domain.User {
	return &domain.User{
		ID:       "user-1",
		FullName: "Alice Souza",
		Document: "123.456.789-00",
		Email:    "  Alice@Vbank.COM ",
	}
}

func TestDeriveKeyValue(t *testing.T) {
	tests := []struct {
		name     string
		keyType  domain.PixKeyType
		rawValue string
		want     string
		wantKind domain.ErrorKind
	}{
		{
			name:    "cpf uses on-file document digits",
			keyType: domain.PixKeyCPF,
			want:    "12345678900",
		},
		{
			name:     "cpf ignores caller value",
			keyType:  domain.PixKeyCPF,
			rawValue: "999.999.999-99",
			want:     "12345678900",
		},
		{
			name:    "cnpj also uses on-file document",
			keyType: domain.PixKeyCNPJ,
			want:    "12345678900",
		},
		{
			name:    "email normalized lowercase",
			keyType: domain.PixKeyEmail,
			want:    "alice@vbank.com",
		},
		{
			name:     "phone keeps digits only",
			keyType:  domain.PixKeyPhone,
			rawValue: "(11) 98765-4321",
			want:     "11987654321",
		},
		{
			name:     "phone with ten digits",
			keyType:  domain.PixKeyPhone,
			rawValue: "1187654321",
			want:     "1187654321",
		},
		{
			name:     "phone too short",
			keyType:  domain.PixKeyPhone,
			rawValue: "987654321",
			wantKind: domain.KindInvalidData,
		},
		{
			name:     "phone too long",
			keyType:  domain.PixKeyPhone,
			rawValue: "119876543210",
			wantKind: domain.KindInvalidData,
		},
		{
			name:     "phone with leading zero",
			keyType:  domain.PixKeyPhone,
			rawValue: "0198765432",
			wantKind: domain.KindInvalidData,
		},
		{
			name:     "phone missing",
			keyType:  domain.PixKeyPhone,
			rawValue: "  ",
			wantKind: domain.KindInvalidData,
		},
		{
			name:     "unknown type",
			keyType:  domain.PixKeyType("CRYPTO"),
			wantKind: domain.KindInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := deriveKeyValue(tt.keyType, tt.rawValue, testHolder())
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, domain.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveKeyValue_RandomIgnoresInput(t *testing.T) {
	got, err := deriveKeyValue(domain.PixKeyRandom, "my-chosen-key", testHolder())
	require.NoError(t, err)

	assert.NotEqual(t, "my-chosen-key", got)
	_, err = uuid.Parse(got)
	assert.NoError(t, err)
}

func TestDeriveKeyValue_RandomIsUniquePerCall(t *testing.T) {
	a, err := deriveKeyValue(domain.PixKeyRandom, "", testHolder())
	require.NoError(t, err)
	b, err := deriveKeyValue(domain.PixKeyRandom, "", testHolder())
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDeriveKeyValue_MissingHolderData(t *testing.T) {
	holder := &domain.User{ID: "user-2"}

	_, err := deriveKeyValue(domain.PixKeyCPF, "", holder)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidData, domain.KindOf(err))

	_, err = deriveKeyValue(domain.PixKeyEmail, "", holder)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidData, domain.KindOf(err))
}
