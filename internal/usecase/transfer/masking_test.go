package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single long word", "Roberto", "R*****o"},
		{"full name", "Maria Clara Santos", "M***a C***a S****s"},
		{"short words untouched", "Li An", "Li An"},
		{"mixed lengths", "Ana de Souza", "A*a de S***a"},
		{"accented runes", "José", "J**é"},
		{"empty", "", ""},
		{"extra whitespace collapsed", "  Bob   Lima  ", "B*b L**a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskName(tt.in))
		})
	}
}

func TestMaskDocument(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare cpf", "12345678900", "123.***.***-00"},
		{"formatted cpf", "123.456.789-00", "123.***.***-00"},
		{"cnpj", "12345678000195", "123.***.***-95"},
		{"ten digits", "1234567890", "123.***.***-90"},
		{"too short passes through", "123456789", "123456789"},
		{"not a document", "hello", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskDocument(tt.in))
		})
	}
}
