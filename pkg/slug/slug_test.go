package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inmobiliaria-api/pkg/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"Apartamento 2 quartos – Consolação", "São Paulo"}, "apartamento-2-quartos-consolacao-sao-paulo"},
		{[]string{"  Casa  térrea!! "}, "casa-terrea"},
		{[]string{"Ñandú", "Bogotá"}, "nandu-bogota"},
		{[]string{"---"}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.Make(tt.in...))
	}
}
