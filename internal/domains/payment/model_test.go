package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input string
		want  Method
		ok    bool
	}{
		{input: "JazzCash", want: MethodJazzCash, ok: true},
		{input: "jazzcash", want: MethodJazzCash, ok: true},
		{input: "EASYPAISA", want: MethodEasyPaisa, ok: true},
		{input: "banktransfer", want: MethodBankTransfer, ok: true},
		{input: "cash", want: MethodCash, ok: true},
		{input: "bitcoin", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseMethod(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			// canonical casing regardless of input casing
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		}
	}
}
