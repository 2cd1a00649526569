package validator

import (
	"testing"

	"github.com/mabego/springai-web/internal/assert"
)

func TestValidator(t *testing.T) {
	var v Validator
	assert.Equal(t, v.Valid(), true)

	v.CheckField(true, "nickname", "unused")
	assert.Equal(t, v.Valid(), true)

	v.CheckField(false, "nickname", "first")
	v.CheckField(false, "nickname", "second")
	assert.Equal(t, v.Valid(), false)
	assert.Equal(t, v.FieldErrors["nickname"], "first")

	var n Validator
	n.AddNonFieldError("oops")
	assert.Equal(t, n.Valid(), false)
}

func TestChecks(t *testing.T) {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{name: "NotBlank spaces", got: NotBlank("   "), want: false},
		{name: "NotBlank text", got: NotBlank(" 小明 "), want: true},
		{name: "MaxChars runes", got: MaxChars("机器人", 3), want: true},
		{name: "MaxChars over", got: MaxChars("机器人们", 3), want: false},
		{name: "MaxChars trims", got: MaxChars("  abc  ", 3), want: true},
		{name: "Printable text", got: Printable("Spring AI"), want: true},
		{name: "Printable control", got: Printable("a\x00b"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.got, tt.want)
		})
	}
}
