package transport

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTriggers(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "refreshStaging", []string{"refreshStaging"}},
		{"list", "refreshStaging, showMessage ,", []string{"refreshStaging", "showMessage"}},
		{"json", `{"showMessage": "hi", "refreshStaging": null}`, []string{"refreshStaging", "showMessage"}},
		{"broken json", `{"a"`, []string{`{"a"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTriggers(tt.value))
		})
	}
}

func TestResponseTriggersOrder(t *testing.T) {
	h := http.Header{}
	h.Set(HeaderTriggerAfterSwap, "after")
	h.Set(HeaderTrigger, "first, second")

	assert.Equal(t, []string{"first", "second", "after"}, responseTriggers(h))
}
