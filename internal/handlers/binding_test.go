package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    bindTarget
		expectError bool
	}{
		{
			name:        "Nested Structure",
			key:         "booking",
			body:        `{"booking": {"name": "Spring Gala", "amount": 600}}`,
			expected:    bindTarget{Name: "Spring Gala", Amount: 600},
			expectError: false,
		},
		{
			name:        "Flat Structure",
			key:         "booking",
			body:        `{"name": "Site Visit", "amount": 50}`,
			expected:    bindTarget{Name: "Site Visit", Amount: 50},
			expectError: false,
		},
		{
			name:        "Nested Structure with Missing Key Fallback",
			key:         "booking",
			body:        `{"other": "value", "name": "Repair", "amount": 120}`,
			expected:    bindTarget{Name: "Repair", Amount: 120},
			expectError: false,
		},
		{
			name:        "Nested Structure with Different Key",
			key:         "invoice",
			body:        `{"invoice": {"name": "March Invoice", "amount": 320}}`,
			expected:    bindTarget{Name: "March Invoice", Amount: 320},
			expectError: false,
		},
		{
			name:        "Invalid JSON",
			key:         "booking",
			body:        `{"name": "Broken", "amount": "invalid"}`, // amount is float64
			expected:    bindTarget{},
			expectError: true,
		},
		{
			name:        "Nested but Invalid Content",
			key:         "booking",
			body:        `{"booking": {"name": "Broken", "amount": "invalid"}}`,
			expected:    bindTarget{},
			expectError: true,
		},
		{
			name:        "Nested Key Present but Invalid Type",
			key:         "booking",
			body:        `{"booking": "some string"}`,
			expected:    bindTarget{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result bindTarget
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
