package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enumPayload struct {
	Status  string  `json:"estado" validate:"omitempty,sale_status"`
	Type    string  `json:"tipoVenta" validate:"omitempty,sale_type"`
	Method  string  `json:"medioPago" validate:"omitempty,payment_method"`
	Rating  *string `json:"calificacion" validate:"omitempty,rating"`
	Tenant  string  `json:"tenant" validate:"omitempty,tenant_schema"`
	Missing string  `form:"q" validate:"omitempty,max=1"`
}

func newTestValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

func strPtr(s string) *string { return &s }

func TestRegisterValidators_EnumTags(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		payload enumPayload
		field   string
	}{
		{"valid values", enumPayload{Status: "Entregada", Type: "credito", Method: "Nequi", Rating: strPtr("positivo"), Tenant: "tenant_acme"}, ""},
		{"free-form payment method", enumPayload{Method: "Cripto"}, ""},
		{"unknown status", enumPayload{Status: "perdida"}, "estado"},
		{"unknown sale type", enumPayload{Type: "leasing"}, "tipoVenta"},
		{"blank payment method", enumPayload{Method: "   "}, "medioPago"},
		{"unknown rating", enumPayload{Rating: strPtr("Excelente")}, "calificacion"},
		{"bad tenant", enumPayload{Tenant: "tenant acme"}, "tenant"},
		{"form tag fallback", enumPayload{Missing: "ab"}, "q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.payload)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := newTestValidator()
	err := v.Struct(enumPayload{Status: "perdida", Rating: strPtr("x")})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-9")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-9", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "estado", resp.Error.Details[0].Field)
	assert.Equal(t, "Unknown sale status", resp.Error.Details[0].Message)
}

func TestHandleValidationError_BindingFlow(t *testing.T) {
	SetupValidator()

	type request struct {
		Status string `json:"estado" binding:"required,sale_status"`
	}

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		okHandler(c)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"estado":"perdida"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errInfo := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeValidation, errInfo.Code)
	require.Len(t, errInfo.Details, 1)
	assert.Equal(t, "estado", errInfo.Details[0].Field)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"estado":"confirmada"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
}
