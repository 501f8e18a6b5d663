package ledger

import (
	"github.com/retail/backoffice/internal/domain/credit"
	"github.com/retail/backoffice/internal/domain/sales"
)

// MetadataResponse lists the enumerations a client needs to build sale forms
type MetadataResponse struct {
	SaleTypes           []string `json:"tiposVenta"`
	PaymentMethods      []string `json:"mediosPago"`
	SaleStatuses        []string `json:"estadosVenta"`
	Cadences            []string `json:"tiposCredito"`
	CreditStatuses      []string `json:"estadosCredito"`
	InstallmentStatuses []string `json:"estadosCuota"`
	Ratings             []string `json:"calificaciones"`
}

// Metadata returns the ledger enumerations
func Metadata() MetadataResponse {
	return MetadataResponse{
		SaleTypes:           toStrings(sales.AllSaleTypes()),
		PaymentMethods:      toStrings(sales.KnownPaymentMethods()),
		SaleStatuses:        toStrings(sales.AllSaleStatuses()),
		Cadences:            toStrings(credit.KnownCadences()),
		CreditStatuses:      toStrings(credit.AllStatuses()),
		InstallmentStatuses: toStrings(credit.AllInstallmentStatuses()),
		Ratings:             toStrings(sales.AllRatings()),
	}
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
